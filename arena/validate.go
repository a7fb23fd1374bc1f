package arena

import (
	"fmt"
	"strings"
)

const (
	defaultPage = 1
	defaultPer  = 20
	maxPer      = 100
)

// PageOptions selects a page for list operations.
type PageOptions struct {
	Page int
	Per  int
}

// clamp applies defaults and the upper page-size bound.
func (o PageOptions) clamp() PageOptions {
	if o.Page <= 0 {
		o.Page = defaultPage
	}
	if o.Per <= 0 {
		o.Per = defaultPer
	}
	if o.Per > maxPer {
		o.Per = maxPer
	}
	return o
}

// ValidateKey validates a channel or user lookup key (numeric id or slug).
func ValidateKey(key, fieldName string) error {
	if key == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	if strings.ContainsAny(key, " /?#") {
		return fmt.Errorf("%s contains invalid characters", fieldName)
	}
	return nil
}

// ValidateQuery validates a search query string.
func ValidateQuery(query string) error {
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("query is required")
	}
	return nil
}
