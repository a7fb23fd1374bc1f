package arena

import "encoding/json"

// ------------------------------
// Core domain types
// ------------------------------

// Kind discriminates entities and block variants. Values match the upstream
// discriminator verbatim so legacy records can be adopted without translation.
type Kind string

const (
	KindChannel    Kind = "Channel"
	KindUser       Kind = "User"
	KindGroup      Kind = "Group"
	KindBlock      Kind = "Block" // generic block filter; never appears on a record
	KindText       Kind = "Text"
	KindImage      Kind = "Image"
	KindLink       Kind = "Link"
	KindAttachment Kind = "Attachment"
	KindEmbed      Kind = "Media"
)

// Entity is implemented by every canonical record a search can return.
type Entity interface {
	EntityKind() Kind
}

// Tri holds the three parallel renderings of a rich-text field. A record
// either carries all of them or none; callers should treat a nil *Tri as
// "no description".
type Tri struct {
	Markdown string `json:"markdown,omitempty"`
	HTML     string `json:"html,omitempty"`
	Plain    string `json:"plain,omitempty"`
}

// ChannelCounts are the authoritative aggregate counts reported by the
// backend. Traversal operations never recompute them from fetched content.
type ChannelCounts struct {
	Blocks        int `json:"blocks"`
	Channels      int `json:"channels"`
	Total         int `json:"total"`
	Collaborators int `json:"collaborators"`
}

// Channel is a curated collection of blocks and/or other channels.
//
// The trailing legacy fields are only populated by the legacy search
// backend; normalizeChannel folds them into the canonical fields and
// downstream code never reads them.
type Channel struct {
	ID          int64          `json:"id"`
	Slug        string         `json:"slug"`
	Title       string         `json:"title"`
	Kind        Kind           `json:"kind,omitempty"`
	Description *Tri           `json:"description,omitempty"`
	Visibility  string         `json:"visibility,omitempty"` // public | closed | private
	Owner       *User          `json:"owner,omitempty"`
	Counts      *ChannelCounts `json:"counts,omitempty"`
	CreatedAt   string         `json:"created_at,omitempty"`
	UpdatedAt   string         `json:"updated_at,omitempty"`

	// Legacy search shape.
	Class             string      `json:"class,omitempty"`
	Status            string      `json:"status,omitempty"`
	Length            *int        `json:"length,omitempty"`
	CollaboratorCount *int        `json:"collaborator_count,omitempty"`
	LegacyUser        *legacyUser `json:"user,omitempty"`
}

func (c *Channel) EntityKind() Kind { return KindChannel }

// LinkPayload is the kind-specific payload of a Link block.
type LinkPayload struct {
	URL      string `json:"url"`
	Title    string `json:"title,omitempty"`
	Provider string `json:"provider,omitempty"`
}

// ImagePayload is the kind-specific payload of an Image block.
type ImagePayload struct {
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// FilePayload is the kind-specific payload of Attachment and Media blocks.
type FilePayload struct {
	URL string `json:"url"`
}

// Block is a single piece of content. Kind selects which payload field is
// populated; Body gives exhaustive access for renderers.
type Block struct {
	ID          int64  `json:"id"`
	Kind        Kind   `json:"kind,omitempty"`
	Title       string `json:"title,omitempty"`
	Description *Tri   `json:"description,omitempty"`
	Owner       *User  `json:"owner,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`

	Text       *Tri          `json:"content,omitempty"`
	Link       *LinkPayload  `json:"source,omitempty"`
	Image      *ImagePayload `json:"image,omitempty"`
	Attachment *FilePayload  `json:"attachment,omitempty"`
	Embed      *FilePayload  `json:"embed,omitempty"`

	// Membership fields, populated only when the block is listed as a
	// member of a channel.
	Position    int    `json:"position,omitempty"`
	Pinned      bool   `json:"pinned,omitempty"`
	ConnectedAt string `json:"connected_at,omitempty"`
	ConnectedBy *User  `json:"connected_by,omitempty"`

	// Legacy search shape.
	Class      string      `json:"class,omitempty"`
	LegacyUser *legacyUser `json:"user,omitempty"`
}

func (b *Block) EntityKind() Kind {
	if b.Kind != "" {
		return b.Kind
	}
	return KindBlock
}

// Body returns the payload matching the block's kind. The switch is
// deliberately exhaustive over the closed kind set so a new kind fails loudly
// in renderers instead of silently dropping content.
func (b *Block) Body() any {
	switch b.Kind {
	case KindText:
		return b.Text
	case KindImage:
		return b.Image
	case KindLink:
		return b.Link
	case KindAttachment:
		return b.Attachment
	case KindEmbed:
		return b.Embed
	default:
		return nil
	}
}

// UserCounts are the aggregate counts reported for an individual account.
type UserCounts struct {
	Channels  int `json:"channels"`
	Followers int `json:"followers"`
	Following int `json:"following"`
}

// User is an individual or group account that owns channels and blocks.
type User struct {
	ID          int64       `json:"id"`
	Slug        string      `json:"slug,omitempty"`
	Kind        Kind        `json:"kind,omitempty"` // User | Group
	DisplayName string      `json:"display_name,omitempty"`
	Avatar      string      `json:"avatar,omitempty"`
	Initials    string      `json:"initials,omitempty"`
	Counts      *UserCounts `json:"counts,omitempty"`
	Bio         *Tri        `json:"bio,omitempty"`
	CreatedAt   string      `json:"created_at,omitempty"`
	UpdatedAt   string      `json:"updated_at,omitempty"`

	// Legacy search shape.
	Class          string `json:"class,omitempty"`
	Username       string `json:"username,omitempty"`
	FullName       string `json:"full_name,omitempty"`
	ChannelCount   *int   `json:"channel_count,omitempty"`
	FollowerCount  *int   `json:"follower_count,omitempty"`
	FollowingCount *int   `json:"following_count,omitempty"`
}

func (u *User) EntityKind() Kind {
	if u.Kind == KindGroup {
		return KindGroup
	}
	return KindUser
}

// legacyUser is the embedded actor object the legacy search backend attaches
// to channels and blocks.
type legacyUser struct {
	Username string `json:"username,omitempty"`
	FullName string `json:"full_name,omitempty"`
	Slug     string `json:"slug,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

// ------------------------------
// Pagination
// ------------------------------

// Pagination carries page metadata alongside any listed results.
// ApproxTotal marks TotalCount as the legacy totalPages×perPage
// approximation rather than an exact backend count.
type Pagination struct {
	Current     int  `json:"current_page"`
	Next        *int `json:"next_page,omitempty"`
	Prev        *int `json:"prev_page,omitempty"`
	Per         int  `json:"per"`
	TotalPages  int  `json:"total_pages"`
	TotalCount  int  `json:"total_count"`
	ApproxTotal bool `json:"approx_total,omitempty"`
	HasMore     bool `json:"has_more"`
}

// Page is a bounded ordered sequence of entities plus pagination metadata.
type Page[T any] struct {
	Items []T `json:"items"`
	Pagination
}

// buildPagination derives next/prev/has-more from the current index and page
// count. Used by both backends; only the legacy path marks the total as
// approximate.
func buildPagination(current, per, totalPages, totalCount int, approx bool) Pagination {
	p := Pagination{
		Current:     current,
		Per:         per,
		TotalPages:  totalPages,
		TotalCount:  totalCount,
		ApproxTotal: approx,
		HasMore:     current < totalPages,
	}
	if current < totalPages {
		n := current + 1
		p.Next = &n
	}
	if current > 1 {
		v := current - 1
		p.Prev = &v
	}
	return p
}

// RateLimitStatus is the per-response rate-limit snapshot parsed from
// response headers. Informational only; never persisted.
type RateLimitStatus struct {
	Limit         int    `json:"limit"`
	Tier          string `json:"tier"`
	PeriodSeconds int    `json:"period_seconds"`
	ResetAt       int64  `json:"reset_at"` // unix seconds
}

// decodeEntity decodes one mixed-list element into its canonical type, keyed
// on the kind discriminator (canonical "kind" first, legacy "class" as the
// fallback).
func decodeEntity(raw json.RawMessage) (Entity, error) {
	var probe struct {
		Kind  Kind `json:"kind"`
		Class Kind `json:"class"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, err
	}
	k := probe.Kind
	if k == "" {
		k = probe.Class
	}
	switch k {
	case KindChannel:
		var ch Channel
		if err := json.Unmarshal(raw, &ch); err != nil {
			return nil, err
		}
		normalizeChannel(&ch)
		return &ch, nil
	case KindUser, KindGroup:
		var u User
		if err := json.Unmarshal(raw, &u); err != nil {
			return nil, err
		}
		normalizeUser(&u)
		return &u, nil
	default:
		var b Block
		if err := json.Unmarshal(raw, &b); err != nil {
			return nil, err
		}
		normalizeBlock(&b)
		return &b, nil
	}
}
