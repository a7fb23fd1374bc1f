package arena

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"time"
)

// Scope restricts search results to a slice of the graph.
type Scope string

const (
	ScopeAll       Scope = "all"       // everything, public discovery
	ScopeMine      Scope = "mine"      // the caller's own content
	ScopeFollowing Scope = "following" // the caller's network
)

// Sort selects a result ordering.
type Sort string

const (
	SortRelevance   Sort = "relevance"
	SortCreated     Sort = "created"
	SortUpdated     Sort = "updated"
	SortConnections Sort = "connections"
	SortRandom      Sort = "random"
	SortNameAsc     Sort = "name_asc"
	SortNameDesc    Sort = "name_desc"
)

// SearchOptions tune a search. Kind narrows results to one entity kind;
// note the legacy backend has no block-sub-kind filter, so asking for e.g.
// KindLink on a globally-scoped search returns all block kinds and the
// caller must filter further.
type SearchOptions struct {
	Kind  Kind
	Sort  Sort
	Scope Scope
	Page  int
	Per   int
}

// QuickLookup returns the options with the fast-lookup preset applied:
// channels only, ordered by connection count, ten per page. Caller-supplied
// values for those three fields are overridden; page index is kept.
func (o SearchOptions) QuickLookup() SearchOptions {
	o.Kind = KindChannel
	o.Sort = SortConnections
	o.Per = 10
	return o
}

// legacySearchResponse is the flat shape of the legacy discovery backend.
type legacySearchResponse struct {
	Term        string     `json:"term"`
	Per         int        `json:"per"`
	CurrentPage int        `json:"current_page"`
	TotalPages  int        `json:"total_pages"`
	Channels    []*Channel `json:"channels"`
	Blocks      []*Block   `json:"blocks"`
	Users       []*User    `json:"users"`
}

// scopedSearchResponse is the canonical shape of the scope-aware backend.
type scopedSearchResponse struct {
	Contents    []json.RawMessage `json:"contents"`
	Length      int               `json:"length"`
	Per         int               `json:"per"`
	CurrentPage int               `json:"current_page"`
	TotalPages  int               `json:"total_pages"`
}

// Search runs a query against whichever backend can honor the requested
// scope and returns one canonical page of mixed entities.
//
// Scoped requests go to the scope-aware backend, which returns canonical,
// correctly paginated, server-sorted results. Globally-scoped requests go to
// the legacy discovery backend, whose flat records are normalized, whose
// pagination is reconstructed (total count approximated as pages×per), and
// whose ignored sort parameter is compensated for client-side where possible.
// Both paths require a token.
func (c *Client) Search(ctx context.Context, query string, opts SearchOptions) (*Page[Entity], error) {
	return c.search(ctx, query, opts, c.cacheTTL)
}

// QuickSearch is Search with the quick-lookup preset and its longer cache
// TTL. It is a parameter substitution, not a separate code path.
func (c *Client) QuickSearch(ctx context.Context, query string, opts SearchOptions) (*Page[Entity], error) {
	return c.search(ctx, query, opts.QuickLookup(), QuickLookupCacheTTL)
}

func (c *Client) search(ctx context.Context, query string, opts SearchOptions, ttl time.Duration) (*Page[Entity], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := ValidateQuery(query); err != nil {
		return nil, err
	}
	if c.token == "" {
		// Both search backends need identity; fail before touching the
		// network rather than burning a paced request on a guaranteed 401.
		return nil, &ConfigurationError{Reason: "search requires an access token (create one at https://dev.are.na)"}
	}

	page := PageOptions{Page: opts.Page, Per: opts.Per}.clamp()
	opts.Page, opts.Per = page.Page, page.Per
	if opts.Scope == "" {
		opts.Scope = ScopeAll
	}
	if opts.Sort == "" {
		opts.Sort = SortRelevance
	}

	if opts.Scope != ScopeAll {
		return c.searchScoped(ctx, query, opts, ttl)
	}
	return c.searchLegacy(ctx, query, opts, ttl)
}

func (c *Client) searchScoped(ctx context.Context, query string, opts SearchOptions, ttl time.Duration) (*Page[Entity], error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("scope", string(opts.Scope))
	q.Set("sort", string(opts.Sort))
	if opts.Kind != "" {
		q.Set("kind", string(opts.Kind))
	}
	q.Set("page", strconv.Itoa(opts.Page))
	q.Set("per", strconv.Itoa(opts.Per))

	body, err := c.cachedJSON(ctx, "search-scoped", q.Encode(), ttl, func(ctx context.Context) ([]byte, error) {
		body, _, err := c.getJSON(ctx, "search", query, "/search/scoped", q)
		return body, err
	})
	if err != nil {
		return nil, err
	}

	var sr scopedSearchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("decode scoped search: %w", err)
	}

	items := make([]Entity, 0, len(sr.Contents))
	for _, raw := range sr.Contents {
		e, err := decodeEntity(raw)
		if err != nil {
			return nil, fmt.Errorf("decode scoped search result: %w", err)
		}
		items = append(items, e)
	}

	current := sr.CurrentPage
	if current == 0 {
		current = opts.Page
	}
	per := sr.Per
	if per == 0 {
		per = opts.Per
	}
	// The scope-aware backend reports exact counts and has already honored
	// the sort parameter; nothing to reshape.
	return &Page[Entity]{
		Items:      items,
		Pagination: buildPagination(current, per, sr.TotalPages, sr.Length, false),
	}, nil
}

// legacySearchPath maps the kind filter onto the legacy backend's coarser
// endpoints. Block sub-kinds all collapse onto the block endpoint.
func legacySearchPath(kind Kind) string {
	switch kind {
	case "":
		return "/search"
	case KindChannel:
		return "/search/channels"
	case KindUser, KindGroup:
		return "/search/users"
	default:
		return "/search/blocks"
	}
}

func (c *Client) searchLegacy(ctx context.Context, query string, opts SearchOptions, ttl time.Duration) (*Page[Entity], error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("page", strconv.Itoa(opts.Page))
	q.Set("per", strconv.Itoa(opts.Per))

	path := legacySearchPath(opts.Kind)
	body, err := c.cachedJSON(ctx, "search"+path, q.Encode(), ttl, func(ctx context.Context) ([]byte, error) {
		body, _, err := c.getJSON(ctx, "search", query, path, q)
		return body, err
	})
	if err != nil {
		return nil, err
	}

	var lr legacySearchResponse
	if err := json.Unmarshal(body, &lr); err != nil {
		return nil, fmt.Errorf("decode legacy search: %w", err)
	}

	// Entity-kind groups are never interleaved: channels, then blocks,
	// then users, each normalized into the canonical shape.
	items := make([]Entity, 0, len(lr.Channels)+len(lr.Blocks)+len(lr.Users))
	for _, ch := range lr.Channels {
		normalizeChannel(ch)
		items = append(items, ch)
	}
	for _, b := range lr.Blocks {
		normalizeBlock(b)
		items = append(items, b)
	}
	for _, u := range lr.Users {
		normalizeUser(u)
		items = append(items, u)
	}

	applyClientSort(items, opts.Sort)

	current := lr.CurrentPage
	if current == 0 {
		current = opts.Page
	}
	per := lr.Per
	if per == 0 {
		per = opts.Per
	}
	// The legacy backend only reports a page count. pages×per overcounts
	// whenever the last page is short; the flag tells display code so.
	return &Page[Entity]{
		Items:      items,
		Pagination: buildPagination(current, per, lr.TotalPages, lr.TotalPages*per, true),
	}, nil
}

// applyClientSort compensates for the legacy backend ignoring its sort
// parameter. Relevance, random and the name orderings pass through: the
// backend's relevance ordering cannot be reproduced here.
func applyClientSort(items []Entity, s Sort) {
	switch s {
	case SortCreated:
		sort.SliceStable(items, func(i, j int) bool {
			return entityCreated(items[i]) > entityCreated(items[j])
		})
	case SortUpdated:
		sort.SliceStable(items, func(i, j int) bool {
			return entityUpdated(items[i]) > entityUpdated(items[j])
		})
	case SortConnections:
		sort.SliceStable(items, func(i, j int) bool {
			return connectionCount(items[i]) > connectionCount(items[j])
		})
	}
}

func entityCreated(e Entity) string {
	switch v := e.(type) {
	case *Channel:
		return v.CreatedAt
	case *Block:
		return v.CreatedAt
	case *User:
		return v.CreatedAt
	}
	return ""
}

func entityUpdated(e Entity) string {
	switch v := e.(type) {
	case *Channel:
		return v.UpdatedAt
	case *Block:
		return v.UpdatedAt
	case *User:
		return v.UpdatedAt
	}
	return ""
}

// connectionCount orders channels by combined contents count; blocks and
// users count as zero and sort last.
func connectionCount(e Entity) int {
	ch, ok := e.(*Channel)
	if !ok {
		return 0
	}
	if ch.Counts != nil {
		return ch.Counts.Total
	}
	if ch.Length != nil {
		return *ch.Length
	}
	return 0
}
