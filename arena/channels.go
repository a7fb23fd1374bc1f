package arena

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// Channel operations - all methods operate directly on Client.

// channelListResponse mirrors the channel list endpoints' response shape.
type channelListResponse struct {
	Channels    []*Channel `json:"channels"`
	Length      int        `json:"length"`
	Per         int        `json:"per"`
	CurrentPage int        `json:"current_page"`
	TotalPages  int        `json:"total_pages"`
}

// contentsResponse mirrors GET /channels/{key}/contents. Entries are mixed
// blocks and nested channels, discriminated by kind.
type contentsResponse struct {
	Contents    []json.RawMessage `json:"contents"`
	Length      int               `json:"length"`
	Per         int               `json:"per"`
	CurrentPage int               `json:"current_page"`
	TotalPages  int               `json:"total_pages"`
}

// GetChannel retrieves a channel by numeric id or slug.
func (c *Client) GetChannel(ctx context.Context, key string) (*Channel, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := ValidateKey(key, "channel key"); err != nil {
		return nil, err
	}
	ch, err := getAs[Channel](ctx, c, "channel", key, "/channels/"+url.PathEscape(key), nil)
	if err != nil {
		return nil, err
	}
	normalizeChannel(ch)
	return ch, nil
}

// GetChannelContents returns one page of a channel's members, in channel
// order. Members carry their membership fields (position, pinned, attach
// time and actor); nested channels appear as channels.
func (c *Client) GetChannelContents(ctx context.Context, key string, opts PageOptions) (*Page[Entity], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := ValidateKey(key, "channel key"); err != nil {
		return nil, err
	}
	opts = opts.clamp()

	path := fmt.Sprintf("/channels/%s/contents", url.PathEscape(key))
	cr, err := getAs[contentsResponse](ctx, c, "channel", key, path, pageQuery(opts))
	if err != nil {
		return nil, err
	}

	items := make([]Entity, 0, len(cr.Contents))
	for _, raw := range cr.Contents {
		e, err := decodeEntity(raw)
		if err != nil {
			return nil, fmt.Errorf("decode channel contents: %w", err)
		}
		items = append(items, e)
	}
	return &Page[Entity]{
		Items:      items,
		Pagination: buildPagination(pageOr(cr.CurrentPage, opts.Page), perOr(cr.Per, opts.Per), cr.TotalPages, cr.Length, false),
	}, nil
}

// GetChannelConnections returns one page of channels that share at least one
// member block with this channel — the "same neighborhood" traversal. One
// hop per call; multi-hop maps are the caller's business.
func (c *Client) GetChannelConnections(ctx context.Context, key string, opts PageOptions) (*Page[*Channel], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := ValidateKey(key, "channel key"); err != nil {
		return nil, err
	}
	opts = opts.clamp()

	path := fmt.Sprintf("/channels/%s/connections", url.PathEscape(key))
	q := pageQuery(opts)
	body, err := c.cachedJSON(ctx, "channel-connections", key+"&"+q.Encode(), c.cacheTTL, func(ctx context.Context) ([]byte, error) {
		body, _, err := c.getJSON(ctx, "channel", key, path, q)
		return body, err
	})
	if err != nil {
		return nil, err
	}
	return decodeChannelPage(body, opts)
}

func decodeChannelPage(body []byte, opts PageOptions) (*Page[*Channel], error) {
	var lr channelListResponse
	if err := json.Unmarshal(body, &lr); err != nil {
		return nil, fmt.Errorf("decode channel list: %w", err)
	}
	for _, ch := range lr.Channels {
		normalizeChannel(ch)
	}
	return &Page[*Channel]{
		Items:      lr.Channels,
		Pagination: buildPagination(pageOr(lr.CurrentPage, opts.Page), perOr(lr.Per, opts.Per), lr.TotalPages, lr.Length, false),
	}, nil
}

func pageQuery(opts PageOptions) url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(opts.Page))
	q.Set("per", strconv.Itoa(opts.Per))
	return q
}

func pageOr(reported, requested int) int {
	if reported != 0 {
		return reported
	}
	return requested
}

func perOr(reported, requested int) int {
	if reported != 0 {
		return reported
	}
	return requested
}
