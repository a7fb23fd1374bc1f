package arena

import (
	"context"
	"fmt"
	"strconv"
)

// Block operations.

// GetBlock retrieves a single block by id.
func (c *Client) GetBlock(ctx context.Context, id int64) (*Block, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, fmt.Errorf("block id must be positive")
	}
	key := strconv.FormatInt(id, 10)
	b, err := getAs[Block](ctx, c, "block", key, "/blocks/"+key, nil)
	if err != nil {
		return nil, err
	}
	normalizeBlock(b)
	return b, nil
}

// GetBlockChannels returns one page of channels that currently include the
// block as a member — "how widely is this idea distributed". Responses are
// served from the TTL cache when fresh.
func (c *Client) GetBlockChannels(ctx context.Context, id int64, opts PageOptions) (*Page[*Channel], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, fmt.Errorf("block id must be positive")
	}
	opts = opts.clamp()

	key := strconv.FormatInt(id, 10)
	path := fmt.Sprintf("/blocks/%s/channels", key)
	q := pageQuery(opts)
	body, err := c.cachedJSON(ctx, "block-channels", key+"&"+q.Encode(), c.cacheTTL, func(ctx context.Context) ([]byte, error) {
		body, _, err := c.getJSON(ctx, "block", key, path, q)
		return body, err
	})
	if err != nil {
		return nil, err
	}
	return decodeChannelPage(body, opts)
}
