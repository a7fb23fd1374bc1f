package arena

import (
	"context"
	"fmt"
	"net/url"
)

// User operations.

// GetUser retrieves a user or group by numeric id or slug.
func (c *Client) GetUser(ctx context.Context, key string) (*User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := ValidateKey(key, "user key"); err != nil {
		return nil, err
	}
	u, err := getAs[User](ctx, c, "user", key, "/users/"+url.PathEscape(key), nil)
	if err != nil {
		return nil, err
	}
	normalizeUser(u)
	return u, nil
}

// GetUserChannels returns one page of the channels a user owns.
func (c *Client) GetUserChannels(ctx context.Context, key string, opts PageOptions) (*Page[*Channel], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := ValidateKey(key, "user key"); err != nil {
		return nil, err
	}
	opts = opts.clamp()

	path := fmt.Sprintf("/users/%s/channels", url.PathEscape(key))
	body, _, err := c.getJSON(ctx, "user", key, path, pageQuery(opts))
	if err != nil {
		return nil, err
	}
	return decodeChannelPage(body, opts)
}
