package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/givenness/arena-research-skill/arena"
)

// ChannelHandler exposes the channel lookup and traversal tools.
type ChannelHandler struct {
	client *arena.Client
}

func NewChannelHandler(c *arena.Client) *ChannelHandler {
	return &ChannelHandler{client: c}
}

// RegisterTools registers arena_get_channel and arena_channel_connections.
func (ch *ChannelHandler) RegisterTools(s *server.MCPServer) error {
	getTool := mcp.NewTool("arena_get_channel",
		mcp.WithDescription("Fetch a channel by numeric id or slug, including its authoritative aggregate counts."),
		mcp.WithString("key", mcp.Required(), mcp.Description("Channel id or slug")),
	)
	s.AddTool(getTool, ch.handleGetChannel)

	connTool := mcp.NewTool("arena_channel_connections",
		mcp.WithDescription("List channels that share at least one block with the given channel — one traversal hop in the connection graph."),
		mcp.WithString("key", mcp.Required(), mcp.Description("Channel id or slug")),
		mcp.WithNumber("page", mcp.Description("Page index, 1-based")),
		mcp.WithNumber("per", mcp.Description("Results per page (max 100)")),
	)
	s.AddTool(connTool, ch.handleConnections)
	return nil
}

func (ch *ChannelHandler) handleGetChannel(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, _ := req.RequireString("key")

	channel, err := ch.client.GetChannel(ctx, key)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("get channel failed: %v", err)), nil
	}
	b, _ := json.MarshalIndent(channel, "", "  ")
	return mcp.NewToolResultText(string(b)), nil
}

func (ch *ChannelHandler) handleConnections(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, _ := req.RequireString("key")
	opts := pageOptions(req)

	result, err := ch.client.GetChannelConnections(ctx, key, opts)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("channel connections failed: %v", err)), nil
	}
	b, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(b)), nil
}

// pageOptions pulls the shared page/per arguments off a tool request.
func pageOptions(req mcp.CallToolRequest) arena.PageOptions {
	opts := arena.PageOptions{}
	args := req.GetArguments()
	if v, ok := args["page"].(float64); ok {
		opts.Page = int(v)
	}
	if v, ok := args["per"].(float64); ok {
		opts.Per = int(v)
	}
	return opts
}
