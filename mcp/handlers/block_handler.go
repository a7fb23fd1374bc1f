package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/givenness/arena-research-skill/arena"
)

// BlockHandler exposes the block lookup and traversal tools.
type BlockHandler struct {
	client *arena.Client
}

func NewBlockHandler(c *arena.Client) *BlockHandler {
	return &BlockHandler{client: c}
}

// RegisterTools registers arena_get_block and arena_block_channels.
func (bh *BlockHandler) RegisterTools(s *server.MCPServer) error {
	getTool := mcp.NewTool("arena_get_block",
		mcp.WithDescription("Fetch a single block by id, with its kind-specific payload."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Block id")),
	)
	s.AddTool(getTool, bh.handleGetBlock)

	channelsTool := mcp.NewTool("arena_block_channels",
		mcp.WithDescription("List channels that currently include the block — how widely the idea is distributed. Repeated calls within the cache window are served locally."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Block id")),
		mcp.WithNumber("page", mcp.Description("Page index, 1-based")),
		mcp.WithNumber("per", mcp.Description("Results per page (max 100)")),
	)
	s.AddTool(channelsTool, bh.handleBlockChannels)
	return nil
}

func (bh *BlockHandler) handleGetBlock(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireFloat("id")
	if err != nil {
		return mcp.NewToolResultError("id is required"), nil
	}

	block, err := bh.client.GetBlock(ctx, int64(id))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("get block failed: %v", err)), nil
	}
	b, _ := json.MarshalIndent(block, "", "  ")
	return mcp.NewToolResultText(string(b)), nil
}

func (bh *BlockHandler) handleBlockChannels(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireFloat("id")
	if err != nil {
		return mcp.NewToolResultError("id is required"), nil
	}
	opts := pageOptions(req)

	result, err := bh.client.GetBlockChannels(ctx, int64(id), opts)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("block channels failed: %v", err)), nil
	}
	b, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(b)), nil
}
