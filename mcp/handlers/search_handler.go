package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/givenness/arena-research-skill/arena"
)

// SearchHandler exposes the arena_search tool.
type SearchHandler struct {
	client *arena.Client
}

func NewSearchHandler(c *arena.Client) *SearchHandler {
	return &SearchHandler{client: c}
}

// RegisterTools registers the arena_search tool.
func (sh *SearchHandler) RegisterTools(s *server.MCPServer) error {
	searchTool := mcp.NewTool("arena_search",
		mcp.WithDescription("Search the content graph for channels, blocks and users. Results are one page of mixed entities plus pagination metadata; total_count is approximate on globally-scoped searches."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query text")),
		mcp.WithString("kind", mcp.Description("Filter by kind: channel|block|text|image|link|attachment|embed|user")),
		mcp.WithString("sort", mcp.Description("Sort: relevance|created|updated|connections|random|name_asc|name_desc")),
		mcp.WithString("scope", mcp.Description("Scope: all|mine|following (default all)")),
		mcp.WithNumber("page", mcp.Description("Page index, 1-based")),
		mcp.WithNumber("per", mcp.Description("Results per page (max 100)")),
		mcp.WithBoolean("quick", mcp.Description("Quick-lookup preset: channels by connection count, 10 per page")),
	)
	s.AddTool(searchTool, sh.handleSearch)
	return nil
}

func (sh *SearchHandler) handleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, _ := req.RequireString("query")

	args := req.GetArguments()
	opts := arena.SearchOptions{}
	if v, ok := args["kind"].(string); ok {
		opts.Kind = arena.Kind(v)
	}
	if v, ok := args["sort"].(string); ok {
		opts.Sort = arena.Sort(v)
	}
	if v, ok := args["scope"].(string); ok {
		opts.Scope = arena.Scope(v)
	}
	if v, ok := args["page"].(float64); ok {
		opts.Page = int(v)
	}
	if v, ok := args["per"].(float64); ok {
		opts.Per = int(v)
	}

	var (
		result *arena.Page[arena.Entity]
		err    error
	)
	if quick, _ := args["quick"].(bool); quick {
		result, err = sh.client.QuickSearch(ctx, query, opts)
	} else {
		result, err = sh.client.Search(ctx, query, opts)
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	b, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(b)), nil
}
