package main

import (
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/givenness/arena-research-skill/arena"
	"github.com/givenness/arena-research-skill/internal/config"
	"github.com/givenness/arena-research-skill/mcp/handlers"
)

type toolRegisterer interface {
	RegisterTools(s *server.MCPServer) error
}

func registerHandler(s *server.MCPServer, handler toolRegisterer, name string) {
	if err := handler.RegisterTools(s); err != nil {
		log.Fatal().Err(err).Msgf("Failed to register %s tools", name)
	}
}

func main() {
	cfg := config.Load()
	cfg.Init()

	client := arena.New(cfg.APIBaseURL, arena.WithToken(cfg.AccessToken))

	s := server.NewMCPServer(
		getEnvOrDefault("MCP_SERVER_NAME", "arena-mcp-server"),
		getEnvOrDefault("MCP_SERVER_VERSION", "0.1.0"),
		server.WithToolCapabilities(true),
	)

	registerHandler(s, handlers.NewSearchHandler(client), "search")
	registerHandler(s, handlers.NewChannelHandler(client), "channel")
	registerHandler(s, handlers.NewBlockHandler(client), "block")

	log.Info().Msg("Starting arena MCP server (stdio transport)")
	if err := server.ServeStdio(s); err != nil {
		log.Fatal().Err(err).Msg("Stdio server error")
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
