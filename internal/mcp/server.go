package mcp

import (
	"context"
	"fmt"

	"site-health/internal/config"
	"site-health/internal/dataset"
	"site-health/internal/series"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

// Version is reported to MCP clients during initialization.
var Version = "0.1.0"

// Loader reads a dataset directory into an analysis context.
type Loader func(dir string) (*series.Context, error)

// Server exposes the project analytics as MCP tools.
type Server struct {
	cfg  *config.AppConfig
	load Loader
}

// NewServer creates a server that reads datasets from disk on every tool call.
func NewServer(cfg *config.AppConfig) *Server {
	return &Server{cfg: cfg, load: dataset.Load}
}

// MCP builds the protocol server with every tool registered.
func (s *Server) MCP() *mcp.Server {
	srv := mcp.NewServer(&mcp.Implementation{Name: "site-health", Version: Version}, nil)
	s.registerTools(srv)
	return srv
}

// Serve runs the MCP session over stdio until the client disconnects or ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	log.Info().Str("data", s.cfg.DataPath).Msg("Starting MCP server on stdio")
	if err := s.MCP().Run(ctx, &mcp.StdioTransport{}); err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}

// loadContext loads the dataset a tool call refers to, defaulting to the configured DATA_PATH.
func (s *Server) loadContext(dataPath string) (*series.Context, string, error) {
	dir := dataPath
	if dir == "" {
		dir = s.cfg.DataPath
	}
	c, err := s.load(dir)
	if err != nil {
		log.Error().Err(err).Str("path", dir).Msg("Dataset load failed")
		return nil, dir, fmt.Errorf("failed to load dataset from %s: %w", dir, err)
	}
	return c, dir, nil
}
