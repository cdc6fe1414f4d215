package mcp

import (
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"

	"streakboard/internal/dashboard"
	"streakboard/internal/records"
)

// Options tunes the tool responses.
type Options struct {
	Version             string
	EnableMermaidCharts bool
}

// Server exposes the dashboard engine as MCP tools.
type Server struct {
	svc  *dashboard.Service
	repo records.Repository
	dir  records.BranchDirectory
	opts Options
}

// NewServer creates a new MCP server.
func NewServer(svc *dashboard.Service, repo records.Repository, dir records.BranchDirectory, opts Options) *Server {
	if opts.Version == "" {
		opts.Version = "dev"
	}
	return &Server{svc: svc, repo: repo, dir: dir, opts: opts}
}

// Build returns an SDK server with every tool registered.
func (s *Server) Build() *sdk.Server {
	srv := sdk.NewServer(&sdk.Implementation{Name: "streakboard", Version: s.opts.Version}, nil)
	s.registerTools(srv)
	return srv
}

// Serve runs the server over stdio until the client disconnects or ctx is done.
func (s *Server) Serve(ctx context.Context) error {
	log.Info().Str("version", s.opts.Version).Msg("MCP server listening on stdio")
	err := s.Build().Run(ctx, &sdk.StdioTransport{})
	if err != nil {
		log.Error().Err(err).Msg("MCP server stopped")
		return err
	}
	log.Info().Msg("MCP server stopped")
	return nil
}
