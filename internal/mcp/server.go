// Package mcp implements the Model Context Protocol server, exposing
// caskfind to LLM clients over stdio. Core tools (init, guide, config) live
// here; search and catalogue tools are contributed by extensions.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jpl-au/caskfind/extension"
	"github.com/jpl-au/caskfind/internal/cask"
	"github.com/jpl-au/caskfind/internal/config"
	"github.com/jpl-au/caskfind/internal/log"
	"github.com/jpl-au/caskfind/internal/repo"
)

// Version is advertised to clients for capability negotiation.
const Version = "1.0.0"

// ErrNotInitialised is returned by tools when no catalogue exists yet.
const ErrNotInitialised = "catalogue not initialised - call caskfind_init first"

// Options configures the server.
type Options struct {
	DB    string // Catalogue name, empty for the default
	Dir   string // Explicit project directory, empty for discovery
	Tools []extension.MCPTool
}

// Serve starts the MCP server over stdio and blocks until the client
// disconnects.
//
// The server starts even if no catalogue exists so a client can call
// caskfind_init; other tools answer with ErrNotInitialised until then.
func Serve(opts Options) error {
	// stdout carries JSON-RPC; diagnostics go to stderr.
	slog.SetDefault(log.Console())

	h, err := newHandlers(opts.DB, opts.Dir)
	if err != nil {
		slog.Error("failed to open catalogue", "error", err)
		return err
	}
	defer h.close()

	s := newServer(h, opts.Tools)
	slog.Info("caskfind MCP server ready", "version", Version, "transport", "stdio", "tools", len(opts.Tools))

	err = server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}

// newServer builds the MCP server with the core tools and the given
// extension tools.
func newServer(h *handlers, tools []extension.MCPTool) *server.MCPServer {
	s := server.NewMCPServer(
		"caskfind",
		Version,
		server.WithResourceCapabilities(true, false),
		server.WithToolCapabilities(true),
	)
	registerResources(s, h)
	registerTools(s, h)
	for _, t := range tools {
		s.AddTool(t.Tool, h.wrap(t.Handler))
	}
	return s
}

// handlers holds the catalogue shared by all tools. svc and ext are nil
// until a catalogue is opened.
type handlers struct {
	db  string
	dir string

	mu  sync.RWMutex
	svc *cask.Service
	ext extension.Context
}

func newHandlers(db, dir string) (*handlers, error) {
	h := &handlers{db: db, dir: dir}
	svc, err := cask.New(db, dir)
	if errors.Is(err, repo.ErrNotInitialised) {
		slog.Info("caskfind not initialised, starting in uninitialised mode - call caskfind_init to create a catalogue")
		return h, nil
	}
	if err != nil {
		return nil, err
	}
	if err := h.attach(svc); err != nil {
		svc.Close()
		return nil, err
	}
	return h, nil
}

// attach makes svc the catalogue behind every tool.
func (h *handlers) attach(svc *cask.Service) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.svc = svc
	h.ext = extension.NewContext(svc, svc.DB(), cfg)
	log.SetProject(filepath.Dir(svc.DBPath()))
	return nil
}

func (h *handlers) close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.svc == nil {
		return
	}
	if err := h.svc.Close(); err != nil {
		log.Warn("closing catalogue", "error", err)
	}
	h.svc, h.ext = nil, nil
}

// context returns the extension context, or an error result when no
// catalogue is open.
func (h *handlers) context() (extension.Context, *mcp.CallToolResult) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.ext == nil {
		return nil, mcp.NewToolResultError(ErrNotInitialised)
	}
	return h.ext, nil
}

// wrap adapts an extension handler to the server, injecting the shared
// context.
func (h *handlers) wrap(fn extension.MCPHandler) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ext, res := h.context()
		if res != nil {
			return res, nil
		}
		return fn(ctx, ext, req)
	}
}

// registerTools adds the core tools that work with or without a catalogue.
func registerTools(s *server.MCPServer, h *handlers) {
	s.AddTool(
		mcp.NewTool("caskfind_init",
			mcp.WithDescription("Initialise a new caskfind catalogue. Call this first if other tools return 'catalogue not initialised'."),
			mcp.WithBoolean("local", mcp.Description("If true, the catalogue is gitignored (not committed to version control)")),
		),
		h.initCatalogue,
	)

	s.AddTool(
		mcp.NewTool("caskfind_guide",
			mcp.WithDescription("Get help/guide content for caskfind commands"),
			mcp.WithString("topic", mcp.Description("Guide topic (e.g., 'search', 'tap') or empty for the main guide")),
		),
		h.getGuide,
	)

	s.AddTool(
		mcp.NewTool("caskfind_config_get",
			mcp.WithDescription("Get a configuration value"),
			mcp.WithString("key", mcp.Description("Config key (e.g. remote.enabled, catalog.default_tap) or empty for all")),
		),
		h.configGet,
	)
}
