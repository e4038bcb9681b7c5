// Package server exposes drag-and-drop replay and inspection as MCP tools.
package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/mj1618/desktop-dnd/internal/platform/script"
	"github.com/mj1618/desktop-dnd/internal/transfer"
	"github.com/mj1618/desktop-dnd/internal/version"
)

// Config holds MCP server configuration.
type Config struct {
	Transport string
	Port      int
	CacheTTL  time.Duration
	Runner    *script.Runner
}

// Server wraps the MCP server with the replay runner, a layout cache and
// the live session driven by the session tools.
type Server struct {
	runner  *script.Runner
	codec   *transfer.Codec
	layouts *LayoutCache

	sessionMu sync.Mutex
	session   *script.Session

	mcp *mcpserver.MCPServer
}

// New creates and configures an MCP server with all desktop-dnd tools.
func New(cfg Config) *Server {
	s := &Server{
		runner:  cfg.Runner,
		codec:   cfg.Runner.Codec,
		layouts: NewLayoutCache(cfg.CacheTTL),
	}
	s.mcp = mcpserver.NewMCPServer("desktop-dnd", version.Version)
	s.registerTools()
	return s
}

// Serve starts the MCP server with the configured transport.
func (s *Server) Serve(cfg Config) error {
	switch cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

func (s *Server) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("replay",
			mcp.WithDescription("Replay a recorded drag-and-drop session. Returns each step and the notifications every drop region received."),
			mcp.WithString("script", mcp.Required(), mcp.Description("Session script as YAML: a layout and a list of native events")),
		),
		s.handleReplay,
	)

	s.mcp.AddTool(
		mcp.NewTool("layout",
			mcp.WithDescription("List the regions of a layout file as a flat list with paths and roles"),
			mcp.WithString("path", mcp.Required(), mcp.Description("Layout YAML file")),
		),
		s.handleLayout,
	)

	s.mcp.AddTool(
		mcp.NewTool("hit",
			mcp.WithDescription("Report the regions under a logical point and what a drag started there would carry"),
			mcp.WithString("path", mcp.Required(), mcp.Description("Layout YAML file")),
			mcp.WithNumber("x", mcp.Required(), mcp.Description("Logical X coordinate")),
			mcp.WithNumber("y", mcp.Required(), mcp.Description("Logical Y coordinate")),
		),
		s.handleHit,
	)

	s.mcp.AddTool(
		mcp.NewTool("probe",
			mcp.WithDescription("Resolve files into name, MIME type and size"),
			mcp.WithArray("paths", mcp.Required(), mcp.Description("File paths"), mcp.WithStringItems()),
		),
		s.handleProbe,
	)

	s.mcp.AddTool(
		mcp.NewTool("decode",
			mcp.WithDescription("Decode a transfer payload into locator records"),
			mcp.WithString("flavor", mcp.Description("Payload flavor (default: "+transfer.LocatorListFlavor+")")),
			mcp.WithString("data", mcp.Required(), mcp.Description("Payload text")),
		),
		s.handleDecode,
	)

	s.mcp.AddTool(
		mcp.NewTool("session_start",
			mcp.WithDescription("Start a live drag-and-drop session over a layout file, replacing any current session"),
			mcp.WithString("path", mcp.Required(), mcp.Description("Layout YAML file")),
		),
		s.handleSessionStart,
	)

	s.mcp.AddTool(
		mcp.NewTool("session_event",
			mcp.WithDescription("Deliver one native event to the live session"),
			mcp.WithString("type", mcp.Required(), mcp.Description("Event: drag, enter, over, drop, exit, density")),
			mcp.WithNumber("x", mcp.Description("Native X coordinate")),
			mcp.WithNumber("y", mcp.Description("Native Y coordinate")),
			mcp.WithArray("files", mcp.Description("Files carried as a file list (enter, drop)"), mcp.WithStringItems()),
			mcp.WithArray("records", mcp.Description("Records {path, mimeType} carried as a locator list (enter, drop)")),
			mcp.WithNumber("density", mcp.Description("New display density (density)")),
		),
		s.handleSessionEvent,
	)

	s.mcp.AddTool(
		mcp.NewTool("session_result",
			mcp.WithDescription("Report the notifications every drop region of the live session has received"),
		),
		s.handleSessionResult,
	)
}
