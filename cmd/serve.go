package cmd

import (
	"errors"
	"time"

	"github.com/mj1618/desktop-dnd/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing desktop-dnd tools",
	Long: `Start a Model Context Protocol (MCP) server that exposes replay, layout,
hit, probe and decode as tools, plus a live session driven one native
event at a time.

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  desktop-dnd serve
  desktop-dnd serve --transport streamable-http --port 8080
  desktop-dnd serve --cache-ttl 0`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	serveCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
	serveCmd.Flags().Int("cache-ttl", 500, "Layout cache TTL in milliseconds (0 to disable)")
}

func runServe(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")
	cacheTTLMs, _ := cmd.Flags().GetInt("cache-ttl")

	runner, sinks, err := newRunner()
	if err != nil {
		return err
	}
	srvCfg := server.Config{
		Transport: transport,
		Port:      port,
		CacheTTL:  time.Duration(cacheTTLMs) * time.Millisecond,
		Runner:    runner,
	}
	err = server.New(srvCfg).Serve(srvCfg)
	return errors.Join(err, sinks.wait())
}
