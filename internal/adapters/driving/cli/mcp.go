package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/manuals/internal/adapters/driving/mcp"
	"github.com/custodia-labs/manuals/internal/adapters/driving/watcher"
	"github.com/custodia-labs/manuals/internal/core/domain"
	"github.com/custodia-labs/manuals/internal/logger"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

By default, the server communicates over stdio using JSON-RPC and can be
used with Claude Desktop and other MCP-compatible AI assistants.

Use --port to start an HTTP server instead, which enables:
  - Testing with MCP Inspector web UI
  - Remote access via HTTP

Use --watch to reload the corpus whenever 'manuals extract' replaces it.

Examples:
  # Stdio mode (default, for Claude Desktop)
  manuals mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  manuals mcp serve --port 8080 --watch

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "manuals": {
        "command": "/path/to/manuals",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpServeCmd.Flags().Bool("watch", false, "reload the corpus when the snapshot changes")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	watch, err := cmd.Flags().GetBool("watch")
	if err != nil {
		return fmt.Errorf("getting watch flag: %w", err)
	}

	// The server starts without a corpus; tools report it as unavailable
	// until one is extracted.
	if err := ensureCorpus(cmd.Context()); err != nil {
		if !errors.Is(err, domain.ErrCorpusUnavailable) {
			return err
		}
		logger.Warn("%v", err)
	}

	var opts []mcp.Option
	if settingsService != nil {
		if s, err := settingsService.Get(); err == nil {
			opts = append(opts, mcp.WithRateLimit(s.Server.HTTPRate, s.Server.HTTPBurst))
		}
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Search:    searchService,
		Lookup:    lookupService,
		Resources: resourceService,
		Prompts:   promptService,
	}, opts...)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if watch {
		if err := startWatcher(ctx); err != nil {
			return err
		}
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		// stdout is free in HTTP mode.
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(ctx, addr)
	}

	return server.Run(ctx)
}

func startWatcher(ctx context.Context) error {
	if libraryService == nil || snapshotPath == "" {
		return errors.New("watch: no snapshot configured")
	}
	w, err := watcher.New(snapshotPath, libraryService)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	go func() {
		if err := w.Run(ctx); err != nil {
			logger.Warn("watcher stopped: %v", err)
		}
	}()
	return nil
}
