package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/aretw0/moodbot/pkg/adapters/mcp"
)

// Supported MCP transports.
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

// MCPOptions configures the MCP server.
type MCPOptions struct {
	Common

	Transport string
	// Port is used by the SSE transport. Zero defers to MOODBOT_PORT.
	Port int
	Err  io.Writer
}

// RunMCP serves the MCP tools over the selected transport.
func RunMCP(ctx context.Context, opts MCPOptions) error {
	settings, err := opts.env()
	if err != nil {
		return err
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	logger := createLogger(opts.Err, settings, false)

	svc, err := newServices(opts.Common, settings, logger)
	if err != nil {
		return err
	}

	srv := mcp.NewServer(svc.bot, svc.sessions,
		mcp.WithLogger(logger),
		mcp.WithAnalyzeObserver(svc.metrics.ObserveAnalysis),
		mcp.WithMaxInputSize(svc.maxInput),
	)

	switch opts.Transport {
	case "", TransportStdio:
		// Ensure logs don't corrupt JSON-RPC on Stdout
		log.SetOutput(opts.Err)
		logger.Info("Starting moodbot MCP Server (Stdio)")
		return srv.ServeStdio()
	case TransportSSE:
		port := opts.Port
		if port == 0 {
			port, err = strconv.Atoi(settings.Port)
			if err != nil {
				return fmt.Errorf("invalid port %q: %w", settings.Port, err)
			}
		}
		sigCtx := NewSignalContext(ctx)
		defer sigCtx.Cancel()
		return srv.ServeSSE(sigCtx, port)
	default:
		return fmt.Errorf("unknown transport: %s. Supported: %s, %s", opts.Transport, TransportStdio, TransportSSE)
	}
}
