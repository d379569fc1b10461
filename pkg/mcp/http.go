package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/soypete/programs-mcp/pkg/logging"
	"github.com/soypete/programs-mcp/pkg/metrics"
)

// HTTPOptions configures the streamable HTTP transport
type HTTPOptions struct {
	Addr           string
	Path           string
	MetricsEnabled bool
	MetricsPath    string
}

// NewHTTPHandler mounts the MCP endpoint plus health and metrics routes
func NewHTTPHandler(srv *server.MCPServer, opts HTTPOptions) http.Handler {
	path := opts.Path
	if path == "" {
		path = "/mcp"
	}

	mux := http.NewServeMux()
	mux.Handle(path, server.NewStreamableHTTPServer(srv, server.WithEndpointPath(path)))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})

	if opts.MetricsEnabled {
		metricsPath := opts.MetricsPath
		if metricsPath == "" {
			metricsPath = "/metrics"
		}
		mux.Handle(metricsPath, metrics.Handler())
	}

	return mux
}

// ServeHTTP listens on opts.Addr until ctx is cancelled, then shuts down
func ServeHTTP(ctx context.Context, handler http.Handler, opts HTTPOptions, logger *slog.Logger) error {
	if logger == nil {
		logger = logging.Discard()
	}

	httpServer := &http.Server{
		Addr:              opts.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("mcp server listening", "addr", opts.Addr, "path", opts.Path)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info("shutting down http server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown: %w", err)
		}
		return nil
	}
}
