package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/soypete/programs-mcp/pkg/config"
	"github.com/soypete/programs-mcp/pkg/mcp"
	"github.com/soypete/programs-mcp/pkg/repl"
	"github.com/soypete/programs-mcp/pkg/tools"
)

var errToolFailed = errors.New("tool reported an error")

// signalContext cancels on SIGINT or SIGTERM
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func serveCmd(opts *rootOptions) *cobra.Command {
	var transport, addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server",
		Long: `Run the MCP server.

Examples:
  # stdio, for MCP clients that launch the server themselves
  programs-mcp serve

  # streamable HTTP on :8080/mcp with /metrics and /healthz
  programs-mcp serve --transport http --addr :8080`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			if transport == "" {
				transport = a.cfg.Server.Transport
			}
			if addr == "" {
				addr = a.cfg.Server.HTTPAddr
			}

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			switch transport {
			case config.TransportStdio:
				server := mcp.NewServer(a.registry, a.logger)
				server.SetIO(cmd.InOrStdin(), cmd.OutOrStdout())
				return server.Run(ctx)

			case config.TransportHTTP:
				srv, err := mcp.NewMCPServer(a.registry, a.logger)
				if err != nil {
					return err
				}
				httpOpts := mcp.HTTPOptions{
					Addr:           addr,
					Path:           a.cfg.Server.Path,
					MetricsEnabled: a.cfg.MetricsEnabled(),
					MetricsPath:    a.cfg.Metrics.Path,
				}
				return mcp.ServeHTTP(ctx, mcp.NewHTTPHandler(srv, httpOpts), httpOpts, a.logger)

			default:
				return fmt.Errorf("invalid transport: %s (must be 'stdio' or 'http')", transport)
			}
		},
	}

	cmd.Flags().StringVarP(&transport, "transport", "t", "", "Transport (stdio, http); default from config")
	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address; default from config")

	return cmd
}

func callCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "call <tool> [key=value ...]",
		Short: "Call a tool once and print its text",
		Long: `Call a tool once and print its text.

Examples:
  programs-mcp call search_programs_by_location country=India city=Chennai limit=5
  programs-mcp call search_programs_nearby latitude=12.97 longitude=77.59
  programs-mcp call filter_programs online=true language=tamil`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			toolArgs, err := tools.ParseArgs(args[1:])
			if err != nil {
				return err
			}

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			result, err := a.registry.Execute(ctx, args[0], toolArgs)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), result.Output)
			if !result.Success {
				return errToolFailed
			}
			return nil
		},
	}
}

func toolsCmd(opts *rootOptions) *cobra.Command {
	var showSchema bool

	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List available tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, tool := range a.registry.List() {
				fmt.Fprintf(out, "%s\n  %s\n", tool.Name(), tool.Description())
				if showSchema {
					data, err := json.MarshalIndent(tools.InputSchema(tool), "  ", "  ")
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "  %s\n", data)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showSchema, "schema", false, "Print each tool's input schema")
	return cmd
}

func replCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Open an interactive shell for calling tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			shell, err := repl.NewREPL(a.registry, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()
			return shell.Run(ctx)
		},
	}
}
