// programs-mcp serves the Isha programs schedule as MCP tools. It runs as a
// stdio or streamable HTTP MCP server, and can call tools directly or from
// an interactive shell.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootOptions holds the global flags
type rootOptions struct {
	configFile string
	logLevel   string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "programs-mcp",
		Short: "MCP server for Isha Foundation program schedules",
		Long: `programs-mcp exposes the Isha Foundation program schedule API as MCP tools.

Tools search programs by location, interest or coordinates, filter them,
fetch program details, and list countries, cities and program categories.

Configuration is read from .programs-mcp.json|.yaml|.yml in the current or
home directory, a .env file, and PROGRAMS_* environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "Path to config file (default: search .programs-mcp.*)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Override log level (debug, info, warn, error)")

	rootCmd.AddCommand(serveCmd(opts))
	rootCmd.AddCommand(callCmd(opts))
	rootCmd.AddCommand(toolsCmd(opts))
	rootCmd.AddCommand(replCmd(opts))

	return rootCmd
}
