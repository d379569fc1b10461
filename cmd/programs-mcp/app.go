package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/soypete/programs-mcp/pkg/config"
	"github.com/soypete/programs-mcp/pkg/logging"
	"github.com/soypete/programs-mcp/pkg/programs"
	"github.com/soypete/programs-mcp/pkg/tools"
	programtools "github.com/soypete/programs-mcp/pkg/tools/programs"
)

// app is the wired process: config, logger and the tool registry
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	registry *tools.ToolRegistry
}

func newApp(opts *rootOptions, logOut io.Writer) (*app, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configFile != "" {
		cfg, err = config.Load(opts.configFile)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	level := cfg.Debug.LogLevel
	if opts.logLevel != "" {
		level = opts.logLevel
	}
	logger, err := logging.New(logOut, level)
	if err != nil {
		return nil, err
	}

	client := programs.NewClient(programs.ClientOptions{
		ScheduleURL: cfg.API.ScheduleURL,
		ListURL:     cfg.API.ListURL,
		UserAgent:   cfg.API.UserAgent,
		Timeout:     cfg.Timeout(),
		VerifyTLS:   cfg.API.VerifyTLS,
		Logger:      logger,
	})

	registry := tools.NewToolRegistry(logger)
	if err := programtools.Register(registry, programs.NewGateway(client, logger)); err != nil {
		return nil, err
	}

	logger.Debug("configured",
		"schedule_url", cfg.API.ScheduleURL,
		"list_url", cfg.API.ListURL,
		"verify_tls", cfg.API.VerifyTLS,
		"tools", registry.Count())

	return &app{cfg: cfg, logger: logger, registry: registry}, nil
}
