package e2e

import (
	"os"
	"testing"

	"github.com/soypete/programs-mcp/pkg/config"
	"github.com/soypete/programs-mcp/pkg/programs"
	"github.com/soypete/programs-mcp/pkg/tools"
	programtools "github.com/soypete/programs-mcp/pkg/tools/programs"
)

// SkipUnlessE2E skips the test unless RUN_E2E_TESTS environment variable is set.
// These tests call the live schedule API and should only run when explicitly
// enabled, for example: RUN_E2E_TESTS=1 go test ./test/e2e
func SkipUnlessE2E(t *testing.T) {
	if os.Getenv("RUN_E2E_TESTS") == "" {
		t.Skip("Skipping E2E test - set RUN_E2E_TESTS=1 to run")
	}
	if testing.Short() {
		t.Skip("Skipping E2E test in short mode")
	}
}

// TestEnvironment holds a registry wired to the live API
type TestEnvironment struct {
	Config   *config.Config
	Gateway  *programs.Gateway
	Registry *tools.ToolRegistry
}

// SetupTestEnvironment builds the full tool stack from the default config,
// honoring PROGRAMS_* overrides
func SetupTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()

	cfg, err := config.LoadDefault()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	client := programs.NewClient(programs.ClientOptions{
		ScheduleURL: cfg.API.ScheduleURL,
		ListURL:     cfg.API.ListURL,
		UserAgent:   cfg.API.UserAgent,
		Timeout:     cfg.Timeout(),
		VerifyTLS:   cfg.API.VerifyTLS,
	})
	gateway := programs.NewGateway(client, nil)

	registry := tools.NewToolRegistry(nil)
	if err := programtools.Register(registry, gateway); err != nil {
		t.Fatalf("Failed to register tools: %v", err)
	}

	return &TestEnvironment{
		Config:   cfg,
		Gateway:  gateway,
		Registry: registry,
	}
}
