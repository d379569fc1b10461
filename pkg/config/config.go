package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/soypete/programs-mcp/pkg/programs"
)

// Config represents the programs-mcp configuration
type Config struct {
	API     APIConfig     `json:"api" yaml:"api"`
	Server  ServerConfig  `json:"server" yaml:"server"`
	Metrics MetricsConfig `json:"metrics" yaml:"metrics"`
	Debug   DebugConfig   `json:"debug" yaml:"debug"`
}

// APIConfig contains the upstream schedule API settings
type APIConfig struct {
	ScheduleURL    string `json:"schedule_url" yaml:"schedule_url"`
	ListURL        string `json:"list_url" yaml:"list_url"`
	UserAgent      string `json:"user_agent" yaml:"user_agent"`
	TimeoutSeconds int    `json:"timeout_seconds" yaml:"timeout_seconds"`
	VerifyTLS      bool   `json:"verify_tls" yaml:"verify_tls"`
}

// ServerConfig contains MCP transport settings
type ServerConfig struct {
	Transport string `json:"transport" yaml:"transport"` // "stdio" or "http"
	HTTPAddr  string `json:"http_addr" yaml:"http_addr"`
	Path      string `json:"path" yaml:"path"`
}

// MetricsConfig contains prometheus settings. Only served over http.
type MetricsConfig struct {
	Enabled *bool  `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Path    string `json:"path" yaml:"path"`
}

// DebugConfig contains debug settings
type DebugConfig struct {
	LogLevel string `json:"log_level" yaml:"log_level"`
}

// Transports
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Default upstream endpoints
const (
	DefaultScheduleURL = programs.DefaultScheduleURL
	DefaultListURL     = programs.DefaultListURL
	DefaultUserAgent   = programs.DefaultUserAgent
)

// Environment variables that override file values
const (
	EnvScheduleURL = "PROGRAMS_SCHEDULE_URL"
	EnvListURL     = "PROGRAMS_LIST_URL"
	EnvUserAgent   = "PROGRAMS_USER_AGENT"
	EnvTimeout     = "PROGRAMS_TIMEOUT_SECONDS"
	EnvVerifyTLS   = "PROGRAMS_VERIFY_TLS"
	EnvTransport   = "PROGRAMS_TRANSPORT"
	EnvHTTPAddr    = "PROGRAMS_HTTP_ADDR"
	EnvLogLevel    = "PROGRAMS_LOG_LEVEL"
)

const dotEnvFile = ".env"

// configNames are tried in order in each search directory
var configNames = []string{".programs-mcp.json", ".programs-mcp.yaml", ".programs-mcp.yml"}

// Load loads configuration from a JSON or YAML file, then applies
// environment overrides and defaults
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &config)
	default:
		err = json.Unmarshal(data, &config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return finish(&config)
}

// LoadDefault looks for a config file in the current directory, then the
// home directory. With no file it returns the defaults plus environment
// overrides.
func LoadDefault() (*Config, error) {
	dirs := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, home)
	}

	for _, dir := range dirs {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return Load(path)
			}
		}
	}

	return finish(&Config{})
}

// Default returns the built-in configuration without consulting files or
// the environment
func Default() *Config {
	var config Config
	config.setDefaults()
	return &config
}

func finish(config *Config) (*Config, error) {
	lookup, err := envLookup(dotEnvFile)
	if err != nil {
		return nil, err
	}

	if err := config.applyEnv(lookup); err != nil {
		return nil, err
	}

	config.setDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// envLookup prefers the process environment and falls back to values from
// the .env file when one exists. An empty process value counts as unset.
func envLookup(dotEnvPath string) (func(string) (string, bool), error) {
	fileVars := map[string]string{}
	if _, err := os.Stat(dotEnvPath); err == nil {
		fileVars, err = godotenv.Read(dotEnvPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", dotEnvPath, err)
		}
	}

	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v, true
		}
		v, ok := fileVars[key]
		return v, ok
	}, nil
}

// applyEnv overrides file values with environment variables
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := []struct {
		key string
		dst *string
	}{
		{EnvScheduleURL, &c.API.ScheduleURL},
		{EnvListURL, &c.API.ListURL},
		{EnvUserAgent, &c.API.UserAgent},
		{EnvTransport, &c.Server.Transport},
		{EnvHTTPAddr, &c.Server.HTTPAddr},
		{EnvLogLevel, &c.Debug.LogLevel},
	}
	for _, s := range strs {
		if v, ok := lookup(s.key); ok && v != "" {
			*s.dst = v
		}
	}

	if v, ok := lookup(EnvTimeout); ok && v != "" {
		n, err := cast.ToIntE(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvTimeout, err)
		}
		c.API.TimeoutSeconds = n
	}

	if v, ok := lookup(EnvVerifyTLS); ok && v != "" {
		b, err := cast.ToBoolE(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvVerifyTLS, err)
		}
		c.API.VerifyTLS = b
	}

	return nil
}

// setDefaults sets default values for configuration
func (c *Config) setDefaults() {
	// API defaults
	if c.API.ScheduleURL == "" {
		c.API.ScheduleURL = DefaultScheduleURL
	}
	if c.API.ListURL == "" {
		c.API.ListURL = DefaultListURL
	}
	if c.API.UserAgent == "" {
		c.API.UserAgent = DefaultUserAgent
	}
	if c.API.TimeoutSeconds == 0 {
		c.API.TimeoutSeconds = 30
	}

	// Server defaults
	if c.Server.Transport == "" {
		c.Server.Transport = TransportStdio
	}
	if c.Server.HTTPAddr == "" {
		c.Server.HTTPAddr = ":8080"
	}
	if c.Server.Path == "" {
		c.Server.Path = "/mcp"
	}

	// Metrics defaults
	if c.Metrics.Enabled == nil {
		enabled := true
		c.Metrics.Enabled = &enabled
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}

	// Debug defaults
	if c.Debug.LogLevel == "" {
		c.Debug.LogLevel = "info"
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	for name, raw := range map[string]string{
		"schedule_url": c.API.ScheduleURL,
		"list_url":     c.API.ListURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("invalid %s: %q (must be an http or https URL)", name, raw)
		}
	}

	if c.API.TimeoutSeconds < 0 {
		return fmt.Errorf("invalid timeout_seconds: %d (must be positive)", c.API.TimeoutSeconds)
	}

	if c.Server.Transport != TransportStdio && c.Server.Transport != TransportHTTP {
		return fmt.Errorf("invalid transport: %s (must be 'stdio' or 'http')", c.Server.Transport)
	}

	if !strings.HasPrefix(c.Server.Path, "/") {
		return fmt.Errorf("invalid server path: %s (must start with '/')", c.Server.Path)
	}
	if !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("invalid metrics path: %s (must start with '/')", c.Metrics.Path)
	}

	switch strings.ToLower(c.Debug.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log_level: %s (must be debug, info, warn or error)", c.Debug.LogLevel)
	}

	return nil
}

// Timeout returns the upstream request timeout
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// MetricsEnabled reports whether /metrics is served
func (c *Config) MetricsEnabled() bool {
	return c.Metrics.Enabled == nil || *c.Metrics.Enabled
}
