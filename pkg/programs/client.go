package programs

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/soypete/programs-mcp/pkg/logging"
	"github.com/soypete/programs-mcp/pkg/metrics"
)

const (
	// DefaultScheduleURL serves the filter and details tasks
	DefaultScheduleURL = "https://api.ishafoundation.org/scheduleApi/api.php"

	// DefaultListURL serves the country and city lists
	DefaultListURL = "https://www.ishafoundation.org/index.php"

	// DefaultUserAgent identifies this client to the API
	DefaultUserAgent = "isha-programs-mcp/1.0-go"

	// DefaultTimeout is the per-request ceiling
	DefaultTimeout = 30 * time.Second
)

const (
	endpointSchedule = "schedule"
	endpointList     = "list"
)

// ClientOptions configures a Client. Zero values fall back to the defaults.
type ClientOptions struct {
	ScheduleURL string
	ListURL     string
	UserAgent   string
	Timeout     time.Duration

	// VerifyTLS enables certificate verification. The schedule API has
	// historically served certificates that fail verification, so it is off
	// unless asked for.
	VerifyTLS bool

	// HTTPClient replaces the client built from Timeout and VerifyTLS
	HTTPClient *http.Client

	Logger *slog.Logger
}

// Client handles HTTP communication with the schedule API. It is safe for
// concurrent use and is meant to be shared for the life of the process.
type Client struct {
	scheduleURL string
	listURL     string
	userAgent   string
	httpClient  *http.Client
	logger      *slog.Logger
}

// NewClient creates a new schedule API client
func NewClient(opts ClientOptions) *Client {
	c := &Client{
		scheduleURL: opts.ScheduleURL,
		listURL:     opts.ListURL,
		userAgent:   opts.UserAgent,
		httpClient:  opts.HTTPClient,
		logger:      opts.Logger,
	}

	if c.scheduleURL == "" {
		c.scheduleURL = DefaultScheduleURL
	}
	if c.listURL == "" {
		c.listURL = DefaultListURL
	}
	if c.userAgent == "" {
		c.userAgent = DefaultUserAgent
	}
	if c.logger == nil {
		c.logger = logging.Discard()
	}

	if c.httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}

		transport := http.DefaultTransport.(*http.Transport).Clone()
		if !opts.VerifyTLS {
			transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
		}

		c.httpClient = &http.Client{
			Timeout:   timeout,
			Transport: transport,
		}
	}

	return c
}

// get performs a GET against baseURL with params and returns the body
func (c *Client) get(ctx context.Context, endpoint, baseURL string, params url.Values) ([]byte, error) {
	fullURL := baseURL
	if len(params) > 0 {
		fullURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start)
	metrics.UpstreamRequestDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()
	c.logger.Debug("upstream request",
		"endpoint", endpoint,
		"task", params.Get("task"),
		"status", resp.StatusCode,
		"duration", elapsed)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("API error (%d): %s", resp.StatusCode, string(bytes.TrimSpace(body)))
	}

	return body, nil
}

// Search runs a filter-endpoint query and returns the flattened programs
func (c *Client) Search(ctx context.Context, q SearchQuery) ([]Program, error) {
	body, err := c.get(ctx, endpointSchedule, c.scheduleURL, q.Params())
	if err != nil {
		return nil, err
	}

	return ExtractPrograms(body)
}

// Details fetches a program's details and returns them as indented JSON,
// keeping the API's key order
func (c *Client) Details(ctx context.Context, programID string) (string, error) {
	body, err := c.get(ctx, endpointSchedule, c.scheduleURL, DetailsParams(programID))
	if err != nil {
		return "", err
	}

	var out bytes.Buffer
	if err := json.Indent(&out, bytes.TrimSpace(body), "", "  "); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	return out.String(), nil
}

// Countries lists the countries that currently have programs
func (c *Client) Countries(ctx context.Context) ([]string, error) {
	body, err := c.get(ctx, endpointList, c.listURL, CountriesParams())
	if err != nil {
		return nil, err
	}

	return ParseNameList(body)
}

// Cities lists the cities within country that currently have programs
func (c *Client) Cities(ctx context.Context, country string) ([]string, error) {
	body, err := c.get(ctx, endpointList, c.listURL, CitiesParams(country))
	if err != nil {
		return nil, err
	}

	return ParseNameList(body)
}
