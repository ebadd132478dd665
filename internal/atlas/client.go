package atlas

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Esmaay/atlas-activity/internal/observability"
)

// Client exposes the upstream Atlas API operations consumed by the activity
// feed. Implementations must be safe for concurrent use.
type Client interface {
	GroupList(ctx context.Context) ([]Group, error)
	RecentActivities(ctx context.Context, limit, offset int) ([]Activity, error)
}

// envelope is the common response wrapper used by the Atlas API.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// HTTPClient talks to the Atlas API over HTTP.
type HTTPClient struct {
	baseURL string
	client  *http.Client
	logger  zerolog.Logger
}

// NewHTTPClient constructs an Atlas API client for the given base URL.
func NewHTTPClient(baseURL string, timeout time.Duration, logger zerolog.Logger) (*HTTPClient, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, fmt.Errorf("atlas base url must not be empty")
	}
	if _, err := url.Parse(trimmed); err != nil {
		return nil, fmt.Errorf("invalid atlas base url: %w", err)
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &HTTPClient{
		baseURL: trimmed,
		client:  &http.Client{Timeout: timeout},
		logger:  logger.With().Str("component", "atlas_client").Logger(),
	}, nil
}

// GroupList fetches the scaling groups known to the Atlas API.
func (c *HTTPClient) GroupList(ctx context.Context) ([]Group, error) {
	var groups []Group
	if err := c.getJSON(ctx, "groups", "/api/v1/groups", &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// RecentActivities fetches one window of the activity log, newest first.
func (c *HTTPClient) RecentActivities(ctx context.Context, limit, offset int) ([]Activity, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))

	var activities []Activity
	if err := c.getJSON(ctx, "activities", "/api/v1/activities/recent?"+query.Encode(), &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

func (c *HTTPClient) getJSON(ctx context.Context, endpoint, path string, out interface{}) error {
	start := time.Now()
	status := "error"
	defer func() {
		observability.UpstreamRequests().WithLabelValues(endpoint, status).Inc()
		observability.UpstreamLatency().WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build atlas request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("atlas request failed: %w", err)
	}
	defer resp.Body.Close()

	status = strconv.Itoa(resp.StatusCode)
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.logger.Warn().Int("status", resp.StatusCode).Str("endpoint", endpoint).Msg("atlas api returned non-success status")
		return fmt.Errorf("atlas api %s returned status %d", endpoint, resp.StatusCode)
	}

	var wrapper envelope
	if err := json.NewDecoder(resp.Body).Decode(&wrapper); err != nil {
		return fmt.Errorf("decode atlas response: %w", err)
	}
	if !wrapper.Success {
		return fmt.Errorf("atlas api %s rejected request: %s", endpoint, wrapper.Message)
	}
	if len(wrapper.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(wrapper.Data, out); err != nil {
		return fmt.Errorf("decode atlas %s payload: %w", endpoint, err)
	}

	return nil
}
