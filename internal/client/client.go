package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kjstillabower/weather-lookup/internal/models"
	"github.com/kjstillabower/weather-lookup/internal/observability"
)

// WeatherSource fetches current conditions for a point in time.
type WeatherSource interface {
	FetchCurrentConditions(ctx context.Context, coords models.Coordinates) (models.WeatherResult, error)
}

var (
	ErrInvalidAPIKey   = errors.New("invalid API key")
	ErrTransport       = errors.New("weather provider unreachable")
	ErrDecode          = errors.New("unexpected weather provider response")
	ErrUpstreamFailure = errors.New("upstream failure")
)

// DefaultBaseURL is the Dark Sky API host.
const DefaultBaseURL = "https://api.darksky.net"

// DefaultTimeout bounds a single forecast request.
const DefaultTimeout = 10 * time.Second

// excludedBlocks limits the forecast response to the "currently" block.
const excludedBlocks = "daily,hourly,minutely,alerts,flags"

const (
	maxResponseBytes = 1 << 20
	snippetBytes     = 200
)

type DarkSkyClient struct {
	apiKey  string
	baseURL string
	units   string
	timeout time.Duration
	client  *http.Client
}

// NewDarkSkyClient returns a client for the forecast endpoint at baseURL.
// units is appended as a query parameter only when non-empty.
func NewDarkSkyClient(apiKey, baseURL, units string, timeout time.Duration) (*DarkSkyClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("%w: API key is required", ErrInvalidAPIKey)
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid API URL: %w", err)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &DarkSkyClient{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		units:   units,
		timeout: timeout,
		client: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// FetchCurrentConditions issues one GET to the forecast endpoint. The call is bounded
// by the client timeout and by ctx, so a cancelled inbound request aborts it.
// It never retries.
func (c *DarkSkyClient) FetchCurrentConditions(ctx context.Context, coords models.Coordinates) (models.WeatherResult, error) {
	start := time.Now()

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := c.buildRequest(reqCtx, coords)
	if err != nil {
		observability.WeatherAPICallsTotal.WithLabelValues("error").Inc()
		return models.WeatherResult{}, fmt.Errorf("build request: %w", err)
	}

	if corrID := observability.CorrelationID(ctx); corrID != "" {
		req.Header.Set("X-Correlation-ID", corrID)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		observability.WeatherAPICallsTotal.WithLabelValues("error").Inc()
		observability.WeatherAPIDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		if ctxErr := reqCtx.Err(); ctxErr != nil {
			return models.WeatherResult{}, fmt.Errorf("%w: request aborted: %w", ErrTransport, ctxErr)
		}
		return models.WeatherResult{}, fmt.Errorf("%w: %s", ErrTransport, c.redact(err.Error()))
	}
	defer resp.Body.Close()

	status := statusLabel(resp.StatusCode)
	observability.WeatherAPICallsTotal.WithLabelValues(status).Inc()
	observability.WeatherAPIDuration.WithLabelValues(status).Observe(time.Since(start).Seconds())

	if err := c.handleErrorResponse(resp); err != nil {
		return models.WeatherResult{}, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return models.WeatherResult{}, fmt.Errorf("%w: read response body: %s", ErrTransport, c.redact(err.Error()))
	}

	return decodeResult(body)
}

func (c *DarkSkyClient) buildRequest(ctx context.Context, coords models.Coordinates) (*http.Request, error) {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API URL: %w", err)
	}

	point := fmt.Sprintf("%s,%s,%d", models.FormatDegrees(coords.Latitude), models.FormatDegrees(coords.Longitude), coords.Time)
	base.Path = strings.TrimRight(base.Path, "/") + "/forecast/" + c.apiKey + "/" + point
	base.RawPath = ""

	// Commas in exclude stay literal, matching the provider's documented form.
	query := "exclude=" + excludedBlocks
	if c.units != "" {
		query += "&units=" + url.QueryEscape(c.units)
	}
	base.RawQuery = query

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %s", c.redact(err.Error()))
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (c *DarkSkyClient) handleErrorResponse(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: HTTP %d", ErrInvalidAPIKey, resp.StatusCode)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: HTTP %d", ErrUpstreamFailure, resp.StatusCode)
	}

	return nil
}

// decodeResult maps the forecast payload, ignoring unknown fields.
// Failures carry the body size and a short prefix for diagnosis.
func decodeResult(body []byte) (models.WeatherResult, error) {
	if bytes.Equal(bytes.TrimSpace(body), []byte("null")) {
		return models.WeatherResult{}, fmt.Errorf("%w: null body", ErrDecode)
	}
	var result models.WeatherResult
	if err := json.Unmarshal(body, &result); err != nil {
		return models.WeatherResult{}, fmt.Errorf("%w: %v (body %d bytes: %q)", ErrDecode, err, len(body), snippet(body))
	}
	return result, nil
}

func snippet(body []byte) string {
	if len(body) <= snippetBytes {
		return string(body)
	}
	return string(body[:snippetBytes]) + "..."
}

// redact removes the API key from text derived from the request URL.
func (c *DarkSkyClient) redact(s string) string {
	return strings.ReplaceAll(s, c.apiKey, "REDACTED")
}

func statusLabel(statusCode int) string {
	if statusCode >= 200 && statusCode < 300 {
		return "success"
	}
	if statusCode == 429 {
		return "rate_limited"
	}
	if statusCode >= 400 && statusCode < 500 {
		return "client_error"
	}
	if statusCode >= 500 {
		return "server_error"
	}
	return "error"
}
