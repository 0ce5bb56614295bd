package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/sahabhq/console/internal/common/cnst"
	"github.com/sahabhq/console/internal/common/config"
	"github.com/sahabhq/console/pkg/metrics"
	"github.com/sahabhq/console/pkg/trace"
)

// Client is the typed HTTP client for the upstream platform API. It
// attaches the caller's bearer token per call and an optional process
// wide API key header, and normalizes non-2xx responses into *Error.
// It does not retry and does not cache.
type Client struct {
	logger  *zap.Logger
	http    *http.Client
	baseURL string
	apiKey  string
	metrics *metrics.Metrics
}

// NewClient creates an upstream client from configuration. The metrics
// handle may be nil, e.g. in tests.
func NewClient(logger *zap.Logger, cfg config.UpstreamConfig, m *metrics.Metrics) *Client {
	return &Client{
		logger: logger.Named("platform"),
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		metrics: m,
	}
}

// do performs one upstream call and returns the raw response body.
// Non-2xx responses come back as *Error.
func (c *Client) do(ctx context.Context, token, method, path string, query url.Values, body any) ([]byte, error) {
	resource := resourceFromPath(path)

	scope := trace.Tracer(cnst.TraceUpstream).Start(ctx, cnst.SpanUpstreamRequest).
		WithAttrs(
			attribute.String(cnst.AttrUpstreamResource, resource),
			attribute.String(cnst.AttrUpstreamMethod, method),
		)
	defer scope.End()
	ctx = scope.Ctx

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	start := time.Now()
	if c.metrics != nil {
		c.metrics.UpstreamStart(resource)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if c.metrics != nil {
			c.metrics.UpstreamDone(resource, method, 0, start)
		}
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	if c.metrics != nil {
		c.metrics.UpstreamDone(resource, method, resp.StatusCode, start)
	}
	scope.WithAttrs(attribute.Int(cnst.AttrHTTPStatusCode, resp.StatusCode))

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := parseError(resp.StatusCode, respBody)
		c.logger.Warn("upstream returned an error",
			zap.String("resource", resource),
			zap.String("method", method),
			zap.Int("status_code", resp.StatusCode),
			zap.String("message", apiErr.Message))
		return nil, apiErr
	}

	return respBody, nil
}

func (c *Client) get(ctx context.Context, token, path string, query url.Values) ([]byte, error) {
	return c.do(ctx, token, http.MethodGet, path, query, nil)
}

func (c *Client) post(ctx context.Context, token, path string, body any) ([]byte, error) {
	return c.do(ctx, token, http.MethodPost, path, nil, body)
}

func (c *Client) put(ctx context.Context, token, path string, body any) ([]byte, error) {
	return c.do(ctx, token, http.MethodPut, path, nil, body)
}

func (c *Client) delete(ctx context.Context, token, path string) ([]byte, error) {
	return c.do(ctx, token, http.MethodDelete, path, nil, nil)
}

// list is the paginated list envelope the upstream wraps collections in.
type list[T any] struct {
	Results []T `json:"results"`
	Count   int `json:"count"`
}

// decodeList accepts both the `{results, count}` envelope and a bare
// JSON array.
func decodeList[T any](data []byte) ([]T, int, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var bare []T
		if err := json.Unmarshal(trimmed, &bare); err != nil {
			return nil, 0, fmt.Errorf("failed to decode list response: %w", err)
		}
		return bare, len(bare), nil
	}

	var envelope list[T]
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, 0, fmt.Errorf("failed to decode list response: %w", err)
	}
	count := envelope.Count
	if count == 0 {
		count = len(envelope.Results)
	}
	return envelope.Results, count, nil
}

// decodeOne decodes a single-object response.
func decodeOne[T any](data []byte) (*T, error) {
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &out, nil
}

// resourceFromPath derives the metrics/tracing resource label from the
// first path segment.
func resourceFromPath(path string) string {
	p := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(p, '/'); i >= 0 {
		p = p[:i]
	}
	if p == "" {
		return "unknown"
	}
	return p
}
