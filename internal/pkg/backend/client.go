// Package backend is the HTTP client for the sports-meet REST API. The API owns
// every record; this package only moves JSON and maps failures to errors the
// handlers can act on.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-sportsmeet/internal/app/observability/metrics"
	"github.com/FACorreiaa/go-sportsmeet/internal/pkg/config"
)

// ErrUnauthorized is returned for 401 and 403 responses. Callers must drop
// the session and send the user to the login page.
var ErrUnauthorized = errors.New("backend rejected credentials")

const maxErrorBody = 4 << 10

// APIError is any other non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned %d", e.Status)
	}
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
}

func (e *APIError) retryable() bool {
	return e.Status >= 500 || e.Status == http.StatusTooManyRequests
}

type bearerKey struct{}

// WithBearer attaches the token sent on every request made with ctx.
func WithBearer(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, bearerKey{}, token)
}

func bearerFrom(ctx context.Context) string {
	token, _ := ctx.Value(bearerKey{}).(string)
	return token
}

type Client struct {
	baseURL string
	http    *http.Client
	retries uint
	logger  *zap.Logger
}

func New(cfg config.BackendConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	retries := cfg.Retries
	if retries == 0 {
		retries = 1
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		retries: retries,
		logger:  logger,
	}
}

// get is retried on transport errors, 5xx and 429; other failures return at once.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body []byte
	err := retry.Do(
		func() error {
			var err error
			body, err = c.do(ctx, http.MethodGet, endpoint, "", nil)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(c.retries),
		retry.Delay(100*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isRetryable),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Warn("Retrying backend request",
				zap.String("path", path),
				zap.Uint("attempt", n+1),
				zap.Error(err))
		}),
	)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return decodeBody(body, out)
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	body, err := c.do(ctx, http.MethodPost, c.baseURL+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return decodeBody(body, out)
}

func (c *Client) postRaw(ctx context.Context, path, contentType string, payload io.Reader, out any) error {
	body, err := c.do(ctx, http.MethodPost, c.baseURL+path, contentType, payload)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return decodeBody(body, out)
}

func (c *Client) do(ctx context.Context, method, endpoint, contentType string, payload io.Reader) ([]byte, error) {
	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, method, endpoint, payload)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := bearerFrom(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.record(ctx, method, 0, start)
		return nil, fmt.Errorf("%s %s: %w", method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	c.record(ctx, method, resp.StatusCode, start)

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%s %s: %w", method, req.URL.Path, ErrUnauthorized)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &APIError{Status: resp.StatusCode, Message: errorMessage(raw)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}

// record tracks one attempt; status 0 means the request never got a response.
func (c *Client) record(ctx context.Context, method string, status int, start time.Time) {
	m := metrics.Get()
	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("status", strconv.Itoa(status)),
	)
	m.BackendRequestDuration.Record(ctx, time.Since(start).Seconds(), attrs)
	if status == 0 || status >= 400 {
		m.BackendErrorsTotal.Add(ctx, 1, attrs)
	}
}

func isRetryable(err error) bool {
	if errors.Is(err, ErrUnauthorized) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.retryable()
	}
	return true
}

// errorMessage pulls "message" or "error" out of a JSON error body.
func errorMessage(raw []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return strings.TrimSpace(string(raw))
}
