// Package storeapi is the JSON-over-HTTP client for the store backend.
package storeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MikeMC777/ordenes-storefront/internal/logging"
)

// StatusError is a non-2xx answer from the backend.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if len(body) > 200 {
		body = body[:200]
	}
	if body == "" {
		return fmt.Sprintf("store api: %d %s", e.Code, http.StatusText(e.Code))
	}
	return fmt.Sprintf("store api: %d %s: %s", e.Code, http.StatusText(e.Code), body)
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}

type tokenKey struct{}

// WithToken makes calls made with ctx use token instead of the client's own.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

type Client struct {
	HTTP    *http.Client
	BaseURL string
	logger  *zap.Logger

	mu    sync.RWMutex
	token string
}

func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		HTTP:    &http.Client{Timeout: timeout},
		BaseURL: strings.TrimRight(baseURL, "/"),
		logger:  logging.OrNop(logger),
	}
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) bearer(ctx context.Context) string {
	if t, ok := ctx.Value(tokenKey{}).(string); ok && t != "" {
		return t
	}
	return c.Token()
}

type callOpt func(*http.Request)

func idempotencyKey(key string) callOpt {
	return func(r *http.Request) {
		if key != "" {
			r.Header.Set("Idempotency-Key", key)
		}
	}
}

// do sends one request. A nil out discards the body. A 204 or an empty body
// leaves out untouched.
func (c *Client) do(ctx context.Context, method, path string, in, out any, opts ...callOpt) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if t := c.bearer(ctx); t != "" {
		req.Header.Set("Authorization", "Bearer "+t)
	}
	rid := RequestIDFrom(ctx)
	if rid == "" {
		rid = uuid.NewString()
	}
	req.Header.Set("X-Request-ID", rid)
	for _, o := range opts {
		o(req)
	}

	start := time.Now()
	res, err := c.HTTP.Do(req)
	if err != nil {
		c.logger.Debug("store api call failed",
			zap.String("method", method), zap.String("path", path),
			zap.String("rid", rid), zap.Error(err))
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("%s %s: read body: %w", method, path, err)
	}
	c.logger.Debug("store api call",
		zap.String("method", method), zap.String("path", path),
		zap.Int("status", res.StatusCode), zap.Duration("dur", time.Since(start)),
		zap.String("rid", rid))

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &StatusError{Code: res.StatusCode, Body: string(raw)}
	}
	if out == nil || res.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

type ridKey struct{}

// WithRequestID propagates a request id to backend calls made with ctx.
func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, ridKey{}, rid)
}

func RequestIDFrom(ctx context.Context) string {
	rid, _ := ctx.Value(ridKey{}).(string)
	return rid
}
