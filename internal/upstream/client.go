// Package upstream implements a textual-RPC client for the upstream
// catalog API. It never parses JSON itself; callers get raw
// bytes back. Grounded on other_examples/yourflock-roost__igdb.go's token
// cache and Apicalypse-body POST shape, generalized to endpoint+body+method.
package upstream

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/sandpiper-dev/igdbmatch/internal/config"
	"github.com/sandpiper-dev/igdbmatch/internal/telemetry"
)

// tokenCache holds the cached bearer token used for auth?-optional calls,
// mirroring the yourflock-roost igdb.go tokenCache shape.
type tokenCache struct {
	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// Client sends textual queries and form posts to the upstream API.
type Client struct {
	baseURL    string
	authToken  string
	clientID   string
	httpClient *http.Client
	cache      *tokenCache
}

// New builds an upstream Client from configuration.
func New(cfg *config.Config) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.UpstreamBaseUrl, "/"),
		authToken:  cfg.UpstreamAuthToken,
		clientID:   cfg.UpstreamClientID,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		cache:      &tokenCache{token: cfg.UpstreamAuthToken, expiresAt: time.Now().Add(24 * time.Hour)},
	}
}

// Method is the HTTP verb + body encoding used for one call.
type Method string

const (
	// MethodQuery posts an Apicalypse query body as text/plain — used for
	// cloning ("fields *; limit N; offset M;").
	MethodQuery Method = "query"
	// MethodForm posts application/x-www-form-urlencoded body — used for
	// webhook registration.
	MethodForm Method = "form"
)

// SendStringRequest sends body to endpoint using the given encoding and
// returns the raw response bytes. Errors carry the endpoint and HTTP status
// unparsed; the client never inspects the response body beyond truncating
// it for the error message.
func (c *Client) SendStringRequest(ctx context.Context, endpoint string, body string, method Method) ([]byte, error) {
	ctx, span := telemetry.Tracer("upstream").Start(ctx, "SendStringRequest")
	defer span.End()
	span.SetAttributes(attribute.String("upstream.endpoint", endpoint), attribute.String("upstream.method", string(method)))

	token, err := c.token(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("upstream %s: token: %w", endpoint, err)
	}

	target := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(body))
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("upstream %s: build request: %w", endpoint, err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	if c.clientID != "" {
		req.Header.Set("Client-ID", c.clientID)
	}
	switch method {
	case MethodForm:
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	default:
		req.Header.Set("Content-Type", "text/plain")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("upstream %s: request: %w", endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("upstream %s: read body: %w", endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := fmt.Errorf("upstream %s: HTTP %d: %s", endpoint, resp.StatusCode, truncate(data, 512))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	return data, nil
}

// BuildCloneQuery builds "fields *; limit N; offset M;" for a clone page.
func BuildCloneQuery(limit, offset int) string {
	return fmt.Sprintf("fields *; limit %d; offset %d;", limit, offset)
}

// BuildWebhookForm builds the form-encoded {method, secret, url} body for
// webhook registration.
func BuildWebhookForm(method, secret, callbackURL string) string {
	v := url.Values{}
	v.Set("method", method)
	v.Set("secret", secret)
	v.Set("url", callbackURL)
	return v.Encode()
}

func (c *Client) token(ctx context.Context) (string, error) {
	c.cache.mu.Lock()
	defer c.cache.mu.Unlock()

	if c.cache.token != "" && time.Now().Before(c.cache.expiresAt) {
		return c.cache.token, nil
	}
	if c.authToken == "" {
		return "", fmt.Errorf("no upstream auth token configured")
	}
	c.cache.token = c.authToken
	c.cache.expiresAt = time.Now().Add(24 * time.Hour)
	return c.cache.token, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(bytes.TrimSpace(b[:n])) + "..."
}
