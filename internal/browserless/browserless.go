// Package browserless is a client for browserless-style screenshot rendering
// APIs: one POST to {base}/screenshot with a JSON body describing the target
// page and viewport, raw image bytes back.
package browserless

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
)

// Viewport is a fixed capture size in CSS pixels.
type Viewport struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Capture sizes for the two screenshot assets in the manifest.
var (
	EmbedViewport  = Viewport{Width: 768, Height: 512}
	SplashViewport = Viewport{Width: 424, Height: 695}
)

// DefaultWaitUntil is the page-settle strategy sent with every capture.
const DefaultWaitUntil = "networkidle0"

// DefaultWaitTimeout bounds the readiness probe when a marker is configured.
const DefaultWaitTimeout = 10 * time.Second

// Request describes a single screenshot capture.
type Request struct {
	// URL is the page to render; https:// is assumed when no scheme is given.
	URL      string
	Viewport Viewport
	// WaitFor, when non-empty, is a marker string the rendered page text
	// must contain before the shot is taken. Empty omits the probe.
	WaitFor     string
	WaitTimeout time.Duration
	// WaitUntil overrides DefaultWaitUntil when non-empty.
	WaitUntil string
}

// Client issues capture requests against one screenshot API endpoint.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a client for the screenshot API at baseURL. token, when
// non-empty, is appended to every request as the token query parameter.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Capture renders req.URL at req.Viewport and returns the raw image bytes.
// Success requires a 2xx status and an image content type; anything else is
// an error carrying the response status and text.
func (c *Client) Capture(ctx context.Context, req Request) ([]byte, error) {
	endpoint, err := c.endpoint()
	if err != nil {
		return nil, err
	}
	// Token-free form for error messages.
	display := c.baseURL + "/screenshot"

	waitUntil := req.WaitUntil
	if waitUntil == "" {
		waitUntil = DefaultWaitUntil
	}
	body := map[string]any{
		"url":         NormalizeTargetURL(req.URL),
		"gotoOptions": map[string]any{"waitUntil": waitUntil},
		"viewport":    req.Viewport,
	}
	if strings.TrimSpace(req.WaitFor) != "" {
		fn, err := WaitForTextFunction(req.WaitFor)
		if err != nil {
			return nil, err
		}
		timeout := req.WaitTimeout
		if timeout <= 0 {
			timeout = DefaultWaitTimeout
		}
		body["waitForFunction"] = map[string]any{
			"fn":      fn,
			"timeout": int(timeout / time.Millisecond),
		}
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("http do: %w", err)
	}
	defer func() { _ = resp.Body.Close() }() //nolint:errcheck
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("screenshot API %s: %d: %s", display, resp.StatusCode, truncate(string(data), 2000))
	}
	ct := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(strings.ToLower(ct), "image/") {
		return nil, fmt.Errorf("screenshot API %s: unexpected content type %q: %s", display, ct, truncate(string(data), 500))
	}
	return data, nil
}

// endpoint joins /screenshot onto the base URL, preserving any query already
// present and adding the token when configured.
func (c *Client) endpoint() (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse api url: %w", err)
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/screenshot"
	if c.token != "" {
		q := u.Query()
		q.Set("token", c.token)
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// NormalizeTargetURL prepends https:// when raw carries no scheme.
func NormalizeTargetURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.Contains(trimmed, "://") {
		return trimmed
	}
	return "https://" + trimmed
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
