// Package pagemeta fetches a deployed page and extracts its display title,
// used as a fallback source for the icon prompt.
package pagemeta

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"
)

const maxBodyBytes = 2 << 20 // 2 MiB

// Title fetches pageURL and returns the document title as seen by the
// readability extractor. The fetch is bounded in time and size; non-HTML
// responses are rejected.
func Title(ctx context.Context, pageURL string, timeout time.Duration) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(pageURL))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("page url %q must be absolute", pageURL)
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	client := &http.Client{Timeout: timeout}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("User-Agent", "miniassets-pagemeta/0.1")
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("http: %w", err)
	}
	defer func() { _ = resp.Body.Close() }() //nolint:errcheck
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("fetch %s: status %d", parsed.Host, resp.StatusCode)
	}
	ct := resp.Header.Get("Content-Type")
	if !strings.Contains(strings.ToLower(ct), "text/html") {
		return "", fmt.Errorf("fetch %s: content type %q is not HTML", parsed.Host, ct)
	}
	limited := io.LimitedReader{R: resp.Body, N: maxBodyBytes + 1}
	data, err := io.ReadAll(&limited)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	if int64(len(data)) > maxBodyBytes {
		return "", fmt.Errorf("page too large: limit %d bytes", maxBodyBytes)
	}

	art, err := readability.FromReader(bytes.NewReader(data), parsed)
	if err != nil {
		return "", fmt.Errorf("readability extract: %w", err)
	}
	title := strings.TrimSpace(art.Title)
	if title == "" {
		return "", errors.New("page has no usable title")
	}
	return title, nil
}
