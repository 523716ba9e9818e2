package imagegen

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the together.ai API root.
const DefaultBaseURL = "https://api.together.xyz"

// DefaultModel targets the free fast tier; diffusionSteps stays low to
// match it.
const DefaultModel = "black-forest-labs/FLUX.1-schnell-Free"

const (
	diffusionSteps = 4
	seedRange      = 1_000_000
)

// Client calls a together.ai-compatible image generation endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	width      int
	height     int
	httpClient *http.Client
}

var _ Generator = (*Client)(nil)

// NewClient creates a client for the image API at baseURL. Empty baseURL and
// model fall back to the defaults; images are requested at the manifest icon
// size.
func NewClient(baseURL, apiKey, model string, timeout time.Duration) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		width:      IconWidth,
		height:     IconHeight,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Generate requests one base64-encoded image for prompt and returns the
// decoded bytes. Each call draws a fresh seed so reruns vary.
func (c *Client) Generate(ctx context.Context, prompt string) ([]byte, error) {
	reqBody := map[string]any{
		"model":           c.model,
		"prompt":          prompt,
		"width":           c.width,
		"height":          c.height,
		"steps":           diffusionSteps,
		"n":               1,
		"seed":            rand.Intn(seedRange),
		"response_format": "base64",
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	endpoint := c.baseURL + "/v1/images/generations"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("http do: %w", err)
	}
	defer func() { _ = resp.Body.Close() }() //nolint:errcheck
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Message: apiErrorMessage(body)}
	}

	var apiResp struct {
		Data []struct {
			B64JSON string `json:"b64_json"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("parse response: %w; body: %s", err, truncate(string(body), 1000))
	}
	if len(apiResp.Data) == 0 {
		return nil, errors.New("no image returned")
	}
	b64 := apiResp.Data[0].B64JSON
	if strings.TrimSpace(b64) == "" {
		return nil, errors.New("image payload missing base64 data")
	}
	img, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("decode b64 image: %w", err)
	}
	return img, nil
}

// apiErrorMessage digs the human-readable message out of an API error body,
// falling back to the raw truncated body.
func apiErrorMessage(body []byte) string {
	var obj map[string]any
	if json.Unmarshal(body, &obj) == nil {
		if msg, ok := obj["error"].(string); ok && msg != "" {
			return msg
		}
		if errObj, ok := obj["error"].(map[string]any); ok {
			if msg, ok := errObj["message"].(string); ok && msg != "" {
				return msg
			}
		}
	}
	return truncate(strings.TrimSpace(string(body)), 500)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
