package imagegen

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// 1x1 transparent PNG.
const tinyPNGB64 = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mP8/x8AAwMCAO9cFmgAAAAASUVORK5CYII="

func TestGenerateSendsExpectedPayload(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		_, _ = fmt.Fprintf(w, `{"data":[{"b64_json":%q}]}`, tinyPNGB64)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key-123", "test/model", 5*time.Second)
	img, err := c.Generate(context.Background(), "an icon prompt")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	want, _ := base64.StdEncoding.DecodeString(tinyPNGB64)
	if string(img) != string(want) {
		t.Fatalf("decoded image mismatch: %d bytes", len(img))
	}

	if gotPath != "/v1/images/generations" {
		t.Errorf("path = %q", gotPath)
	}
	if gotAuth != "Bearer key-123" {
		t.Errorf("auth = %q", gotAuth)
	}
	checks := map[string]any{
		"model":           "test/model",
		"prompt":          "an icon prompt",
		"width":           float64(208),
		"height":          float64(208),
		"steps":           float64(4),
		"n":               float64(1),
		"response_format": "base64",
	}
	for field, want := range checks {
		if gotBody[field] != want {
			t.Errorf("%s = %v, want %v", field, gotBody[field], want)
		}
	}
}

func TestGenerateSeedStaysInRange(t *testing.T) {
	var seeds []float64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		seed, ok := body["seed"].(float64)
		if !ok {
			t.Errorf("seed missing or not a number: %v", body["seed"])
		}
		seeds = append(seeds, seed)
		_, _ = fmt.Fprintf(w, `{"data":[{"b64_json":%q}]}`, tinyPNGB64)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", "", 5*time.Second)
	for i := 0; i < 5; i++ {
		if _, err := c.Generate(context.Background(), "p"); err != nil {
			t.Fatalf("Generate %d: %v", i, err)
		}
	}
	for _, s := range seeds {
		if s < 0 || s >= 1_000_000 || s != float64(int(s)) {
			t.Errorf("seed %v outside [0, 1e6) or not integral", s)
		}
	}
}

func TestGenerateEmptyResultList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", "", 5*time.Second)
	_, err := c.Generate(context.Background(), "p")
	if err == nil || !strings.Contains(err.Error(), "no image returned") {
		t.Fatalf("expected empty-result error, got %v", err)
	}
}

func TestGenerateMissingBase64Field(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"url":"https://cdn.example/img.png"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", "", 5*time.Second)
	_, err := c.Generate(context.Background(), "p")
	if err == nil || !strings.Contains(err.Error(), "base64") {
		t.Fatalf("expected missing-base64 error, got %v", err)
	}
}

func TestGenerateSurfacesAPIErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":{"message":"model overloaded"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", "", 5*time.Second)
	_, err := c.Generate(context.Background(), "p")
	if err == nil || !strings.Contains(err.Error(), "model overloaded") {
		t.Fatalf("expected API message surfaced, got %v", err)
	}
	var se *StatusError
	if !errors.As(err, &se) || se.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected StatusError 503, got %v", err)
	}
}

func TestIsRateLimited(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{&StatusError{StatusCode: http.StatusTooManyRequests, Message: "slow down"}, true},
		{fmt.Errorf("wrapped: %w", &StatusError{StatusCode: 429, Message: "x"}), true},
		{errors.New("Rate limit exceeded, retry later"), true},
		{&StatusError{StatusCode: 500, Message: "boom"}, false},
		{errors.New("connection refused"), false},
	}
	for i, tc := range cases {
		if got := IsRateLimited(tc.err); got != tc.want {
			t.Errorf("case %d: IsRateLimited(%v) = %v, want %v", i, tc.err, got, tc.want)
		}
	}
}

func TestBuildPromptQuotesName(t *testing.T) {
	p := BuildPrompt("Foo")
	if !strings.Contains(p, "'Foo'") {
		t.Fatalf("prompt missing quoted name: %q", p)
	}
	if got := BuildPrompt("  Foo  "); !strings.Contains(got, "'Foo'") {
		t.Fatalf("prompt should trim the name: %q", got)
	}
	if got := BuildPrompt(""); !strings.Contains(got, "'Mini App'") {
		t.Fatalf("prompt should fall back to the placeholder: %q", got)
	}
}
