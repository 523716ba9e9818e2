package manifest

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func sample() Document {
	return Document{
		"accountAssociation": map[string]any{"header": "h", "payload": "p"},
		"miniapp": map[string]any{
			"version":  "1",
			"name":     "Foo",
			"homeUrl":  "https://old.example/app",
			"imageUrl": "https://old.example/images/old.png",
			"custom":   "keep-me",
		},
	}
}

func TestApplyScreenshotsSetsURLs(t *testing.T) {
	got := ApplyScreenshots(sample(), ScreenshotPatch{
		Domain:     "app.example.com",
		EmbedFile:  "screenshot-embed-T.png",
		SplashFile: "screenshot-splash-T.png",
	})
	app, ok := got["miniapp"].(map[string]any)
	if !ok {
		t.Fatalf("miniapp missing from patched document")
	}
	checks := map[string]string{
		"imageUrl":       "https://app.example.com/images/screenshot-embed-T.png",
		"splashImageUrl": "https://app.example.com/images/screenshot-splash-T.png",
		"homeUrl":        "https://app.example.com",
		"webhookUrl":     "https://app.example.com/api/webhook",
	}
	for field, want := range checks {
		if app[field] != want {
			t.Errorf("%s = %v, want %q", field, app[field], want)
		}
	}
	if app["custom"] != "keep-me" {
		t.Errorf("unknown miniapp field dropped: %v", app["custom"])
	}
	if _, ok := got["accountAssociation"]; !ok {
		t.Errorf("unknown top-level field dropped")
	}
}

func TestApplyScreenshotsDoesNotMutateInput(t *testing.T) {
	doc := sample()
	_ = ApplyScreenshots(doc, ScreenshotPatch{Domain: "new.example", EmbedFile: "e.png", SplashFile: "s.png"})
	app := doc["miniapp"].(map[string]any)
	if app["imageUrl"] != "https://old.example/images/old.png" {
		t.Fatalf("input document was mutated: imageUrl = %v", app["imageUrl"])
	}
	if app["homeUrl"] != "https://old.example/app" {
		t.Fatalf("input document was mutated: homeUrl = %v", app["homeUrl"])
	}
}

func TestApplyIcon(t *testing.T) {
	got := ApplyIcon(sample(), "https://app.example.com", "flux-icon-T.png")
	app := got["miniapp"].(map[string]any)
	if app["iconUrl"] != "https://app.example.com/images/flux-icon-T.png" {
		t.Fatalf("iconUrl = %v", app["iconUrl"])
	}
	if app["name"] != "Foo" {
		t.Fatalf("existing field lost: name = %v", app["name"])
	}
}

func TestOriginPrefersHomeURL(t *testing.T) {
	origin, ok := Origin(sample(), "fallback.example")
	if !ok || origin != "https://old.example" {
		t.Fatalf("Origin = %q, %v; want https://old.example", origin, ok)
	}
}

func TestOriginFallsBackToDomain(t *testing.T) {
	cases := []Document{
		{},
		{"miniapp": map[string]any{}},
		{"miniapp": map[string]any{"homeUrl": "not a url"}},
		{"miniapp": map[string]any{"homeUrl": "/relative/path"}},
	}
	for i, doc := range cases {
		origin, ok := Origin(doc, "fallback.example")
		if !ok || origin != "https://fallback.example" {
			t.Errorf("case %d: Origin = %q, %v; want https://fallback.example", i, origin, ok)
		}
	}
}

func TestOriginUnresolvable(t *testing.T) {
	if origin, ok := Origin(Document{}, ""); ok {
		t.Fatalf("expected no origin, got %q", origin)
	}
}

func TestAppName(t *testing.T) {
	if got := AppName(sample()); got != "Foo" {
		t.Fatalf("AppName = %q", got)
	}
	if got := AppName(Document{"miniapp": map[string]any{"name": "  Spaced  "}}); got != "Spaced" {
		t.Fatalf("AppName = %q, want trimmed", got)
	}
	if got := AppName(Document{}); got != "" {
		t.Fatalf("AppName on empty doc = %q", got)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "public", ".well-known", "farcaster.json")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	orig := `{
  "accountAssociation": {"header": "h"},
  "extra": [1, 2],
  "miniapp": {"name": "Foo", "custom": 7}
}`
	if err := os.WriteFile(path, []byte(orig), 0o644); err != nil {
		t.Fatalf("seed manifest: %v", err)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	doc = ApplyScreenshots(doc, ScreenshotPatch{Domain: "app.example.com", EmbedFile: "e.png", SplashFile: "s.png"})
	if err := Save(path, doc); err != nil {
		t.Fatalf("Save: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(raw), "\n  \"miniapp\"") {
		t.Fatalf("expected 2-space indentation, got:\n%s", raw)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if _, ok := reloaded["extra"]; !ok {
		t.Fatalf("unknown top-level field lost on round trip")
	}
	app := reloaded["miniapp"].(map[string]any)
	if app["custom"] != float64(7) {
		t.Fatalf("unknown miniapp field lost: %v", app["custom"])
	}
	if app["homeUrl"] != "https://app.example.com" {
		t.Fatalf("homeUrl = %v", app["homeUrl"])
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err == nil {
		t.Fatalf("expected error for missing manifest")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
}
