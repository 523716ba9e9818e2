// Package manifest reads and rewrites the Mini App manifest
// (public/.well-known/farcaster.json). Patches are pure transforms over the
// decoded document so fields this tool does not know about survive a
// round trip untouched.
package manifest

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// DefaultPath is the manifest location relative to the project root.
const DefaultPath = "public/.well-known/farcaster.json"

// Document is the decoded manifest. A raw map keeps unknown fields intact.
type Document map[string]any

// ScreenshotPatch carries the values written by the screenshot pipeline.
type ScreenshotPatch struct {
	// Domain is the bare app domain without a scheme.
	Domain     string
	EmbedFile  string
	SplashFile string
}

// Load reads and decodes the manifest at path.
func Load(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return doc, nil
}

// Save encodes doc with 2-space indentation and writes it atomically via a
// temp file rename.
func Save(path string, doc Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	data = append(data, '\n')
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp) //nolint:errcheck
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// ApplyScreenshots returns a copy of doc with the screenshot asset URLs set
// and homeUrl/webhookUrl rewritten for the patch domain. The input document
// is not modified.
func ApplyScreenshots(doc Document, p ScreenshotPatch) Document {
	out, app := clone(doc)
	base := "https://" + p.Domain
	app["imageUrl"] = base + "/images/" + p.EmbedFile
	app["splashImageUrl"] = base + "/images/" + p.SplashFile
	app["homeUrl"] = base
	app["webhookUrl"] = base + "/api/webhook"
	return out
}

// ApplyIcon returns a copy of doc with iconUrl pointing at iconFile under
// origin (scheme plus host). The input document is not modified.
func ApplyIcon(doc Document, origin, iconFile string) Document {
	out, app := clone(doc)
	app["iconUrl"] = strings.TrimRight(origin, "/") + "/images/" + iconFile
	return out
}

// Origin resolves the base origin for icon URLs: the scheme and host of the
// manifest's existing homeUrl when parseable, else https://<fallbackDomain>,
// else ok=false.
func Origin(doc Document, fallbackDomain string) (string, bool) {
	if app, ok := doc["miniapp"].(map[string]any); ok {
		if raw, ok := app["homeUrl"].(string); ok && strings.TrimSpace(raw) != "" {
			if u, err := url.Parse(strings.TrimSpace(raw)); err == nil && u.Scheme != "" && u.Host != "" {
				return u.Scheme + "://" + u.Host, true
			}
		}
	}
	if d := strings.TrimSpace(fallbackDomain); d != "" {
		return "https://" + d, true
	}
	return "", false
}

// AppName returns the trimmed miniapp.name, or "" when absent.
func AppName(doc Document) string {
	app, ok := doc["miniapp"].(map[string]any)
	if !ok {
		return ""
	}
	name, _ := app["name"].(string)
	return strings.TrimSpace(name)
}

// clone copies the top level and the miniapp object so patches never alias
// the caller's maps. Values outside miniapp are shared and never mutated
// here.
func clone(doc Document) (Document, map[string]any) {
	out := make(Document, len(doc)+1)
	for k, v := range doc {
		out[k] = v
	}
	app := make(map[string]any)
	if prev, ok := doc["miniapp"].(map[string]any); ok {
		for k, v := range prev {
			app[k] = v
		}
	}
	out["miniapp"] = app
	return out, app
}
