// Package assets handles the lifecycle of generated image files under the
// public assets directory: canonical naming, stale-file sweeps, and atomic
// persistence.
package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Timestamp formats t for embedding in generated filenames: UTC ISO-8601
// with ':' and '.' replaced by '-' so the result is safe on every filesystem.
func Timestamp(t time.Time) string {
	s := t.UTC().Format("2006-01-02T15:04:05.000Z")
	s = strings.ReplaceAll(s, ":", "-")
	return strings.ReplaceAll(s, ".", "-")
}

// Filename builds the canonical asset name <prefix>-<kind>-<timestamp>.png.
func Filename(prefix, kind string, t time.Time) string {
	return prefix + "-" + kind + "-" + Timestamp(t) + ".png"
}

// RemoveStale deletes every regular file under dir whose name starts with
// prefix followed by a dash and ends with ext. A missing directory is a
// no-op. Per-file failures do not stop the sweep; they are returned as
// warnings for the caller to log.
func RemoveStale(dir, prefix, ext string) (removed []string, warnings []error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, []error{fmt.Errorf("list %s: %w", dir, err)}
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, prefix+"-") || !strings.HasSuffix(name, ext) {
			continue
		}
		path := filepath.Join(dir, name)
		if err := os.Remove(path); err != nil {
			warnings = append(warnings, fmt.Errorf("remove %s: %w", path, err))
			continue
		}
		removed = append(removed, path)
	}
	return removed, warnings
}

// Save writes data to dir/name atomically by writing a temp file in the same
// directory and renaming it over the destination. The directory is created
// if missing. Returns the final path.
func Save(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	path := filepath.Join(dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp) //nolint:errcheck
		return "", fmt.Errorf("rename: %w", err)
	}
	return path, nil
}
