// Command genshot captures the Mini App embed and splash screenshots through
// a browserless-style rendering API and patches the manifest with the new
// asset URLs.
package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/miniapphq/miniassets/internal/assets"
	"github.com/miniapphq/miniassets/internal/browserless"
	"github.com/miniapphq/miniassets/internal/manifest"
	"github.com/miniapphq/miniassets/internal/proof"
)

func main() {
	os.Exit(cliMain(os.Args[1:], os.Stdout, os.Stderr))
}

// cliMain is a testable entrypoint: argv (excluding the program name) plus
// stdout/stderr writers in, intended process exit code out.
func cliMain(args []string, stdout io.Writer, stderr io.Writer) int {
	if helpRequested(args) {
		printUsage(stdout)
		return 0
	}
	if versionRequested(args) {
		printVersion(stdout)
		return 0
	}
	// Values from .env fill gaps; exported variables keep precedence.
	_ = godotenv.Load() //nolint:errcheck
	cfg, exitOn := parseFlags(args)
	if exitOn != 0 {
		if strings.TrimSpace(cfg.parseError) != "" {
			safeFprintln(stderr, cfg.parseError)
		}
		printUsage(stderr)
		return exitOn
	}
	return run(cfg, stdout, stderr)
}

func run(cfg cliConfig, stdout, stderr io.Writer) int {
	if strings.TrimSpace(cfg.targetURL) == "" {
		safeFprintln(stderr, "error: SCREENSHOT_URL is required (or pass -url)")
		return 1
	}
	if strings.TrimSpace(cfg.apiURL) == "" {
		safeFprintln(stderr, "error: BROWSERLESS_API_URL is required (or pass -api-url)")
		return 1
	}

	for _, sweep := range []struct{ prefix, ext string }{
		{"screenshot", ".png"},
		{"proof-screenshot", ".pdf"},
	} {
		removed, warnings := assets.RemoveStale(cfg.outDir, sweep.prefix, sweep.ext)
		for _, w := range warnings {
			safeFprintf(stderr, "warning: %v\n", w)
		}
		for _, p := range removed {
			safeFprintf(stdout, "removed stale %s\n", p)
		}
	}

	client := browserless.NewClient(cfg.apiURL, cfg.token, cfg.httpTimeout)
	ctx := context.Background()

	shots := []struct {
		kind     string
		viewport browserless.Viewport
	}{
		{"embed", browserless.EmbedViewport},
		{"splash", browserless.SplashViewport},
	}
	names := make([]string, 0, len(shots))
	paths := make([]string, 0, len(shots))
	for i, shot := range shots {
		if i > 0 && cfg.delay > 0 {
			// The rendering API rate-limits back-to-back captures.
			time.Sleep(cfg.delay)
		}
		safeFprintf(stdout, "capturing %s screenshot (%dx%d) of %s\n",
			shot.kind, shot.viewport.Width, shot.viewport.Height, cfg.targetURL)
		data, err := client.Capture(ctx, browserless.Request{
			URL:         cfg.targetURL,
			Viewport:    shot.viewport,
			WaitFor:     cfg.waitFor,
			WaitTimeout: cfg.waitTimeout,
			WaitUntil:   cfg.waitUntil,
		})
		if err != nil {
			safeFprintf(stderr, "error: capture %s: %v\n", shot.kind, err)
			return 1
		}
		name := assets.Filename("screenshot", shot.kind, time.Now())
		path, err := assets.Save(cfg.outDir, name, data)
		if err != nil {
			safeFprintf(stderr, "error: save %s: %v\n", shot.kind, err)
			return 1
		}
		safeFprintf(stdout, "saved %s\n", path)
		names = append(names, name)
		paths = append(paths, path)
	}

	patchManifest(cfg, names[0], names[1], stdout, stderr)

	if cfg.proof {
		writeProofSheet(cfg, paths, names, stdout, stderr)
	}
	return 0
}

// patchManifest rewrites the manifest URLs. Its failures are warnings, never
// fatal: the captured files stay on disk either way.
func patchManifest(cfg cliConfig, embedFile, splashFile string, stdout, stderr io.Writer) {
	if strings.TrimSpace(cfg.domain) == "" {
		safeFprintln(stderr, "warning: NEXT_PUBLIC_APP_DOMAIN is not set; manifest left unchanged")
		return
	}
	doc, err := manifest.Load(cfg.manifestPath)
	if err != nil {
		safeFprintf(stderr, "warning: %v; manifest left unchanged\n", err)
		return
	}
	doc = manifest.ApplyScreenshots(doc, manifest.ScreenshotPatch{
		Domain:     cfg.domain,
		EmbedFile:  embedFile,
		SplashFile: splashFile,
	})
	if err := manifest.Save(cfg.manifestPath, doc); err != nil {
		safeFprintf(stderr, "warning: %v\n", err)
		return
	}
	safeFprintf(stdout, "updated %s\n", cfg.manifestPath)
}

func writeProofSheet(cfg cliConfig, paths, names []string, stdout, stderr io.Writer) {
	sheet := make([]proof.Asset, len(paths))
	for i := range paths {
		var url string
		if strings.TrimSpace(cfg.domain) != "" {
			url = "https://" + cfg.domain + "/images/" + names[i]
		}
		sheet[i] = proof.Asset{Path: paths[i], URL: url}
	}
	out := filepath.Join(cfg.outDir, "proof-screenshot-"+assets.Timestamp(time.Now())+".pdf")
	if err := proof.WriteSheet(out, "Screenshot run", sheet); err != nil {
		safeFprintf(stderr, "warning: %v\n", err)
		return
	}
	safeFprintf(stdout, "wrote %s\n", out)
}
