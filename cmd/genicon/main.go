// Command genicon generates the Mini App icon through a hosted image model
// and patches the manifest iconUrl. The prompt is derived from the manifest
// app name unless one is passed on the command line.
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
	"github.com/miniapphq/miniassets/internal/imagegen"
	"github.com/miniapphq/miniassets/internal/manifest"
	"github.com/miniapphq/miniassets/internal/pagemeta"
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
	ctx := context.Background()

	gen, code := newGenerator(ctx, cfg, stderr)
	if code != 0 {
		return code
	}

	for _, sweep := range []struct{ prefix, ext string }{
		{"flux", ".png"},
		{"proof-icon", ".pdf"},
	} {
		removed, warnings := assets.RemoveStale(cfg.outDir, sweep.prefix, sweep.ext)
		for _, w := range warnings {
			safeFprintf(stderr, "warning: %v\n", w)
		}
		for _, p := range removed {
			safeFprintf(stdout, "removed stale %s\n", p)
		}
	}

	doc, err := manifest.Load(cfg.manifestPath)
	if err != nil {
		safeFprintf(stderr, "warning: %v\n", err)
	}

	prompt := strings.TrimSpace(cfg.prompt)
	if prompt == "" {
		prompt = imagegen.BuildPrompt(resolveAppName(ctx, cfg, doc, stderr))
	}

	safeFprintf(stdout, "generating icon (%dx%d)\n", imagegen.IconWidth, imagegen.IconHeight)
	img, err := gen.Generate(ctx, prompt)
	if err != nil {
		if imagegen.IsRateLimited(err) {
			safeFprintln(stderr, "info: the image API is rate limiting; wait a minute and retry")
		}
		safeFprintf(stderr, "error: generate icon: %v\n", err)
		return 1
	}

	name := assets.Filename("flux", "icon", time.Now())
	path, err := assets.Save(cfg.outDir, name, img)
	if err != nil {
		safeFprintf(stderr, "error: save icon: %v\n", err)
		return 1
	}
	safeFprintf(stdout, "saved %s\n", path)

	patchManifest(cfg, doc, name, stdout, stderr)

	if cfg.proof {
		writeProofSheet(cfg, doc, path, name, stdout, stderr)
	}
	return 0
}

// newGenerator picks the configured provider. Key checks happen here so a
// misconfigured run fails before any file is touched or network dialed.
func newGenerator(ctx context.Context, cfg cliConfig, stderr io.Writer) (imagegen.Generator, int) {
	switch cfg.provider {
	case providerGemini:
		if strings.TrimSpace(os.Getenv("GEMINI_API_KEY")) == "" {
			safeFprintln(stderr, "error: GEMINI_API_KEY is required with -provider gemini")
			return nil, 1
		}
		gen, err := imagegen.NewGeminiGenerator(ctx, cfg.resolvedModel())
		if err != nil {
			safeFprintf(stderr, "error: %v\n", err)
			return nil, 1
		}
		return gen, 0
	default:
		if strings.TrimSpace(cfg.apiKey) == "" {
			safeFprintln(stderr, "error: TOGETHER_API_KEY is required (or pass -api-key)")
			return nil, 1
		}
		return imagegen.NewClient(cfg.apiURL, cfg.apiKey, cfg.resolvedModel(), cfg.httpTimeout), 0
	}
}

// resolveAppName picks the name rendered into the icon: the manifest app
// name, then the deployed page title when -probe-title is set, then empty
// (which BuildPrompt turns into the placeholder).
func resolveAppName(ctx context.Context, cfg cliConfig, doc manifest.Document, stderr io.Writer) string {
	if name := manifest.AppName(doc); name != "" {
		return name
	}
	if !cfg.probeTitle {
		return ""
	}
	origin, ok := manifest.Origin(doc, cfg.domain)
	if !ok {
		safeFprintln(stderr, "warning: title probe skipped: no home URL or domain configured")
		return ""
	}
	title, err := pagemeta.Title(ctx, origin, cfg.httpTimeout)
	if err != nil {
		safeFprintf(stderr, "warning: title probe: %v\n", err)
		return ""
	}
	return title
}

// patchManifest sets iconUrl. Its failures are warnings, never fatal: the
// generated icon stays on disk either way.
func patchManifest(cfg cliConfig, doc manifest.Document, iconFile string, stdout, stderr io.Writer) {
	if doc == nil {
		safeFprintln(stderr, "warning: manifest unavailable; iconUrl not written")
		return
	}
	origin, ok := manifest.Origin(doc, cfg.domain)
	if !ok {
		safeFprintln(stderr, "warning: no home URL or NEXT_PUBLIC_APP_DOMAIN; iconUrl not written")
		return
	}
	doc = manifest.ApplyIcon(doc, origin, iconFile)
	if err := manifest.Save(cfg.manifestPath, doc); err != nil {
		safeFprintf(stderr, "warning: %v\n", err)
		return
	}
	safeFprintf(stdout, "updated %s\n", cfg.manifestPath)
}

func writeProofSheet(cfg cliConfig, doc manifest.Document, path, name string, stdout, stderr io.Writer) {
	var url string
	if origin, ok := manifest.Origin(doc, cfg.domain); ok {
		url = strings.TrimRight(origin, "/") + "/images/" + name
	}
	out := filepath.Join(cfg.outDir, "proof-icon-"+assets.Timestamp(time.Now())+".pdf")
	if err := proof.WriteSheet(out, "Icon run", []proof.Asset{{Path: path, URL: url}}); err != nil {
		safeFprintf(stderr, "warning: %v\n", err)
		return
	}
	safeFprintf(stdout, "wrote %s\n", out)
}
