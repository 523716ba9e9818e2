package main

import (
	"flag"
	"io"
	"os"
	"time"

	"github.com/miniapphq/miniassets/internal/browserless"
	"github.com/miniapphq/miniassets/internal/manifest"
)

// cliConfig holds the effective configuration after flag and env resolution.
type cliConfig struct {
	targetURL    string
	apiURL       string
	token        string
	domain       string
	manifestPath string
	outDir       string
	waitFor      string
	waitUntil    string
	waitTimeout  time.Duration
	delay        time.Duration
	httpTimeout  time.Duration
	proof        bool
	parseError   string
}

func getEnv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

// parseFlags resolves configuration with flag > env > default precedence.
// The second return value is the intended exit code; non-zero means argv
// was unusable and cfg.parseError carries the message.
func parseFlags(args []string) (cliConfig, int) {
	var cfg cliConfig
	fs := flag.NewFlagSet("genshot", flag.ContinueOnError)
	// Silence automatic usage/errors; we handle messaging ourselves.
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.targetURL, "url", getEnv("SCREENSHOT_URL", ""),
		"Page to capture (env SCREENSHOT_URL)")
	fs.StringVar(&cfg.apiURL, "api-url", getEnv("BROWSERLESS_API_URL", ""),
		"Screenshot API base URL (env BROWSERLESS_API_URL)")
	fs.StringVar(&cfg.token, "token", getEnv("BROWSERLESS_API_TOKEN", ""),
		"Screenshot API token (env BROWSERLESS_API_TOKEN)")
	fs.StringVar(&cfg.domain, "domain", getEnv("NEXT_PUBLIC_APP_DOMAIN", ""),
		"App domain written into the manifest (env NEXT_PUBLIC_APP_DOMAIN)")
	fs.StringVar(&cfg.manifestPath, "manifest", manifest.DefaultPath,
		"Manifest file to patch")
	fs.StringVar(&cfg.outDir, "out-dir", "public/images",
		"Directory for generated screenshots")
	fs.StringVar(&cfg.waitFor, "wait-for", getEnv("SCREENSHOT_WAIT_TEXT", ""),
		"Marker text the rendered page must contain before capture (env SCREENSHOT_WAIT_TEXT)")
	fs.StringVar(&cfg.waitUntil, "wait-until", browserless.DefaultWaitUntil,
		"Navigation settle strategy passed to the screenshot API")
	fs.DurationVar(&cfg.waitTimeout, "wait-timeout", browserless.DefaultWaitTimeout,
		"Upper bound for the readiness probe")
	fs.DurationVar(&cfg.delay, "delay", 2*time.Second,
		"Pause between the embed and splash captures")
	fs.DurationVar(&cfg.httpTimeout, "http-timeout", 120*time.Second,
		"HTTP timeout per screenshot request")
	fs.BoolVar(&cfg.proof, "proof", false,
		"Also render a PDF proof sheet of the captured assets")

	if err := fs.Parse(args); err != nil {
		cfg.parseError = "error: " + err.Error()
		return cfg, 2
	}
	if fs.NArg() > 0 {
		cfg.parseError = "error: unexpected argument: " + fs.Arg(0)
		return cfg, 2
	}
	return cfg, 0
}
