package main

import (
	"flag"
	"io"
	"os"
	"strings"
	"time"

	"github.com/miniapphq/miniassets/internal/imagegen"
	"github.com/miniapphq/miniassets/internal/manifest"
)

const (
	providerTogether = "together"
	providerGemini   = "gemini"
)

// cliConfig holds the effective configuration after flag and env resolution.
type cliConfig struct {
	apiURL       string
	apiKey       string
	model        string
	provider     string
	domain       string
	manifestPath string
	outDir       string
	prompt       string
	probeTitle   bool
	proof        bool
	httpTimeout  time.Duration
	parseError   string
}

func getEnv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

// resolvedModel applies flag > env > provider default for the model ID.
// The env variable differs per provider so a together model name never
// leaks into a gemini request.
func (c cliConfig) resolvedModel() string {
	if m := strings.TrimSpace(c.model); m != "" {
		return m
	}
	if c.provider == providerGemini {
		return getEnv("GEMINI_IMAGE_MODEL", "")
	}
	return getEnv("TOGETHER_IMAGE_MODEL", "")
}

// parseFlags resolves configuration with flag > env > default precedence.
// One optional positional argument overrides the generated prompt entirely.
func parseFlags(args []string) (cliConfig, int) {
	var cfg cliConfig
	fs := flag.NewFlagSet("genicon", flag.ContinueOnError)
	// Silence automatic usage/errors; we handle messaging ourselves.
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.apiURL, "api-url", getEnv("TOGETHER_API_URL", imagegen.DefaultBaseURL),
		"Image API base URL (env TOGETHER_API_URL)")
	fs.StringVar(&cfg.apiKey, "api-key", getEnv("TOGETHER_API_KEY", ""),
		"Image API key (env TOGETHER_API_KEY)")
	fs.StringVar(&cfg.model, "model", "",
		"Model ID (env TOGETHER_IMAGE_MODEL or GEMINI_IMAGE_MODEL by provider)")
	fs.StringVar(&cfg.provider, "provider", getEnv("ICON_PROVIDER", providerTogether),
		"Image provider, together or gemini (env ICON_PROVIDER)")
	fs.StringVar(&cfg.domain, "domain", getEnv("NEXT_PUBLIC_APP_DOMAIN", ""),
		"Fallback app domain for the icon URL (env NEXT_PUBLIC_APP_DOMAIN)")
	fs.StringVar(&cfg.manifestPath, "manifest", manifest.DefaultPath,
		"Manifest file to read the app name from and patch")
	fs.StringVar(&cfg.outDir, "out-dir", "public/images",
		"Directory for the generated icon")
	fs.BoolVar(&cfg.probeTitle, "probe-title", false,
		"Derive the app name from the deployed page title when the manifest has none")
	fs.BoolVar(&cfg.proof, "proof", false,
		"Also render a PDF proof sheet of the generated icon")
	fs.DurationVar(&cfg.httpTimeout, "http-timeout", 120*time.Second,
		"HTTP timeout for the generation request")

	if err := fs.Parse(args); err != nil {
		cfg.parseError = "error: " + err.Error()
		return cfg, 2
	}
	switch fs.NArg() {
	case 0:
	case 1:
		cfg.prompt = fs.Arg(0)
	default:
		cfg.parseError = "error: at most one prompt argument is accepted"
		return cfg, 2
	}
	switch strings.TrimSpace(cfg.provider) {
	case "", providerTogether:
		cfg.provider = providerTogether
	case providerGemini:
		cfg.provider = providerGemini
	default:
		cfg.parseError = "error: -provider must be together or gemini"
		return cfg, 2
	}
	return cfg, 0
}
