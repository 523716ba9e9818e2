package main

import (
	"io"
	"strings"
)

// helpRequested returns true if any canonical help token is present.
func helpRequested(args []string) bool {
	for _, a := range args {
		if a == "--help" || a == "-h" || a == "help" {
			return true
		}
	}
	return false
}

// versionRequested returns true if any canonical version token is present.
func versionRequested(args []string) bool {
	for _, a := range args {
		if a == "--version" || a == "-version" {
			return true
		}
	}
	return false
}

// printUsage writes the usage guide to w.
func printUsage(w io.Writer) {
	var b strings.Builder
	b.WriteString("genicon — generate the Mini App icon and patch the manifest iconUrl\n\n")
	b.WriteString("Usage:\n  genicon [flags] [prompt]\n\n")
	b.WriteString("A positional prompt replaces the generated one entirely; otherwise the prompt\n")
	b.WriteString("is built from the manifest app name, falling back to a placeholder.\n\n")
	b.WriteString("Flags (precedence: flag > env > default):\n")
	b.WriteString("  -api-key string\n    Image API key (env TOGETHER_API_KEY; required with the together provider)\n")
	b.WriteString("  -api-url string\n    Image API base URL (env TOGETHER_API_URL; default https://api.together.xyz)\n")
	b.WriteString("  -model string\n    Model ID (env TOGETHER_IMAGE_MODEL or GEMINI_IMAGE_MODEL by provider)\n")
	b.WriteString("  -provider string\n    Image provider, together or gemini (env ICON_PROVIDER; default together)\n")
	b.WriteString("  -domain string\n    Fallback app domain for the icon URL (env NEXT_PUBLIC_APP_DOMAIN)\n")
	b.WriteString("  -manifest string\n    Manifest file to read the app name from and patch (default public/.well-known/farcaster.json)\n")
	b.WriteString("  -out-dir string\n    Directory for the generated icon (default public/images)\n")
	b.WriteString("  -probe-title\n    Derive the app name from the deployed page title when the manifest has none\n")
	b.WriteString("  -proof\n    Also render a PDF proof sheet of the generated icon\n")
	b.WriteString("  -http-timeout duration\n    HTTP timeout for the generation request (default 2m0s)\n")
	b.WriteString("  --version | -version\n    Print version and exit\n")
	b.WriteString("\nExamples:\n")
	b.WriteString("  # Generate an icon from the manifest app name\n")
	b.WriteString("  genicon\n\n")
	b.WriteString("  # Generate from a custom prompt with the gemini provider\n")
	b.WriteString("  genicon -provider gemini 'retro pixel-art rocket on black'\n\n")
	b.WriteString("  # Show help\n")
	b.WriteString("  genicon --help\n")
	safeFprintln(w, strings.TrimRight(b.String(), "\n"))
}
