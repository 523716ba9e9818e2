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
	b.WriteString("genshot — capture Mini App embed and splash screenshots and patch the manifest\n\n")
	b.WriteString("Usage:\n  genshot [flags]\n\n")
	b.WriteString("Flags (precedence: flag > env > default):\n")
	b.WriteString("  -url string\n    Page to capture (env SCREENSHOT_URL; required)\n")
	b.WriteString("  -api-url string\n    Screenshot API base URL (env BROWSERLESS_API_URL; required)\n")
	b.WriteString("  -token string\n    Screenshot API token sent as a query parameter (env BROWSERLESS_API_TOKEN)\n")
	b.WriteString("  -domain string\n    App domain written into the manifest (env NEXT_PUBLIC_APP_DOMAIN; unset skips the manifest patch)\n")
	b.WriteString("  -manifest string\n    Manifest file to patch (default public/.well-known/farcaster.json)\n")
	b.WriteString("  -out-dir string\n    Directory for generated screenshots (default public/images)\n")
	b.WriteString("  -wait-for string\n    Marker text the rendered page must contain before capture (env SCREENSHOT_WAIT_TEXT; empty disables the probe)\n")
	b.WriteString("  -wait-timeout duration\n    Upper bound for the readiness probe (default 10s)\n")
	b.WriteString("  -wait-until string\n    Navigation settle strategy passed to the screenshot API (default networkidle0)\n")
	b.WriteString("  -delay duration\n    Pause between the embed and splash captures (default 2s)\n")
	b.WriteString("  -http-timeout duration\n    HTTP timeout per screenshot request (default 2m0s)\n")
	b.WriteString("  -proof\n    Also render a PDF proof sheet of the captured assets\n")
	b.WriteString("  --version | -version\n    Print version and exit\n")
	b.WriteString("\nExamples:\n")
	b.WriteString("  # Capture both screenshots and update the manifest\n")
	b.WriteString("  genshot\n\n")
	b.WriteString("  # Capture a staging deployment without touching the manifest\n")
	b.WriteString("  genshot -url staging.example.com -domain ''\n\n")
	b.WriteString("  # Show help\n")
	b.WriteString("  genshot --help\n")
	safeFprintln(w, strings.TrimRight(b.String(), "\n"))
}
