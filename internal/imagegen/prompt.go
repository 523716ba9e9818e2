package imagegen

import (
	"fmt"
	"strings"
)

// PlaceholderName stands in when no app name can be resolved.
const PlaceholderName = "Mini App"

// BuildPrompt synthesizes the icon brief for an app name. The name is
// single-quoted so the model renders it verbatim.
func BuildPrompt(name string) string {
	n := strings.TrimSpace(name)
	if n == "" {
		n = PlaceholderName
	}
	return fmt.Sprintf("Minimalist flat app icon featuring the name '%s' as bold centered text, high contrast colors, simple geometric background, clean vector style, no photographic detail", n)
}
