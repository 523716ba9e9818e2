package browserless

import (
	"encoding/json"
	"fmt"

	"github.com/dop251/goja"
)

// WaitForTextFunction returns the waitForFunction source for marker: a
// predicate that holds once the rendered page text contains the marker. The
// generated source is compiled locally so a bad marker fails before a remote
// render is spent on it.
func WaitForTextFunction(marker string) (string, error) {
	quoted, err := json.Marshal(marker)
	if err != nil {
		return "", fmt.Errorf("encode marker: %w", err)
	}
	fn := fmt.Sprintf("() => document.body && document.body.innerText.includes(%s)", quoted)
	if _, err := goja.Compile("waitForFunction", "("+fn+")", true); err != nil {
		return "", fmt.Errorf("compile wait predicate: %w", err)
	}
	return fn, nil
}
