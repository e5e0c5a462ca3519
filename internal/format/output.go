// Package format writes CLI output payloads.
package format

import (
	"encoding/json"
	"io"
)

// Write renders v as JSON (one object per invocation, newline-terminated).
func Write(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
