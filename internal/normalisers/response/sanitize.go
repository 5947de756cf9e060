package response

import (
	"encoding/json"
	"strings"
)

const (
	fenceOpen  = "```json"
	fenceClose = "```"
)

// Sanitize normalises raw model output into text that decodes as a JSON array.
//
// A single leading ```json fence and a single trailing ``` fence are stripped.
// If the remaining text decodes to an array it is returned unchanged;
// otherwise it is wrapped in brackets so a bare object becomes a one-element
// array. The wrapped text is not re-validated; Parse reports anything still
// malformed.
func Sanitize(raw string) string {
	text := stripFences(raw)

	var decoded any
	if err := json.Unmarshal([]byte(text), &decoded); err == nil {
		if _, ok := decoded.([]any); ok {
			return text
		}
	}
	return "[" + text + "]"
}

// stripFences removes one opening and one closing code fence.
// Text without fences is returned as-is.
func stripFences(raw string) string {
	trimmed := strings.TrimSpace(raw)
	text := raw
	if strings.HasPrefix(trimmed, fenceOpen) {
		trimmed = strings.TrimSpace(trimmed[len(fenceOpen):])
		text = trimmed
	}
	if strings.HasSuffix(trimmed, fenceClose) {
		trimmed = strings.TrimSpace(trimmed[:len(trimmed)-len(fenceClose)])
		text = trimmed
	}
	return text
}
