package util

import "strings"

// StripCodeFences unwraps a markdown code fence the model sometimes puts
// around JSON-mode output despite the instructions. Unfenced text passes
// through untouched.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
