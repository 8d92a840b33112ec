package llm

import "strings"

// StripJSONFence removes a markdown code fence wrapping the response, if
// present. Models sometimes wrap JSON in ```json ... ``` even when told not
// to. Only whole fence lines at the very start and very end are removed, so
// backticks inside legitimate content are never touched. Fence-free input
// passes through unchanged apart from whitespace trimming.
func StripJSONFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ""
	}

	lines := strings.Split(trimmed, "\n")

	if first := strings.TrimSpace(lines[0]); first == "```json" || first == "```" {
		lines = lines[1:]
	}
	if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}
