package llm

import (
	"regexp"
	"strings"
)

// Models are asked to return raw JSON but frequently wrap it in markdown
// fences or surround it with prose. These patterns recover the payload
// without requiring a strict grammar.
var (
	jsonFencePattern = regexp.MustCompile("(?is)```json\\s*(.+?)\\s*```")
	anyFencePattern  = regexp.MustCompile("(?s)```[a-zA-Z0-9]*\\s*(.+?)\\s*```")
)

// ExtractJSON locates a JSON object inside free-form model output.
// Priority: a fence labeled json, then any fence, then the substring
// from the first "{" to the last "}". Returns "" when nothing JSON-like
// is present.
func ExtractJSON(text string) string {
	if m := jsonFencePattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := anyFencePattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && start < end {
		return text[start : end+1]
	}

	return ""
}
