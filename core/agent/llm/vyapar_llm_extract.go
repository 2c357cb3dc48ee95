package llm

import (
	"regexp"
	"strings"

	gojson "github.com/goccy/go-json"
)

// fencedJSONRe matches a markdown code fence, optionally tagged json, and
// captures the fenced body.
var fencedJSONRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// ExtractJSON pulls a JSON object out of raw model output. Models wrap
// answers in prose and markdown fences, so three strategies run in order:
//
//  1. parse the trimmed text as-is
//  2. parse the body of the first fenced code block
//  3. parse the span from the first '{' to the last '}'
//
// A nil map is never returned; when no strategy yields an object the result
// is an empty map so callers can probe keys without nil checks. Malformed
// JSON is not repaired.
func ExtractJSON(raw string) map[string]any {
	trimmed := strings.TrimSpace(raw)

	if obj, ok := decodeObject(trimmed); ok {
		return obj
	}

	if m := fencedJSONRe.FindStringSubmatch(trimmed); m != nil {
		if obj, ok := decodeObject(strings.TrimSpace(m[1])); ok {
			return obj
		}
	}

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start >= 0 && end > start {
		if obj, ok := decodeObject(trimmed[start : end+1]); ok {
			return obj
		}
	}

	return map[string]any{}
}

func decodeObject(s string) (map[string]any, bool) {
	if s == "" || s[0] != '{' {
		return nil, false
	}
	var obj map[string]any
	if err := gojson.Unmarshal([]byte(s), &obj); err != nil {
		return nil, false
	}
	if obj == nil {
		return nil, false
	}
	return obj, true
}
