package agents

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var jsonBlockRegex = regexp.MustCompile(`(?s)` + "```" + `(?:json)?\s*\n?(.*?)\n?` + "```")

// ExtractJSON pulls the first JSON object out of a model response. It first
// attempts the whole response as JSON, then the first markdown code block,
// then the first balanced object embedded in prose. Responses with no valid
// JSON return ErrParse.
func ExtractJSON(raw string) (json.RawMessage, error) {
	content := strings.TrimSpace(raw)
	if content == "" {
		return nil, fmt.Errorf("%w: empty response", ErrParse)
	}

	if valid(content) {
		return json.RawMessage(content), nil
	}

	matches := jsonBlockRegex.FindStringSubmatch(content)
	if len(matches) >= 2 {
		cleaned := strings.TrimSpace(matches[1])
		if valid(cleaned) {
			return json.RawMessage(cleaned), nil
		}
	}

	if block := firstObject(content); block != "" {
		return json.RawMessage(block), nil
	}

	return nil, fmt.Errorf("%w: could not extract JSON from response", ErrParse)
}

func valid(s string) bool {
	return json.Valid([]byte(s))
}

// firstObject scans for the first balanced top-level object, skipping brace
// characters inside string literals.
func firstObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				candidate := s[start : i+1]
				if valid(candidate) {
					return candidate
				}
				return ""
			}
		}
	}

	return ""
}
