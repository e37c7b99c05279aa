// Package llmjson recovers JSON documents from LLM chat output. Models that
// were told to return raw JSON still wrap it in markdown fences or prose
// often enough that both clients route their responses through Extract.
package llmjson

import (
	"encoding/json"
	"errors"
	"strings"
)

// Kind selects the delimiter pair Extract scans for.
type Kind int

const (
	Object Kind = iota
	Array
)

// ErrNoJSON indicates no well-formed JSON of the requested kind was found.
var ErrNoJSON = errors.New("no JSON found in content")

// Extract returns the JSON substring of the requested kind from content.
// Strategy: strip a leading "```json"/"```" and a trailing "```" if present,
// re-trim, and accept the remainder if it already spans the matching
// delimiters and parses. Otherwise scan for the first opening and last
// closing delimiter and validate that slice.
func Extract(content string, kind Kind) (string, error) {
	opener, closer := "{", "}"
	if kind == Array {
		opener, closer = "[", "]"
	}

	cleaned := strings.TrimSpace(content)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = cleaned[len("```json"):]
	}
	if strings.HasPrefix(cleaned, "```") {
		cleaned = cleaned[len("```"):]
	}
	if strings.HasSuffix(cleaned, "```") {
		cleaned = cleaned[:len(cleaned)-len("```")]
	}
	cleaned = strings.TrimSpace(cleaned)

	if strings.HasPrefix(cleaned, opener) && strings.HasSuffix(cleaned, closer) && json.Valid([]byte(cleaned)) {
		return cleaned, nil
	}

	first := strings.Index(cleaned, opener)
	last := strings.LastIndex(cleaned, closer)
	if first >= 0 && last > first {
		candidate := cleaned[first : last+1]
		if json.Valid([]byte(candidate)) {
			return candidate, nil
		}
	}

	return "", ErrNoJSON
}
