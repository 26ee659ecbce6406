// JSON extraction from free-text model output.
//
// Even with the response MIME type pinned to application/json, models
// occasionally wrap the object in prose or code fences. ExtractJSONObject
// locates the first top-level JSON object with a brace-balance scan that is
// aware of string literals and escapes, so braces inside string values (or
// stray braces in surrounding prose after the object) do not break the span.
package inference

import (
	"encoding/json"
	"strings"
)

// ExtractJSONObject returns the first balanced {...} span in s.
// It fails with ErrMalformedResponse when s contains no opening brace or the
// braces never balance.
func ExtractJSONObject(s string) ([]byte, error) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return nil, ErrMalformedResponse
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
				return []byte(s[start : i+1]), nil
			}
		}
	}
	return nil, ErrMalformedResponse
}

// decodeObject extracts the JSON object in text and unmarshals it into v.
// Empty text fails with ErrNoResponse; a missing or unparsable object span
// fails with ErrMalformedResponse.
func decodeObject(text string, v any) error {
	if strings.TrimSpace(text) == "" {
		return ErrNoResponse
	}
	raw, err := ExtractJSONObject(text)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return ErrMalformedResponse
	}
	return nil
}
