package llm

import (
	"encoding/json"
	"fmt"
)

// SchemaValidator validates a parsed struct after JSON extraction.
// Returns nil if valid, or a descriptive error if invalid.
type SchemaValidator[T any] func(T) error

// ExtractJSON extracts a JSON object of type T from raw LLM text output.
// Models wrap their JSON in prose and markdown fences and occasionally emit
// C-style comments despite instructions not to; the extractor scans for the
// first balanced object and drops comments outside string values. If
// validator is non-nil, the extracted value is validated before return.
func ExtractJSON[T any](raw string, validator SchemaValidator[T]) (T, error) {
	var zero T

	jsonStr := firstJSONObject(raw)
	if jsonStr == "" {
		return zero, fmt.Errorf("%w: no JSON object found in response", ErrInvalidOutput)
	}

	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}

	if validator != nil {
		if err := validator(result); err != nil {
			return zero, fmt.Errorf("%w: validation failed: %v", ErrInvalidOutput, err)
		}
	}

	return result, nil
}

// firstJSONObject returns the first balanced { ... } block in s with line and
// block comments removed, or "" when no balanced object exists. The scan is
// string-aware, so braces, slashes and quotes inside JSON strings are left
// untouched.
func firstJSONObject(s string) string {
	start := -1
	for i := 0; i < len(s); i++ {
		if s[i] == '{' {
			start = i
			break
		}
	}
	if start == -1 {
		return ""
	}

	out := make([]byte, 0, len(s)-start)
	depth := 0
	inString := false

	for i := start; i < len(s); i++ {
		c := s[i]

		if inString {
			out = append(out, c)
			if c == '\\' && i+1 < len(s) {
				i++
				out = append(out, s[i])
			} else if c == '"' {
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
			out = append(out, c)
		case '/':
			if i+1 < len(s) && s[i+1] == '/' {
				for i+1 < len(s) && s[i+1] != '\n' {
					i++
				}
				continue
			}
			if i+1 < len(s) && s[i+1] == '*' {
				i += 2
				for i+1 < len(s) && !(s[i] == '*' && s[i+1] == '/') {
					i++
				}
				i++
				continue
			}
			out = append(out, c)
		case '{':
			depth++
			out = append(out, c)
		case '}':
			depth--
			out = append(out, c)
			if depth == 0 {
				return string(out)
			}
		default:
			out = append(out, c)
		}
	}

	return ""
}
