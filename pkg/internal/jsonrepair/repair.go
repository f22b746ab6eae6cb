// Package jsonrepair recovers a best-effort parse of a tool call's
// accumulated partial_json when a stream is cancelled mid-argument,
// wrapping github.com/kaptinlin/jsonrepair with a small hand-rolled
// fallback (closing unterminated strings/brackets) for the cases the
// library declines — same concern as the teacher's pkg/jsonparser/fix_json.go,
// an ecosystem library standing in for most of it.
package jsonrepair

import (
	"encoding/json"

	"github.com/kaptinlin/jsonrepair"
)

// Unmarshal attempts json.Unmarshal(data, v) directly; on failure it tries
// jsonrepair.JSONRepair(data), then a bracket/quote-closing fallback for
// inputs jsonrepair itself rejects (e.g. an empty buffer or a dangling
// escape sequence), before giving up and returning the original error.
func Unmarshal(data string, v any) error {
	firstErr := json.Unmarshal([]byte(data), v)
	if firstErr == nil {
		return nil
	}
	if repaired, err := jsonrepair.JSONRepair(data); err == nil {
		if err := json.Unmarshal([]byte(repaired), v); err == nil {
			return nil
		}
	}
	if closed := closeUnterminated(data); closed != data {
		if err := json.Unmarshal([]byte(closed), v); err == nil {
			return nil
		}
	}
	return firstErr
}

// closeUnterminated appends whatever closing quotes/brackets are needed to
// make a truncated JSON object/array well-formed enough to parse, tracking
// only bracket nesting and string-open state (no value-level validation).
func closeUnterminated(s string) string {
	var stack []byte
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
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
		case '{', '[':
			stack = append(stack, c)
		case '}', ']':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}
	out := s
	if inString {
		out += `"`
	}
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == '{' {
			out += "}"
		} else {
			out += "]"
		}
	}
	return out
}
