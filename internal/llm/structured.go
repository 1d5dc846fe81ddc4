package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SchemaValidator validates a parsed struct after JSON extraction.
type SchemaValidator[T any] func(T) error

// ExtractJSON pulls the first JSON object out of model output and decodes it
// into T. Markdown fences, surrounding prose, comments, trailing commas and
// bare leading decimals (".5") are tolerated. A non-nil validator runs on
// the decoded value; any failure wraps ErrInvalidOutput.
func ExtractJSON[T any](raw string, validator SchemaValidator[T]) (T, error) {
	var zero T

	block := firstObject(raw)
	if block == "" {
		return zero, fmt.Errorf("%w: no JSON object found in response", ErrInvalidOutput)
	}

	var result T
	if err := json.Unmarshal([]byte(sanitizeJSON(block)), &result); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	if validator != nil {
		if err := validator(result); err != nil {
			return zero, fmt.Errorf("%w: validation failed: %v", ErrInvalidOutput, err)
		}
	}
	return result, nil
}

// jsonLexer tracks whether a byte offset sits inside a JSON string literal.
type jsonLexer struct {
	inString bool
	escaped  bool
}

// step advances over c and reports whether c is structural (outside any
// string, and not the quote that opens or closes one).
func (l *jsonLexer) step(c byte) bool {
	switch {
	case l.escaped:
		l.escaped = false
		return false
	case l.inString && c == '\\':
		l.escaped = true
		return false
	case c == '"':
		l.inString = !l.inString
		return false
	default:
		return !l.inString
	}
}

// firstObject returns the first balanced {...} block. Fences need no special
// handling because the backticks sit outside the braces.
func firstObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return ""
	}
	var lx jsonLexer
	depth := 0
	for i := start; i < len(s); i++ {
		if !lx.step(s[i]) {
			continue
		}
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// sanitizeJSON rewrites the common ways models break strict JSON. String
// contents are copied untouched.
func sanitizeJSON(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)

	var lx jsonLexer
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !lx.step(c) {
			b.WriteByte(c)
			continue
		}

		switch {
		case c == '/' && i+1 < len(s) && s[i+1] == '/':
			for i+1 < len(s) && s[i+1] != '\n' {
				i++
			}
		case c == '/' && i+1 < len(s) && s[i+1] == '*':
			end := strings.Index(s[i+2:], "*/")
			if end == -1 {
				i = len(s)
			} else {
				i += end + 3
			}
		case c == ',' && closesAfterSpace(s, i+1):
			// drop trailing comma before } or ]
		case c == '.' && i+1 < len(s) && isDigit(s[i+1]) && startsNumber(lastNonSpace(b.String())):
			b.WriteString("0.")
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func closesAfterSpace(s string, i int) bool {
	for ; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\n', '\r':
			continue
		case '}', ']':
			return true
		default:
			return false
		}
	}
	return false
}

func lastNonSpace(s string) byte {
	for i := len(s) - 1; i >= 0; i-- {
		switch s[i] {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			return s[i]
		}
	}
	return 0
}

// startsNumber reports whether a value may begin right after c.
func startsNumber(c byte) bool {
	switch c {
	case 0, ':', ',', '[', '{', '-':
		return true
	default:
		return false
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
