// Package sanitize strips comments and string-literal contents from
// JavaScript/TypeScript-shaped source so that text-pattern gates do not
// trip over documentation or fixture data.
//
// Callers that need both passes must run StripComments before StripStrings:
// the URL heuristic in StripComments can misfire on "//" inside a string
// that has not been masked yet, and the reverse order is not supported.
package sanitize

import "strings"

// StripComments removes /* ... */ spans (newlines inside the span are kept
// so line numbering survives) and // line comments. A "//" immediately
// preceded by ':' is treated as part of a URL scheme separator and kept.
// Pure and total: malformed input degrades, it never errors.
func StripComments(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		c := s[i]
		if c == '/' && i+1 < len(s) {
			switch s[i+1] {
			case '*':
				end := strings.Index(s[i+2:], "*/")
				if end < 0 {
					// unterminated block: drop to EOF, keep newlines
					for j := i + 2; j < len(s); j++ {
						if s[j] == '\n' {
							b.WriteByte('\n')
						}
					}
					return b.String()
				}
				for j := i + 2; j < i+2+end; j++ {
					if s[j] == '\n' {
						b.WriteByte('\n')
					}
				}
				i += 2 + end + 2
				continue
			case '/':
				if i > 0 && s[i-1] == ':' {
					// URL scheme separator (https://...), not a comment
					b.WriteString("//")
					i += 2
					continue
				}
				for i < len(s) && s[i] != '\n' {
					i++
				}
				continue
			}
		}
		b.WriteByte(c)
		i++
	}
	return b.String()
}

// StripStrings replaces the contents of double-quoted, single-quoted and
// backtick-delimited literals with an empty literal. Backslash-escaped
// delimiters do not terminate quoted forms. Backtick spans are matched
// greedily to the next unescaped backtick and collapse to "" wholesale,
// interpolation holes included; nothing inside a template literal is
// recursively sanitized.
func StripStrings(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		c := s[i]
		switch c {
		case '"', '\'':
			b.WriteByte(c)
			j := skipQuoted(s, i+1, c)
			if j < len(s) {
				b.WriteByte(c)
				i = j + 1
			} else {
				i = j
			}
		case '`':
			j := skipQuoted(s, i+1, '`')
			b.WriteString(`""`)
			if j < len(s) {
				i = j + 1
			} else {
				i = j
			}
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String()
}

// skipQuoted returns the index of the first unescaped delim at or after
// start, or len(s) when the literal is unterminated.
func skipQuoted(s string, start int, delim byte) int {
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++ // escaped char, including escaped delimiters
		case delim:
			return i
		}
	}
	return len(s)
}
