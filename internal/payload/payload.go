// Package payload turns raw text into the body of a double-quoted string
// literal: quotes escaped, line breaks folded into \n escape sequences.
package payload

import (
	"strings"
	"unicode/utf8"
)

// LineSeparator is the two-character escape placed between lines of the body.
const LineSeparator = `\n`

// Options tunes how raw text is escaped.
type Options struct {
	// EscapeBackslashes doubles every backslash before quotes are escaped.
	// Off by default, which keeps output byte-identical to the historical
	// generator but lets a raw backslash in the input alter the literal.
	EscapeBackslashes bool
}

// Payload is the in-memory form of one embedded file.
type Payload struct {
	Raw     string   // content as read
	Escaped string   // Raw with quote (and optionally backslash) escapes
	Lines   []string // Escaped split on line boundaries, terminators dropped
	Body    string   // Lines joined with LineSeparator
}

// New builds a Payload from raw file content. The result depends only on
// raw and opts.
func New(raw string, opts Options) Payload {
	escaped := Escape(raw, opts)
	lines := SplitLines(escaped)
	return Payload{
		Raw:     raw,
		Escaped: escaped,
		Lines:   lines,
		Body:    Join(lines),
	}
}

// Escape replaces every double quote with a backslash-quote pair.
func Escape(s string, opts Options) string {
	if opts.EscapeBackslashes {
		s = strings.ReplaceAll(s, `\`, `\\`)
	}
	return strings.ReplaceAll(s, `"`, `\"`)
}

// SplitLines splits s on any line boundary without keeping terminators.
// "\r\n" counts as one boundary, a trailing terminator yields no empty
// final line, and an empty string yields no lines. Bytes that are not valid
// UTF-8 are carried through untouched.
func SplitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !isLineBreak(r) {
			i += size
			continue
		}
		lines = append(lines, s[start:i])
		i += size
		if r == '\r' && i < len(s) && s[i] == '\n' {
			i++
		}
		start = i
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', 0x1c, 0x1d, 0x1e, 0x85, 0x2028, 0x2029:
		return true
	}
	return false
}

// Join concatenates lines with LineSeparator.
func Join(lines []string) string {
	return strings.Join(lines, LineSeparator)
}

// Decode reverses Body construction: \n becomes a line feed and \" a quote.
// With opts.EscapeBackslashes, \\ becomes a single backslash. Any other
// backslash is copied as is.
func Decode(body string, opts Options) string {
	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i+1 == len(body) {
			b.WriteByte(c)
			continue
		}
		switch next := body[i+1]; {
		case next == 'n':
			b.WriteByte('\n')
			i++
		case next == '"':
			b.WriteByte('"')
			i++
		case next == '\\' && opts.EscapeBackslashes:
			b.WriteByte('\\')
			i++
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
