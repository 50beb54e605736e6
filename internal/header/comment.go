// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package header

import (
	"strings"
	"unicode"
)

// LineComment is the marker Comment puts in front of every header line.
const LineComment = "//"

var (
	// Prefixes that mean the file already starts with a comment.
	commentPrefixes = []string{"//", "/*"}
	// A leading object is only treated as a header if it mentions one of
	// these keys.
	markerKeys = []string{"translatorID", "label"}
)

// Comment converts a raw leading header in text into line comments. It
// returns the new text and true if it changed anything, or text unchanged and
// false otherwise.
//
// Text that already begins with a comment, does not begin with an object,
// holds an unterminated object or an object without any marker key is left
// alone. Calling Comment on its own output is a no-op.
func Comment(text string) (string, bool) {
	s := strings.TrimLeftFunc(text, unicode.IsSpace)
	indent := text[:len(text)-len(s)]

	// Must be checked before the brace check.
	if IsCommented(s) {
		return text, false
	}
	if !strings.HasPrefix(s, "{") {
		return text, false
	}

	end := MatchBrace(s, 0)
	if end < 0 {
		return text, false
	}
	span := s[:end+1]
	if !hasMarkerKey(span) {
		return text, false
	}

	var sb strings.Builder
	sb.Grow(len(text) + len(span)/4)
	for i, line := range splitLines(span) {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(indent)
		sb.WriteString(LineComment + " ")
		sb.WriteString(line)
	}
	sb.WriteString("\n\n")
	sb.WriteString(s[end+1:])

	return sb.String(), true
}

// IsCommented reports whether s, with leading whitespace removed, starts with
// a line or block comment.
func IsCommented(s string) bool {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	for _, p := range commentPrefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func hasMarkerKey(span string) bool {
	for _, k := range markerKeys {
		if strings.Contains(span, k) {
			return true
		}
	}
	return false
}

// splitLines splits s on newlines, dropping the carriage return of CRLF line
// endings.
func splitLines(s string) []string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
