// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package header

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// LeadingComment returns the contiguous run of line comments at the top of
// text, with the comment marker and one following whitespace character
// stripped from each line. It reports false if text does not start with such
// a run.
//
// Blank lines before the run are skipped. A blank line after the run has
// started ends it, as does any other non-comment line.
func LeadingComment(text string) (string, bool) {
	var (
		collected []string
		started   bool
	)
	for _, line := range splitLines(text) {
		if body, ok := cutLineComment(line); ok {
			started = true
			collected = append(collected, body)
			continue
		}
		if started || strings.TrimSpace(line) != "" {
			break
		}
	}
	if len(collected) == 0 {
		return "", false
	}
	return strings.Join(collected, "\n"), true
}

func cutLineComment(line string) (string, bool) {
	body, ok := strings.CutPrefix(strings.TrimLeftFunc(line, unicode.IsSpace), LineComment)
	if !ok {
		return "", false
	}
	if r, size := utf8.DecodeRuneInString(body); size > 0 && unicode.IsSpace(r) {
		body = body[size:]
	}
	return body, true
}
