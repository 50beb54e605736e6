// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package header

// MatchBrace returns the index of the closing brace that matches the opening
// brace at s[open], or -1 if there is none.
//
// Braces inside single or double quoted strings are skipped. Inside a string a
// backslash escapes the next byte. The scan never backtracks and never
// reports a partial match: text that ends while braces are still open yields
// -1.
func MatchBrace(s string, open int) int {
	if open < 0 || open >= len(s) || s[open] != '{' {
		return -1
	}

	var (
		depth   int
		quote   byte // active quote character, 0 outside strings
		escaped bool
	)

	for i := open; i < len(s); i++ {
		c := s[i]

		if quote != 0 {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == quote:
				quote = 0
			}
			continue
		}

		switch c {
		case '"', '\'':
			quote = c
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}
