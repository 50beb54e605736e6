// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package transform

import (
	"strings"
	"unicode"
)

const (
	exportsStatement = "export { detectWeb, doWeb }"
	exportsSnippet   = "\n// Export legacy translator functions as ES module bindings for adapter\n" + exportsStatement + ";\n"
)

// AppendExports appends an ES module export of the detectWeb and doWeb
// functions to text, unless text already has it. Trailing whitespace of text
// is dropped; the snippet starts on the next line and ends with a newline.
func AppendExports(text string) (string, bool) {
	if strings.Contains(text, exportsStatement) {
		return text, false
	}
	return strings.TrimRightFunc(text, unicode.IsSpace) + exportsSnippet, true
}
