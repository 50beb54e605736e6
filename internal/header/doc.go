// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package header locates, comments out and recovers the JSON metadata header
// that legacy translator scripts carry at the top of the file.
//
// A raw header looks like this:
//
//	{
//		"translatorID": "...",
//		"label": "Example",
//		...
//	}
//
//	function detectWeb(doc, url) { ... }
//
// [Comment] turns it into a block of line comments, so the file becomes a
// valid script, and [Extract] together with [LeadingComment] gets the object
// back out of the commented text.
//
// Only object-rooted headers are recognized. [MatchBrace] tracks curly braces
// alone, so array-rooted headers are not supported.
package header
