// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package header

import (
	"encoding/json"
	"errors"
	"io"
	"strings"
)

// ErrNoHeader is returned by Extract when text has no header that can be
// parsed. Missing and malformed headers are not told apart.
var ErrNoHeader = errors.New("no recoverable header")

// Object is a decoded header. Numbers are kept as [json.Number] so they
// survive re-encoding unchanged.
type Object map[string]any

// Extract recovers a header object from text.
//
// If the whole of text is a JSON object, that object is returned. Otherwise
// Extract parses the first balanced {...} span in text, as found by
// [MatchBrace].
func Extract(text string) (Object, error) {
	if obj, ok := decode(text); ok {
		return obj, nil
	}

	s := strings.TrimSpace(text)
	if s == "" {
		return nil, ErrNoHeader
	}
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return nil, ErrNoHeader
	}
	end := MatchBrace(s, start)
	if end < 0 {
		return nil, ErrNoHeader
	}

	if obj, ok := decode(s[start : end+1]); ok {
		return obj, nil
	}
	return nil, ErrNoHeader
}

func decode(s string) (Object, bool) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var obj Object
	if err := dec.Decode(&obj); err != nil {
		return nil, false
	}
	// Trailing data means s is not a single document.
	if _, err := dec.Token(); err != io.EOF {
		return nil, false
	}
	// JSON null decodes into a nil map without an error.
	if obj == nil {
		return nil, false
	}
	return obj, true
}
