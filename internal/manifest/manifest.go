// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package manifest builds the index of translator scripts from the commented
// headers at the top of each script.
package manifest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"strings"

	"go.astrophena.name/translators/internal/atomicio"
	"go.astrophena.name/translators/internal/header"
	"go.astrophena.name/translators/internal/ignore"
	"go.astrophena.name/translators/internal/logger"
)

// Type is the type tag of every entry.
const Type = "zotero-legacy"

// Entry describes one translator script.
//
// The optional fields hold the header value verbatim and are omitted when
// the header lacks the key or could not be recovered.
type Entry struct {
	Path           string          `json:"path"`
	Label          string          `json:"label"`
	Type           string          `json:"type"`
	TranslatorID   json.RawMessage `json:"translatorID,omitempty"`
	Target         json.RawMessage `json:"target,omitempty"`
	TranslatorType json.RawMessage `json:"translatorType,omitempty"`
}

// NewEntry returns the entry for the script at the slash-separated path p
// with the given content.
//
// The label defaults to the file name without extension. If text starts with
// a run of line comments holding a header object, its label, translatorID,
// target and translatorType keys are copied over. A non-string label is
// ignored.
func NewEntry(p, text string) Entry {
	base := path.Base(p)
	e := Entry{
		Path:  p,
		Label: strings.TrimSuffix(base, path.Ext(base)),
		Type:  Type,
	}

	lead, ok := header.LeadingComment(text)
	if !ok {
		return e
	}
	obj, err := header.Extract(lead)
	if err != nil {
		return e
	}

	if label, ok := obj["label"].(string); ok {
		e.Label = label
	}
	e.TranslatorID = raw(obj, "translatorID")
	e.Target = raw(obj, "target")
	e.TranslatorType = raw(obj, "translatorType")
	return e
}

func raw(obj header.Object, key string) json.RawMessage {
	v, ok := obj[key]
	if !ok {
		return nil
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		// Values come from decoding JSON and always encode back.
		return nil
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
}

// Build returns one entry per eligible script in fsys, sorted by path. Entry
// paths are prefixed with prefix, the slash-separated location of fsys
// relative to the project root.
//
// A script that can't be read still gets an entry, with the defaults only.
func Build(ctx context.Context, fsys fs.FS, prefix string) ([]Entry, error) {
	files, err := ignore.Files(ctx, fsys, ".js")
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(files))
	for _, rel := range files {
		b, err := fs.ReadFile(fsys, rel)
		if err != nil {
			logger.Warn(ctx, "failed to read script", slog.String("path", rel), slog.Any("error", err))
		}
		entries = append(entries, NewEntry(path.Join(prefix, rel), string(b)))
	}
	return entries, nil
}

// Marshal encodes entries as an indented JSON array. Nil entries encode as
// an empty array.
func Marshal(entries []Entry) ([]byte, error) {
	if entries == nil {
		entries = []Entry{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write validates entries and replaces the file name with them in full.
func Write(name string, entries []Entry) error {
	b, err := Marshal(entries)
	if err != nil {
		return err
	}
	if err := Validate(b); err != nil {
		return err
	}
	if err := atomicio.WriteFile(name, b, 0o644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}
