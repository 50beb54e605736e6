// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Importtranslators imports Zotero translators into translators/zotero and
generates translators/manifest.json describing them.

# Usage

	$ importtranslators [flags...]

Run without flags from the project root. It:

 1. Clones https://github.com/zotero/translators into translators/zotero, or
    updates the existing checkout. If the project root is a git repository,
    the translators are added as a submodule instead of a plain clone.
 2. Deletes dot-directories, dotfiles, jsconfig.json and AGENTS.md from the
    checkout.
 3. Turns the JSON header at the top of each translator into // comments, so
    the file is a valid script. Already commented headers are left alone,
    making repeated runs safe.
 4. Writes translators/manifest.json with one entry per translator, taking
    label, translatorID, target and translatorType from the commented header.

A failed clone or update aborts the run. Files that can't be rewritten are
logged and skipped.

# Environment

Flags can also be set in the environment or in a .env file in the current
directory: IMPORTTRANSLATORS_ROOT, IMPORTTRANSLATORS_REMOTE and
IMPORTTRANSLATORS_SKIP_SYNC.
*/
package main

import (
	_ "embed"

	"go.astrophena.name/translators/internal/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
