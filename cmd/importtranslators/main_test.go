// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.astrophena.name/translators/internal/cli"
	"go.astrophena.name/translators/internal/cli/clitest"
	"go.astrophena.name/translators/internal/filelock"
	"go.astrophena.name/translators/internal/testutil"

	"golang.org/x/tools/txtar"
)

var update = flag.Bool("update", false, "update golden files in testdata")

func TestImportTranslatorsArgs(t *testing.T) {
	t.Parallel()

	clitest.Run(t, func(t *testing.T) *app { return new(app) }, map[string]clitest.Case[*app]{
		"prints usage with help flag": {
			Args:         []string{"-h"},
			WantErr:      flag.ErrHelp,
			WantInStderr: "Usage",
		},
		"prints version": {
			Args:    []string{"-version"},
			WantErr: cli.ErrExitVersion,
		},
		"rejects positional arguments": {
			Args:    []string{"-skip-sync", "extra"},
			WantErr: cli.ErrInvalidArgs,
		},
		"rejects missing root": {
			Args:    []string{"-root", filepath.Join(t.TempDir(), "missing"), "-skip-sync"},
			WantErr: cli.ErrInvalidArgs,
		},
		"rejects missing root from environment": {
			Args:    []string{"-skip-sync"},
			Env:     map[string]string{"IMPORTTRANSLATORS_ROOT": filepath.Join(t.TempDir(), "missing")},
			WantErr: cli.ErrInvalidArgs,
		},
		"rejects negative workers": {
			Args:    []string{"-root", t.TempDir(), "-skip-sync", "-workers", "-1"},
			WantErr: cli.ErrInvalidArgs,
		},
		"rejects bad remote": {
			Args:    []string{"-root", t.TempDir(), "-remote", "not a remote"},
			WantErr: cli.ErrInvalidArgs,
		},
	})
}

func TestImportTranslators(t *testing.T) {
	testutil.RunGolden(t, "testdata/*.txtar", func(t *testing.T, match string) []byte {
		ar, err := txtar.ParseFile(match)
		if err != nil {
			t.Fatal(err)
		}
		dir := t.TempDir()
		testutil.ExtractTxtar(t, ar, dir)

		run(t, dir)

		// Holds the PID of the last run.
		if err := os.Remove(filepath.Join(dir, lockFile)); err != nil {
			t.Fatal(err)
		}
		return testutil.BuildTxtar(t, dir)
	}, *update)
}

func TestImportTranslatorsIdempotent(t *testing.T) {
	ar, err := txtar.ParseFile("testdata/project.txtar")
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	testutil.ExtractTxtar(t, ar, dir)

	run(t, dir)
	first := testutil.BuildTxtar(t, dir)
	run(t, dir)
	testutil.AssertEqual(t, string(testutil.BuildTxtar(t, dir)), string(first))
}

func TestImportTranslatorsExports(t *testing.T) {
	dir := t.TempDir()
	testutil.ExtractTxtar(t, txtar.Parse([]byte(`-- translators/zotero/A.js --
{"translatorID": "a", "label": "A"}
function detectWeb() {}
`)), dir)

	run(t, dir, "-exports")

	b, err := os.ReadFile(filepath.Join(dir, "translators", "zotero", "A.js"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(b, []byte("export { detectWeb, doWeb };")) {
		t.Fatalf("exports not appended:\n%s", b)
	}
}

func TestImportTranslatorsLocked(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "translators", "zotero"), 0o755); err != nil {
		t.Fatal(err)
	}

	lock, err := filelock.Acquire(filepath.Join(dir, lockFile))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { lock.Release() })

	err = runErr(t, dir)
	if !errors.Is(err, filelock.ErrAlreadyLocked) {
		t.Fatalf("want %v, got %v", filelock.ErrAlreadyLocked, err)
	}
	if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(manifestFile))); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("manifest must not be written while locked, stat: %v", err)
	}
}

func TestImportTranslatorsManifestWriteFailure(t *testing.T) {
	dir := t.TempDir()
	testutil.ExtractTxtar(t, txtar.Parse([]byte(`-- translators/zotero/A.js --
{"translatorID": "a", "label": "A"}
`)), dir)
	// A directory in place of the manifest can't be replaced by a file.
	if err := os.MkdirAll(filepath.Join(dir, filepath.FromSlash(manifestFile), "occupied"), 0o755); err != nil {
		t.Fatal(err)
	}

	var stderr bytes.Buffer
	if err := runWith(t, dir, &stderr); err != nil {
		t.Fatalf("manifest write failure must not fail the run: %v", err)
	}
	if !bytes.Contains(stderr.Bytes(), []byte("failed to write manifest")) {
		t.Fatalf("failure not logged:\n%s", stderr.String())
	}
	b, err := os.ReadFile(filepath.Join(dir, "translators", "zotero", "A.js"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(b, []byte("// {")) {
		t.Fatalf("header not commented:\n%s", b)
	}
}

func TestLoadDotenv(t *testing.T) {
	const key = "IMPORTTRANSLATORS_TEST_DOTENV"
	// Restored by t.Setenv on cleanup.
	t.Setenv(key, "")
	os.Unsetenv(key)

	dir := t.TempDir()
	var w bytes.Buffer

	loadDotenv(&w, filepath.Join(dir, "missing.env"))
	testutil.AssertEqual(t, w.String(), "")

	good := filepath.Join(dir, "good.env")
	if err := os.WriteFile(good, []byte(key+"=from-file\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	loadDotenv(&w, good)
	testutil.AssertEqual(t, w.String(), "")
	testutil.AssertEqual(t, os.Getenv(key), "from-file")

	// A directory can be opened but not read.
	unreadable := filepath.Join(dir, "dir.env")
	if err := os.Mkdir(unreadable, 0o755); err != nil {
		t.Fatal(err)
	}
	loadDotenv(&w, unreadable)
	if !strings.HasPrefix(w.String(), "ignoring "+unreadable+": ") {
		t.Fatalf("unreadable file not reported, got %q", w.String())
	}
}

func run(t *testing.T, dir string, args ...string) {
	t.Helper()
	if err := runErr(t, dir, args...); err != nil {
		t.Fatal(err)
	}
}

func runErr(t *testing.T, dir string, args ...string) error {
	t.Helper()
	return runWith(t, dir, new(bytes.Buffer), args...)
}

func runWith(t *testing.T, dir string, stderr *bytes.Buffer, args ...string) error {
	t.Helper()
	env := &cli.Env{
		Args:   append([]string{"-root", dir, "-skip-sync"}, args...),
		Getenv: func(string) string { return "" },
		Stdin:  new(bytes.Buffer),
		Stdout: new(bytes.Buffer),
		Stderr: stderr,
	}
	return cli.Run(cli.WithEnv(context.Background(), env), new(app))
}
