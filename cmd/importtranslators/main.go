// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"go.astrophena.name/translators/internal/cli"
	"go.astrophena.name/translators/internal/cli/envflag"
	"go.astrophena.name/translators/internal/cli/restrict"
	"go.astrophena.name/translators/internal/filelock"
	"go.astrophena.name/translators/internal/ignore"
	"go.astrophena.name/translators/internal/logger"
	"go.astrophena.name/translators/internal/manifest"
	"go.astrophena.name/translators/internal/reposync"
	"go.astrophena.name/translators/internal/transform"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/landlock-lsm/go-landlock/landlock"
)

const (
	defaultRemote = "https://github.com/zotero/translators"

	// Locations relative to the project root.
	translatorsDir = "translators"
	corpusDir      = "translators/zotero"
	manifestFile   = "translators/manifest.json"
	lockFile       = ".importtranslators.lock"
)

func main() {
	loadDotenv(os.Stderr, ".env")
	cli.Main(new(app))
}

// loadDotenv adds variables from the file name to the process environment.
// A missing file is fine; any other problem is reported to w and the file is
// ignored.
func loadDotenv(w io.Writer, name string) {
	if err := godotenv.Load(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(w, "ignoring %s: %v\n", name, err)
	}
}

type app struct {
	// flags
	root     *string
	remote   *string
	skipSync *bool
	exports  bool
	workers  int
}

func (a *app) Flags(fs *flag.FlagSet, getenv func(string) string) {
	a.root = envflag.Value("root", "IMPORTTRANSLATORS_ROOT", ".", "Project `directory` that holds translators/.", fs, getenv)
	a.remote = envflag.Value("remote", "IMPORTTRANSLATORS_REMOTE", defaultRemote, "Translators repository `URL or path`.", fs, getenv)
	a.skipSync = envflag.Value("skip-sync", "IMPORTTRANSLATORS_SKIP_SYNC", false, "Don't clone or update translators, work on the existing checkout.", fs, getenv)
	fs.BoolVar(&a.exports, "exports", false, "Append ES module exports of detectWeb and doWeb to every translator.")
	fs.IntVar(&a.workers, "workers", 1, "Number of translators to rewrite at once.")
}

type config struct {
	Root    string `validate:"required,dir"`
	Remote  string `validate:"required,url|dir"`
	Workers int    `validate:"min=1"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func (a *app) Run(ctx context.Context) error {
	env := cli.GetEnv(ctx)
	if len(env.Args) > 0 {
		return fmt.Errorf("%w: no arguments expected, got %q", cli.ErrInvalidArgs, env.Args)
	}

	root, err := filepath.Abs(*a.root)
	if err != nil {
		return err
	}
	cfg := config{Root: root, Remote: *a.remote, Workers: a.workers}
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("%w: %v", cli.ErrInvalidArgs, err)
	}

	var (
		translators = filepath.Join(root, filepath.FromSlash(translatorsDir))
		corpus      = filepath.Join(root, filepath.FromSlash(corpusDir))
	)

	lock, err := filelock.Acquire(filepath.Join(root, lockFile))
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn(ctx, "failed to release lock", slog.Any("error", err))
		}
	}()

	if !*a.skipSync {
		s := &reposync.Syncer{
			Root:   root,
			Dir:    corpus,
			Remote: cfg.Remote,
			Output: env.Stderr,
		}
		if err := s.Ensure(ctx); err != nil {
			return err
		}
	}

	// Everything past this point only touches the translators.
	restrict.DoUnlessTesting(ctx, landlock.RWDirs(translators))

	if _, err := ignore.Prune(ctx, corpus); err != nil {
		logger.Error(ctx, "cleanup incomplete", slog.Any("error", err))
	}

	if _, err := transform.Run(ctx, corpus, transform.Options{
		AppendExports: a.exports,
		Workers:       cfg.Workers,
	}); err != nil {
		return err
	}

	entries, err := manifest.Build(ctx, os.DirFS(corpus), corpusDir)
	if err != nil {
		return err
	}
	name := filepath.Join(root, filepath.FromSlash(manifestFile))
	if err := manifest.Write(name, entries); err != nil {
		// Last step: everything else is already done.
		logger.Error(ctx, "failed to write manifest", slog.String("path", name), slog.Any("error", err))
		return nil
	}
	logger.Info(ctx, "wrote manifest", slog.String("path", name), slog.Int("entries", len(entries)))

	return nil
}
