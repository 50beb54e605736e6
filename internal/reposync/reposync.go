// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package reposync keeps a local checkout of a remote git repository up to
// date by running the git executable.
package reposync

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.astrophena.name/translators/internal/logger"
)

// ErrSync wraps every error returned by [Syncer.Ensure].
var ErrSync = errors.New("repository sync failed")

// Syncer mirrors Remote into Dir.
type Syncer struct {
	// Root is the project root. If it is a git repository, Dir is added to it
	// as a submodule.
	Root string
	// Dir is the checkout directory.
	Dir string
	// Remote is anything git clone accepts: a URL or a local path.
	Remote string
	// Git is the git executable. Defaults to "git" looked up in PATH.
	Git string
	// Output receives the output of git commands. Defaults to io.Discard.
	Output io.Writer
}

// Ensure makes Dir a checkout of Remote:
//
//   - an existing checkout is updated with a fast-forward pull;
//   - otherwise, if Root is a git repository, Dir is added as a submodule;
//   - if that is not possible, Dir is emptied and Remote is cloned into it.
func (s *Syncer) Ensure(ctx context.Context) error {
	if err := s.ensure(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrSync, err)
	}
	return nil
}

func (s *Syncer) ensure(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(s.Dir), 0o755); err != nil {
		return err
	}

	if exists(filepath.Join(s.Dir, ".git")) {
		logger.Info(ctx, "updating existing checkout", slog.String("dir", s.Dir))
		return s.git(ctx, "", "-C", s.Dir, "pull", "--ff-only")
	}

	if exists(filepath.Join(s.Root, ".git")) {
		rel, err := filepath.Rel(s.Root, s.Dir)
		if err != nil {
			return err
		}
		err = s.git(ctx, s.Root, "submodule", "add", s.Remote, filepath.ToSlash(rel))
		if err == nil {
			logger.Info(ctx, "added submodule", slog.String("dir", s.Dir))
			return nil
		}
		logger.Warn(ctx, "adding submodule failed, falling back to clone", slog.Any("error", err))
	}

	if exists(s.Dir) {
		logger.Info(ctx, "emptying directory before clone", slog.String("dir", s.Dir))
		s.empty(ctx)
	}
	return s.git(ctx, "", "clone", s.Remote, s.Dir)
}

// empty removes the contents of Dir. Failures are logged and skipped; git
// clone reports a directory that is still not empty.
func (s *Syncer) empty(ctx context.Context) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		logger.Warn(ctx, "failed to list directory", slog.Any("error", err))
		return
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(s.Dir, e.Name())); err != nil {
			logger.Warn(ctx, "failed to remove", slog.String("path", e.Name()), slog.Any("error", err))
		}
	}
}

func (s *Syncer) git(ctx context.Context, dir string, args ...string) error {
	bin := s.Git
	if bin == "" {
		bin = "git"
	}
	out := s.Output
	if out == nil {
		out = io.Discard
	}

	cmdline := bin + " " + strings.Join(args, " ")
	logger.Info(ctx, "running", slog.String("cmd", cmdline))
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir
	cmd.Stdout = out
	cmd.Stderr = out
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", cmdline, err)
	}
	return nil
}

func exists(name string) bool {
	_, err := os.Stat(name)
	return !errors.Is(err, fs.ErrNotExist)
}
