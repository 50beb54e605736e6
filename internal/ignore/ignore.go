// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package ignore decides which files of a translator checkout take part in
// processing, enumerates them, and removes the rest.
package ignore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"go.astrophena.name/translators/internal/logger"
)

// Denylist holds file names that are ignored wherever they appear.
var Denylist = []string{"jsconfig.json", "AGENTS.md"}

// Match reports whether the slash-separated path rel, relative to the scan
// root, is ignored: some component of it starts with a dot, or its last
// component is in [Denylist].
func Match(rel string) bool {
	for _, part := range strings.Split(rel, "/") {
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return slices.Contains(Denylist, path.Base(rel))
}

// Files returns the slash-separated paths of all regular files in fsys that
// are not ignored and have one of the given extensions, sorted. With no
// extensions every file is returned. Ignored directories are not descended
// into. Symbolic links count when they point to a regular file; linked
// directories are not followed.
//
// A subdirectory that can't be read is logged and skipped. Only a failure to
// read the root itself is returned.
func Files(ctx context.Context, fsys fs.FS, exts ...string) ([]string, error) {
	var files []string
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == "." {
				return err
			}
			logger.Warn(ctx, "skipping unreadable path", slog.String("path", p), slog.Any("error", err))
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if p == "." {
			return nil
		}
		if Match(p) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if len(exts) > 0 && !slices.Contains(exts, path.Ext(p)) {
			return nil
		}
		if !isRegular(ctx, fsys, p, d) {
			return nil
		}
		files = append(files, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(files)
	return files, nil
}

func isRegular(ctx context.Context, fsys fs.FS, p string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	fi, err := fs.Stat(fsys, p)
	if err != nil {
		logger.Warn(ctx, "skipping broken link", slog.String("path", p), slog.Any("error", err))
		return false
	}
	return fi.Mode().IsRegular()
}

// Prune deletes every ignored file and directory under root, directories
// recursively. It keeps going after a failed removal and returns the paths
// it removed, relative to root, along with all removal errors joined.
func Prune(ctx context.Context, root string) (removed []string, err error) {
	var errs []error
	walkErr := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			// An unreadable directory is reported and skipped.
			errs = append(errs, err)
			if d != nil && d.IsDir() && p != root {
				return fs.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == "." || !Match(rel) {
			return nil
		}

		if d.IsDir() {
			logger.Info(ctx, "removing directory", slog.String("path", rel))
			if err := os.RemoveAll(p); err != nil {
				logger.Error(ctx, "failed to remove", slog.String("path", rel), slog.Any("error", err))
				errs = append(errs, fmt.Errorf("removing %q: %w", rel, err))
			} else {
				removed = append(removed, rel)
			}
			return fs.SkipDir
		}

		logger.Info(ctx, "removing file", slog.String("path", rel))
		if err := os.Remove(p); err != nil {
			logger.Error(ctx, "failed to remove", slog.String("path", rel), slog.Any("error", err))
			errs = append(errs, fmt.Errorf("removing %q: %w", rel, err))
		} else {
			removed = append(removed, rel)
		}
		return nil
	})
	if walkErr != nil {
		errs = append(errs, walkErr)
	}
	return removed, errors.Join(errs...)
}
