// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package transform rewrites translator scripts in place so that their
// leading JSON header becomes a comment.
package transform

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"go.astrophena.name/translators/internal/atomicio"
	"go.astrophena.name/translators/internal/header"
	"go.astrophena.name/translators/internal/ignore"
	"go.astrophena.name/translators/internal/logger"
	"go.astrophena.name/translators/internal/syncutil"
)

// Ext is the extension of files that are transformed.
const Ext = ".js"

// Options control what File and Run do to each script.
type Options struct {
	// AppendExports makes the legacy entry points importable as an ES module,
	// see [AppendExports].
	AppendExports bool
	// Workers is the number of files transformed at once. Values below two
	// mean one file at a time, each written back before the next is read.
	Workers int
}

// Kind is the outcome of transforming one file.
type Kind int

const (
	Unchanged Kind = iota // nothing to do, file left as is
	Changed               // file rewritten
	Failed                // file could not be read or written
)

func (k Kind) String() string {
	switch k {
	case Unchanged:
		return "unchanged"
	case Changed:
		return "changed"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Result describes what happened to one file.
type Result struct {
	Path      string // relative to the root passed to Run
	Kind      Kind
	Commented bool  // header was commented out
	Exported  bool  // exports were appended
	Err       error // set if Kind is Failed
}

// Stats are the aggregate counts of a Run.
type Stats struct {
	Processed int // files considered, including failed ones
	Changed   int
	Commented int
	Exported  int
	Failed    int
}

// LogValue implements [slog.LogValuer].
func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("processed", s.Processed),
		slog.Int("changed", s.Changed),
		slog.Int("commented", s.Commented),
		slog.Int("exported", s.Exported),
		slog.Int("failed", s.Failed),
	)
}

func (s *Stats) add(r Result) {
	s.Processed++
	switch r.Kind {
	case Changed:
		s.Changed++
	case Failed:
		s.Failed++
	}
	if r.Commented {
		s.Commented++
	}
	if r.Exported {
		s.Exported++
	}
}

// File transforms the script at root/rel. If it is a symbolic link, the file
// it points to is rewritten and the link stays. Errors are reported in the
// returned Result, never by panicking or aborting.
func File(root, rel string, opts Options) Result {
	res := Result{Path: rel}

	name, err := filepath.EvalSymlinks(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		return res.fail(err)
	}
	fi, err := os.Stat(name)
	if err != nil {
		return res.fail(err)
	}
	b, err := os.ReadFile(name)
	if err != nil {
		return res.fail(err)
	}

	text := string(b)
	text, res.Commented = header.Comment(text)
	if opts.AppendExports {
		text, res.Exported = AppendExports(text)
	}
	if !res.Commented && !res.Exported {
		return res
	}

	if err := atomicio.WriteFile(name, []byte(text), fi.Mode().Perm()); err != nil {
		return res.fail(err)
	}
	res.Kind = Changed
	return res
}

func (r Result) fail(err error) Result {
	r.Kind = Failed
	r.Commented = false
	r.Exported = false
	r.Err = err
	return r
}

// processFile is File, replaced in tests.
var processFile = File

// Run transforms every eligible script under root in path order, up to
// opts.Workers at once. Each result is logged as soon as its file is done; a
// file that fails is logged and skipped. Run only returns an error if root
// can't be enumerated or ctx is canceled.
func Run(ctx context.Context, root string, opts Options) (Stats, error) {
	var stats Stats

	files, err := ignore.Files(ctx, os.DirFS(root), Ext)
	if err != nil {
		return stats, fmt.Errorf("listing scripts in %q: %w", root, err)
	}
	if len(files) == 0 {
		logger.Warn(ctx, "no scripts found", slog.String("dir", root))
		return stats, nil
	}

	var (
		results = make([]Result, len(files))
		started = 0
		g       = syncutil.NewLimitedGroup(opts.Workers)
	)
	for i, rel := range files {
		if ctx.Err() != nil {
			break
		}
		started++
		g.Go(func() {
			results[i] = processFile(root, rel, opts)
			report(ctx, results[i])
		})
	}
	g.Wait()

	for _, res := range results[:started] {
		stats.add(res)
	}
	if err := ctx.Err(); err != nil {
		return stats, err
	}

	logger.Info(ctx, "processed scripts", slog.Any("stats", stats))
	return stats, nil
}

func report(ctx context.Context, res Result) {
	switch res.Kind {
	case Failed:
		logger.Error(ctx, "failed to process file", slog.String("path", res.Path), slog.Any("error", res.Err))
	case Changed:
		logger.Debug(ctx, "rewrote file",
			slog.String("path", res.Path),
			slog.Bool("commented", res.Commented),
			slog.Bool("exported", res.Exported),
		)
	}
}
