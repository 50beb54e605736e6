// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package logger

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"testing"

	"go.astrophena.name/translators/internal/testutil"
)

func TestLogfWriter(t *testing.T) {
	t.Parallel()

	var (
		logged  bool
		message string
	)
	logf := func(format string, args ...any) {
		logged = true
		message = fmt.Sprintf(format, args...)
	}
	Logf(logf).Write([]byte("hello"))
	testutil.AssertEqual(t, logged, true)
	testutil.AssertEqual(t, message, "hello")
}

func TestContextLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := Put(context.Background(), New(&buf, slog.LevelInfo))

	Info(ctx, "processed", slog.Int("files", 3), slog.String("path", "a.js"))
	Error(ctx, "failed", slog.String("path", "b.js"))

	testutil.AssertEqual(t, buf.String(), "level=INFO msg=processed files=3 path=a.js\n"+
		"level=ERROR msg=failed path=b.js\n")
}

func TestGetDefault(t *testing.T) {
	t.Parallel()
	testutil.AssertEqual(t, Get(context.Background()) == slog.Default(), true)
}
