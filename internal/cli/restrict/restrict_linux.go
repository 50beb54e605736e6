// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

//go:build linux && !android

package restrict

import (
	"context"
	"log/slog"

	"go.astrophena.name/translators/internal/logger"

	"github.com/landlock-lsm/go-landlock/landlock"
)

// Do restricts all goroutines of this program to [landlock.Rule]s. Failure to
// sandbox is logged and otherwise ignored.
func Do(ctx context.Context, rules ...landlock.Rule) {
	if err := landlock.V3.BestEffort().Restrict(rules...); err != nil {
		logger.Warn(ctx, "sandboxing failed", slog.Any("error", err))
	}
}
