// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package restrict allows programs to use [Landlock] LSM on supported systems
// for sandboxing. On unsupported systems it does nothing.
//
// [Landlock]: https://landlock.io
package restrict

import (
	"context"
	"testing"

	"github.com/landlock-lsm/go-landlock/landlock"
)

// DoUnlessTesting calls [Do] unless the program is a test binary, where
// sandboxing would get in the way of fixtures in temporary directories.
func DoUnlessTesting(ctx context.Context, rules ...landlock.Rule) {
	if testing.Testing() {
		return
	}
	Do(ctx, rules...)
}
