// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package envflag

import (
	"flag"
	"io"
	"testing"

	"go.astrophena.name/translators/internal/testutil"
)

func TestValue(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		args     []string
		env      map[string]string
		wantRoot string
		wantSkip bool
	}{
		"defaults": {
			wantRoot: ".",
		},
		"environment": {
			env:      map[string]string{"ROOT": "/srv", "SKIP": "true"},
			wantRoot: "/srv",
			wantSkip: true,
		},
		"flag wins over environment": {
			args:     []string{"-root", "/flag", "-skip=false"},
			env:      map[string]string{"ROOT": "/srv", "SKIP": "true"},
			wantRoot: "/flag",
		},
		"bool flag without value": {
			args:     []string{"-skip"},
			wantRoot: ".",
			wantSkip: true,
		},
		"unparsable environment keeps default": {
			env:      map[string]string{"SKIP": "maybe"},
			wantRoot: ".",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			fs := flag.NewFlagSet("test", flag.ContinueOnError)
			fs.SetOutput(io.Discard)
			getenv := func(k string) string { return tc.env[k] }

			root := Value("root", "ROOT", ".", "Root.", fs, getenv)
			skip := Value("skip", "SKIP", false, "Skip.", fs, getenv)

			if err := fs.Parse(tc.args); err != nil {
				t.Fatal(err)
			}
			testutil.AssertEqual(t, *root, tc.wantRoot)
			testutil.AssertEqual(t, *skip, tc.wantSkip)
		})
	}
}
