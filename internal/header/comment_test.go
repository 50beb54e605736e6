// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package header

import (
	"flag"
	"os"
	"testing"

	"go.astrophena.name/translators/internal/testutil"
)

var update = flag.Bool("update", false, "update golden files in testdata")

func TestComment(t *testing.T) {
	testutil.RunGolden(t, "testdata/comment/*.js", func(t *testing.T, match string) []byte {
		b, err := os.ReadFile(match)
		if err != nil {
			t.Fatal(err)
		}
		got, _ := Comment(string(b))
		return []byte(got)
	}, *update)
}

func TestCommentIdempotent(t *testing.T) {
	testutil.Run(t, "testdata/comment/*.js", func(t *testing.T, match string) {
		b, err := os.ReadFile(match)
		if err != nil {
			t.Fatal(err)
		}
		once, _ := Comment(string(b))
		twice, changed := Comment(once)
		if changed {
			t.Errorf("second Comment call reported a change")
		}
		testutil.AssertEqual(t, twice, once)
	})
}

func TestCommentReportsChange(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		in   string
		want bool
	}{
		"header with translatorID": {
			in:   `{"translatorID": "x"}` + "\nrest",
			want: true,
		},
		"header with label": {
			in:   `{"label": "x"}`,
			want: true,
		},
		"object without marker key": {
			in:   `{"name": "x"}` + "\nrest",
			want: false,
		},
		"marker key only after the object": {
			in:   `{"name": "x"}` + "\n// label",
			want: false,
		},
		"line comment": {
			in:   "  // {\"label\": \"x\"}",
			want: false,
		},
		"block comment": {
			in:   "/* {\"label\": \"x\"} */",
			want: false,
		},
		"array": {
			in:   `[{"label": "x"}]`,
			want: false,
		},
		"unterminated": {
			in:   `{"label": "x"`,
			want: false,
		},
		"empty": {
			in:   "",
			want: false,
		},
		"whitespace only": {
			in:   " \n\t",
			want: false,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, changed := Comment(tc.in)
			testutil.AssertEqual(t, changed, tc.want)
			if !changed {
				testutil.AssertEqual(t, got, tc.in)
			}
		})
	}
}

func TestCommentLayout(t *testing.T) {
	t.Parallel()

	in := "{\n  \"label\": \"Example\"\n}\nfunction doWeb() {}\n"
	want := "// {\n//   \"label\": \"Example\"\n// }\n\n\nfunction doWeb() {}\n"

	got, changed := Comment(in)
	testutil.AssertEqual(t, changed, true)
	testutil.AssertEqual(t, got, want)
}
