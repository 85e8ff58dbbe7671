// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package envflag

import (
	"errors"
	"flag"
	"io"
	"testing"

	"go.astrophena.name/mdlive/internal/testutil"
)

func TestName(t *testing.T) {
	t.Parallel()

	testutil.AssertEqual(t, Name("MDLIVE_", "port"), "MDLIVE_PORT")
	testutil.AssertEqual(t, Name("MDLIVE_", "cache-dir"), "MDLIVE_CACHE_DIR")
}

func newFlagSet() (fs *flag.FlagSet, port *int, renderer *string) {
	fs = flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	port = fs.Int("port", 8000, "Port.")
	fs.IntVar(port, "p", 8000, "Port (shorthand).")
	renderer = fs.String("renderer", "rsc", "Renderer.")
	return fs, port, renderer
}

func TestApply(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		env          map[string]string
		args         []string
		wantPort     int
		wantRenderer string
		wantErr      error
	}{
		"defaults": {
			wantPort:     8000,
			wantRenderer: "rsc",
		},
		"overridden by environment": {
			env:          map[string]string{"MDLIVE_PORT": "9000", "MDLIVE_RENDERER": "goldmark"},
			wantPort:     9000,
			wantRenderer: "goldmark",
		},
		"arguments win over environment": {
			env:          map[string]string{"MDLIVE_PORT": "9000"},
			args:         []string{"-p", "9100"},
			wantPort:     9100,
			wantRenderer: "rsc",
		},
		"shorthand has no variable": {
			env:          map[string]string{"MDLIVE_P": "9000"},
			wantPort:     8000,
			wantRenderer: "rsc",
		},
		"invalid value keeps default": {
			env:          map[string]string{"MDLIVE_PORT": "eighty"},
			wantPort:     8000,
			wantRenderer: "rsc",
			wantErr:      ErrInvalidValue,
		},
		"out of range value keeps default": {
			env:          map[string]string{"MDLIVE_PORT": "99999999999999999999"},
			wantPort:     8000,
			wantRenderer: "rsc",
			wantErr:      ErrInvalidValue,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			fs, port, renderer := newFlagSet()
			err := Apply(fs, "MDLIVE_", func(name string) string { return tc.env[name] })
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("want error %v, got %v", tc.wantErr, err)
				}
			} else if err != nil {
				t.Fatal(err)
			}
			if err := fs.Parse(tc.args); err != nil {
				t.Fatal(err)
			}
			testutil.AssertEqual(t, *port, tc.wantPort)
			testutil.AssertEqual(t, *renderer, tc.wantRenderer)
		})
	}
}

func TestApplyUsage(t *testing.T) {
	t.Parallel()

	fs, _, _ := newFlagSet()
	if err := Apply(fs, "MDLIVE_", func(string) string { return "" }); err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, fs.Lookup("port").Usage, "Port. Can be overridden by MDLIVE_PORT environment variable.")
	testutil.AssertEqual(t, fs.Lookup("p").Usage, "Port (shorthand).")
}
