// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package testutil contains common testing helpers.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/tools/txtar"
)

// AssertEqual compares two values and if they differ, fails the test and
// prints the difference between them.
func AssertEqual(t *testing.T, got, want any) {
	t.Helper()
	if diff := cmp.Diff(got, want); diff != "" {
		t.Fatalf("(-got +want):\n%s", diff)
	}
}

// AssertContains fails the test if substr is not present in s.
func AssertContains(t *testing.T, s, substr string) {
	t.Helper()
	if !strings.Contains(s, substr) {
		t.Fatalf("%q must contain %q", s, substr)
	}
}

// AssertNotContains fails the test if substr is present in s.
func AssertNotContains(t *testing.T, s, substr string) {
	t.Helper()
	if strings.Contains(s, substr) {
		t.Fatalf("%q must not contain %q", s, substr)
	}
}

// ExtractTxtar extracts a txtar archive to dir. Files with names ending in a
// slash are created as empty directories.
func ExtractTxtar(t *testing.T, ar *txtar.Archive, dir string) {
	t.Helper()
	for _, file := range ar.Files {
		if strings.HasSuffix(file.Name, "/") {
			if err := os.MkdirAll(filepath.Join(dir, file.Name), 0o755); err != nil {
				t.Fatal(err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Join(dir, filepath.Dir(file.Name)), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, file.Name), file.Data, 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

// TempTxtar parses the txtar archive src, extracts it into a fresh temporary
// directory and returns the directory path.
func TempTxtar(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	ExtractTxtar(t, txtar.Parse([]byte(src)), dir)
	return dir
}
