// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package render

import (
	"errors"
	"io"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"

	"go.astrophena.name/mdlive/internal/testutil"
)

func TestConverters(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		src  string
		want []string
	}{
		"heading": {
			src:  "# Hi",
			want: []string{"<h1>Hi</h1>"},
		},
		"paragraph": {
			src:  "Hello, world!",
			want: []string{"<p>Hello, world!</p>"},
		},
		"emphasis and code": {
			src:  "Some *emphasis* and `code`.",
			want: []string{"<em>emphasis</em>", "<code>code</code>"},
		},
		"table": {
			src:  "| a | b |\n| --- | --- |\n| 1 | 2 |\n",
			want: []string{"<table>", "<th>a</th>", "<td>2</td>"},
		},
		"strikethrough": {
			src:  "~~gone~~",
			want: []string{"<del>gone</del>"},
		},
		"task list": {
			src:  "- [x] done\n- [ ] todo\n",
			want: []string{`type="checkbox"`, "checked", "done", "todo"},
		},
	}

	for _, name := range Names() {
		conv, err := ByName(name)
		if err != nil {
			t.Fatal(err)
		}
		for caseName, tc := range cases {
			t.Run(name+"/"+caseName, func(t *testing.T) {
				got := conv(tc.src)
				for _, want := range tc.want {
					testutil.AssertContains(t, got, want)
				}
			})
		}
	}
}

type failRenderer struct{}

func (failRenderer) Render(w io.Writer, source []byte, n ast.Node) error {
	return errors.New("renderer broke")
}

func (failRenderer) AddOptions(...renderer.Option) {}

func TestGoldmarkFailure(t *testing.T) {
	t.Parallel()

	conv := goldmarkConverter(goldmark.New(goldmark.WithRenderer(failRenderer{})))
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("a failed conversion must not return silently")
		}
		testutil.AssertContains(t, r.(string), "renderer broke")
	}()
	conv("# Hi")
}

func TestByName(t *testing.T) {
	t.Parallel()

	testutil.AssertEqual(t, Names(), []string{"goldmark", "rsc"})

	if _, err := ByName("pandoc"); err == nil {
		t.Fatal("unknown renderer must fail")
	} else {
		testutil.AssertContains(t, err.Error(), `unknown renderer "pandoc"`)
	}
}

func TestPage(t *testing.T) {
	t.Parallel()

	got := string(Page("Fish & Chips", "<h1>Fish &amp; Chips</h1>"))

	if !strings.HasPrefix(got, "<!doctype html>\n<html><head>") {
		t.Fatalf("page must start with the doctype and head, got %q", got)
	}
	if !strings.HasSuffix(got, "</body></html>\n") {
		t.Fatalf("page must end with closing body and html tags, got %q", got)
	}
	testutil.AssertContains(t, got, `<link href="/markdown.css" rel="stylesheet">`)
	testutil.AssertContains(t, got, `<link href="/favicon.ico" rel="icon">`)
	testutil.AssertContains(t, got, "<title>Fish &amp; Chips</title>")
	testutil.AssertContains(t, got, "<body>\n<h1>Fish &amp; Chips</h1>\n</body>")
	testutil.AssertContains(t, got, `<meta charset="utf-8">`)
}

func TestTitle(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		src  string
		want string
	}{
		"none":             {src: "Just text.", want: ""},
		"first line":       {src: "# Hello, world!\n\nBody.", want: "Hello, world!"},
		"after paragraph":  {src: "Intro.\n\n# Later\n", want: "Later"},
		"second level":     {src: "## Sub\n", want: ""},
		"closing sequence": {src: "# Closed ##\n", want: "Closed"},
		"first of many":    {src: "# One\n# Two\n", want: "One"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, Title(tc.src), tc.want)
		})
	}
}

func readDir(t *testing.T, fsys fs.FS, dir string) []fs.DirEntry {
	t.Helper()
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		t.Fatal(err)
	}
	return entries
}

func TestListing(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"a.md":              {Data: []byte("# A")},
		"sub/b.md":          {Data: []byte("# B")},
		"sub/with space.md": {Data: []byte("spaces")},
		"x&y.md":            {Data: []byte("amp")},
	}

	t.Run("root", func(t *testing.T) {
		got := Listing(".", readDir(t, fsys, "."))
		testutil.AssertContains(t, got, "<h1>Index of /</h1>")
		testutil.AssertContains(t, got, `<li><a href="/a.md">a.md</a></li>`)
		testutil.AssertContains(t, got, `<li><a href="/sub/">sub/</a></li>`)
		testutil.AssertContains(t, got, `<li><a href="/x&amp;y.md">x&amp;y.md</a></li>`)
	})

	t.Run("subdirectory", func(t *testing.T) {
		got := Listing("sub", readDir(t, fsys, "sub"))
		testutil.AssertContains(t, got, "<h1>Index of /sub/</h1>")
		testutil.AssertContains(t, got, `<li><a href="/sub/b.md">b.md</a></li>`)
		testutil.AssertContains(t, got, `<li><a href="/sub/with%20space.md">with space.md</a></li>`)
	})

	t.Run("empty", func(t *testing.T) {
		testutil.AssertEqual(t, Listing("empty", nil), "<h1>Index of /empty/</h1>\n<ul>\n</ul>")
	})
}

func TestDirURL(t *testing.T) {
	t.Parallel()

	testutil.AssertEqual(t, DirURL("."), "/")
	testutil.AssertEqual(t, DirURL(""), "/")
	testutil.AssertEqual(t, DirURL("docs/api"), "/docs/api/")
}
