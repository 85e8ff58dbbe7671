// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package render converts Markdown to HTML and assembles preview pages.
package render

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"html"
	"io/fs"
	"net/url"
	"path"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"rsc.io/markdown"
)

// Names of the bundled assets, relative to the server root.
const (
	Stylesheet = "markdown.css"
	Favicon    = "favicon.ico"
)

// A Converter turns Markdown source into an HTML fragment. Converters must be
// pure and safe for concurrent use.
type Converter func(src string) string

// RSC returns a Converter backed by rsc.io/markdown with table, task list,
// strikethrough and autolink extensions enabled.
func RSC() Converter {
	p := &markdown.Parser{
		Table:         true,
		TaskListItems: true,
		Strikethrough: true,
		AutoLinkText:  true,
	}
	return func(src string) string {
		return markdown.ToHTML(p.Parse(src))
	}
}

// Goldmark returns a Converter backed by goldmark with GitHub Flavored
// Markdown extensions.
func Goldmark() Converter {
	return goldmarkConverter(goldmark.New(goldmark.WithExtensions(extension.GFM)))
}

// goldmarkConverter panics if md fails to render, which the HTTP server
// recovers from and logs for that request only.
func goldmarkConverter(md goldmark.Markdown) Converter {
	return func(src string) string {
		var buf bytes.Buffer
		if err := md.Convert([]byte(src), &buf); err != nil {
			panic(fmt.Sprintf("render: goldmark failed: %v", err))
		}
		return buf.String()
	}
}

var converters = map[string]func() Converter{
	"rsc":      RSC,
	"goldmark": Goldmark,
}

// Names returns the names accepted by [ByName], sorted.
func Names() []string {
	names := make([]string, 0, len(converters))
	for name := range converters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ByName returns the Converter registered under name.
func ByName(name string) (Converter, error) {
	newConverter, ok := converters[name]
	if !ok {
		return nil, fmt.Errorf("unknown renderer %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return newConverter(), nil
}

//go:embed page.html
var pageTmpl string

// Page wraps the HTML fragment content into a complete UTF-8 encoded HTML
// document that links the bundled stylesheet and favicon.
func Page(title, content string) []byte {
	return []byte(fmt.Sprintf(pageTmpl, html.EscapeString(title), Stylesheet, Favicon, content))
}

// Title returns the text of the first level-one ATX heading in Markdown
// source, or an empty string if there is none.
func Title(src string) string {
	s := bufio.NewScanner(strings.NewReader(src))
	for s.Scan() {
		line := s.Text()
		if title, ok := strings.CutPrefix(line, "# "); ok {
			return strings.TrimSpace(strings.TrimRight(strings.TrimSpace(title), "#"))
		}
	}
	return ""
}

// Listing returns an HTML fragment linking every entry of the directory dir,
// a slash-separated path relative to the server root ("." for the root).
// Links point to "/<dir>/<entry>"; directories get a trailing slash.
func Listing(dir string, entries []fs.DirEntry) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<h1>Index of %s</h1>\n<ul>\n", html.EscapeString(DirURL(dir)))
	for _, e := range entries {
		name := e.Name()
		target := "/" + path.Join(dir, name)
		if e.IsDir() {
			name += "/"
			target += "/"
		}
		u := &url.URL{Path: target}
		fmt.Fprintf(&sb, "<li><a href=\"%s\">%s</a></li>\n", html.EscapeString(u.EscapedPath()), html.EscapeString(name))
	}
	sb.WriteString("</ul>")
	return sb.String()
}

// DirURL returns the absolute URL path of dir, a slash-separated path relative
// to the server root, with a trailing slash.
func DirURL(dir string) string {
	if dir == "." || dir == "" {
		return "/"
	}
	return "/" + dir + "/"
}
