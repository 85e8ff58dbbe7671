// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package preview implements an HTTP handler that renders Markdown files from
// a file or a directory tree as HTML pages.
package preview

import (
	_ "embed"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.astrophena.name/mdlive/internal/logger"
	"go.astrophena.name/mdlive/internal/render"
	"go.astrophena.name/mdlive/internal/web"
)

var (
	//go:embed static/markdown.css
	stylesheet []byte
	//go:embed static/favicon.ico
	favicon []byte
)

// Content types of served responses.
const (
	pageContentType       = "text/html; charset=utf-8"
	stylesheetContentType = "text/css"
	faviconContentType    = "image/vnd.microsoft.icon"
)

var errFileNotFound = fmt.Errorf("file %w", web.ErrNotFound)

// Config configures a [Handler].
type Config struct {
	// FS is the root of served content.
	FS fs.FS
	// File, if not empty, switches the handler to single-file mode: the
	// named file of FS is rendered for every request regardless of its path.
	File string
	// Convert converts Markdown to HTML. If nil, render.RSC is used.
	Convert render.Converter
	// Logf is used to log failed requests. If nil, logs are thrown away.
	Logf logger.Logf
}

// Root returns a filesystem and, when location is a regular file, the name of
// that file within it, suitable for [Config].
func Root(location string) (fsys fs.FS, file string, err error) {
	abs, err := filepath.Abs(location)
	if err != nil {
		return nil, "", err
	}
	fi, err := os.Stat(abs)
	if err != nil {
		return nil, "", err
	}
	if fi.IsDir() {
		return os.DirFS(abs), "", nil
	}
	return os.DirFS(filepath.Dir(abs)), filepath.Base(abs), nil
}

// Handler serves bundled assets, directory listings and rendered Markdown
// pages. It holds no mutable state.
type Handler struct {
	c Config
}

// New returns a new Handler. c must not be modified after New returns.
func New(c Config) *Handler {
	if c.Convert == nil {
		c.Convert = render.RSC()
	}
	if c.Logf == nil {
		c.Logf = logger.Discard
	}
	return &Handler{c: c}
}

// SingleFile reports whether h serves a single file.
func (h *Handler) SingleFile() bool { return h.c.File != "" }

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		web.RespondError(h.c.Logf, w, web.ErrMethodNotAllowed)
		return
	}

	p := strings.TrimPrefix(r.URL.Path, "/")
	switch p {
	case render.Stylesheet:
		respond(w, stylesheetContentType, stylesheet, time.Time{})
		return
	case render.Favicon:
		respond(w, faviconContentType, favicon, time.Time{})
		return
	}

	if h.SingleFile() {
		h.servePage(w, h.c.File)
		return
	}

	name := strings.TrimSuffix(p, "/")
	if name == "" {
		name = "."
	}
	// Rejects "..", "." and empty elements, so requests can't escape the root.
	if !fs.ValidPath(name) {
		h.notFound(w, fmt.Errorf("invalid path %q", r.URL.Path))
		return
	}

	fi, err := fs.Stat(h.c.FS, name)
	if err != nil {
		h.notFound(w, err)
		return
	}
	if fi.IsDir() {
		h.serveListing(w, name)
		return
	}
	if strings.HasSuffix(p, "/") {
		h.notFound(w, fmt.Errorf("%s: not a directory", name))
		return
	}
	h.servePage(w, name)
}

func (h *Handler) servePage(w http.ResponseWriter, name string) {
	f, err := h.c.FS.Open(name)
	if err != nil {
		h.notFound(w, err)
		return
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		h.notFound(w, err)
		return
	}
	b, err := io.ReadAll(f)
	if err != nil {
		h.notFound(w, err)
		return
	}

	src := string(b)
	title := render.Title(src)
	if title == "" {
		title = fi.Name()
	}
	respond(w, pageContentType, render.Page(title, h.c.Convert(src)), fi.ModTime())
}

func (h *Handler) serveListing(w http.ResponseWriter, dir string) {
	entries, err := fs.ReadDir(h.c.FS, dir)
	if err != nil {
		h.notFound(w, err)
		return
	}
	respond(w, pageContentType, render.Page(render.DirURL(dir), render.Listing(dir, entries)), time.Time{})
}

func (h *Handler) notFound(w http.ResponseWriter, err error) {
	h.c.Logf("%v", err)
	web.RespondError(h.c.Logf, w, errFileNotFound)
}

// respond writes a 200 response with body. Last-Modified is set only if
// modTime is known.
func respond(w http.ResponseWriter, contentType string, body []byte, modTime time.Time) {
	hdr := w.Header()
	hdr.Set("Content-Type", contentType)
	hdr.Set("Content-Length", strconv.Itoa(len(body)))
	if !modTime.IsZero() {
		hdr.Set("Last-Modified", modTime.UTC().Format(http.TimeFormat))
	}
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
