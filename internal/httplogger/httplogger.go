// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package httplogger provides an http.Handler middleware that logs served
// HTTP requests.
//
// Each request is logged once it has been served, with its method, path,
// response status, response size and the time it took.
package httplogger

import (
	"log"
	"net/http"
	"time"

	"go.astrophena.name/mdlive/internal/logger"
)

// New returns an http.Handler that serves requests with h and logs each of
// them with logf. If logf is nil, log.Printf is used.
func New(h http.Handler, logf logger.Logf) http.Handler {
	if logf == nil {
		logf = log.Printf
	}
	return &loggingHandler{h: h, logf: logf, now: time.Now}
}

type loggingHandler struct {
	h    http.Handler
	logf logger.Logf
	now  func() time.Time
}

func (lh *loggingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := lh.now()
	rw := &responseWriter{ResponseWriter: w}
	lh.h.ServeHTTP(rw, r)
	if rw.status == 0 {
		rw.status = http.StatusOK
	}
	lh.logf("HTTP: %s %s %s %d %dB (%.3fs)", timeFormat(start), r.Method, r.URL.Path, rw.status, rw.written, lh.now().Sub(start).Seconds())
}

type responseWriter struct {
	http.ResponseWriter
	status  int
	written int64
}

func (rw *responseWriter) WriteHeader(code int) {
	if rw.status == 0 {
		rw.status = code
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(p []byte) (int, error) {
	if rw.status == 0 {
		rw.status = http.StatusOK
	}
	n, err := rw.ResponseWriter.Write(p)
	rw.written += int64(n)
	return n, err
}

func (rw *responseWriter) Unwrap() http.ResponseWriter { return rw.ResponseWriter }

func timeFormat(t time.Time) string {
	return t.Format("15:04:05.000")
}
