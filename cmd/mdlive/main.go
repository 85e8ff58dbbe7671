// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"net/http"
	"strings"

	"go.astrophena.name/mdlive/internal/cli"
	"go.astrophena.name/mdlive/internal/httplogger"
	"go.astrophena.name/mdlive/internal/logger"
	"go.astrophena.name/mdlive/internal/preview"
	"go.astrophena.name/mdlive/internal/render"
	"go.astrophena.name/mdlive/internal/web"
)

const defaultPort = 8000

func main() { cli.Main(new(engine)) }

type engine struct {
	// configuration
	port        int
	renderer    string
	logRequests bool

	// used in tests
	noServerStart bool
	ready         func(addr net.Addr)
	handler       *preview.Handler
}

func (e *engine) Flags(fs *flag.FlagSet) {
	fs.IntVar(&e.port, "port", defaultPort, "Listen on `port`.")
	fs.IntVar(&e.port, "p", defaultPort, "Shorthand for -port.")
	fs.StringVar(&e.renderer, "renderer", "rsc", "Markdown `renderer` to use ("+strings.Join(render.Names(), " or ")+").")
	fs.BoolVar(&e.logRequests, "log-requests", false, "Log every served request.")
}

func (e *engine) EnvPrefix() string { return "MDLIVE_" }

func (e *engine) Run(ctx context.Context, env *cli.Env) error {
	if len(env.Args) > 1 {
		return fmt.Errorf("%w: at most one location is allowed, got %d", cli.ErrInvalidArgs, len(env.Args))
	}
	location := "."
	if len(env.Args) == 1 {
		location = env.Args[0]
	}
	if e.port < 0 || e.port > 65535 {
		return fmt.Errorf("%w: port %d is out of range", cli.ErrInvalidArgs, e.port)
	}

	convert, err := render.ByName(e.renderer)
	if err != nil {
		return fmt.Errorf("%w: %v", cli.ErrInvalidArgs, err)
	}
	fsys, file, err := preview.Root(location)
	if err != nil {
		return fmt.Errorf("%w: %v", cli.ErrInvalidArgs, err)
	}

	logf := logger.To(env.Stdout)
	e.handler = preview.New(preview.Config{
		FS:      fsys,
		File:    file,
		Convert: convert,
		Logf:    logf,
	})

	if e.noServerStart {
		return nil
	}

	var h http.Handler = e.handler
	if e.logRequests {
		h = httplogger.New(h, logf)
	}

	return web.ListenAndServe(ctx, &web.ListenAndServeConfig{
		Addr:    fmt.Sprintf(":%d", e.port),
		Handler: h,
		Logf:    logf,
		Ready: func(addr net.Addr) {
			logf("Serving from %s", web.LocalURL(addr))
			if e.ready != nil {
				e.ready(addr)
			}
		},
	})
}
