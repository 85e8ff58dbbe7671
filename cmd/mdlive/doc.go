// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Mdlive renders Markdown files as HTML and serves them over HTTP, so you can
preview a document in the browser while editing it.

# Usage

	$ mdlive [flags...] [location]

Location is a file or a directory and defaults to the current directory.

When location is a directory, every file under it is rendered as Markdown
at its relative path, and requesting a directory shows a list of links to
its entries:

	$ mdlive -p 9000 ~/notes

When location is a file, that file is rendered for every request,
regardless of the path:

	$ mdlive README.md

The stylesheet and favicon are bundled and served at /markdown.css and
/favicon.ico.

Pages are rendered with rsc.io/markdown by default. Pass -renderer goldmark
to use goldmark instead.

Pass -log-requests to log every served request to standard output.

Flags can also be set with environment variables named after them:
MDLIVE_PORT, MDLIVE_RENDERER and MDLIVE_LOG_REQUESTS.
*/
package main

import (
	_ "embed"

	"go.astrophena.name/mdlive/internal/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
