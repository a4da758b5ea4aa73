//go:build noembed

// Package frontend embeds the web UI served by the API server. This file
// is used with -tags noembed and serves a placeholder page instead.
package frontend

import (
	"io/fs"
	"testing/fstest"
)

// DistFS holds a single placeholder index.html.
var DistFS fs.FS = fstest.MapFS{
	"index.html": &fstest.MapFile{Data: []byte("<!-- noembed stub -->")},
}
