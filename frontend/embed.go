//go:build !noembed

// Package frontend embeds the web UI served by the API server.
package frontend

import (
	"embed"
	"io/fs"
)

//go:embed all:dist
var distDir embed.FS

// DistFS is the UI build rooted at dist/.
var DistFS fs.FS

func init() {
	DistFS, _ = fs.Sub(distDir, "dist")
}
