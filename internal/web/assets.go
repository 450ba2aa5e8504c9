package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var assetsFS embed.FS

// subStaticFS exposes the embedded static assets rooted at static/.
func subStaticFS() (fs.FS, error) {
	return fs.Sub(assetsFS, "static")
}
