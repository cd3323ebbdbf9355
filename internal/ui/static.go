package ui

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static/*
var staticFs embed.FS

// StaticHandler serves the shared assets under the given prefix.
func StaticHandler(prefix string) http.Handler {
	root, err := fs.Sub(staticFs, "static")
	if err != nil {
		panic(err)
	}

	return http.StripPrefix(prefix, http.FileServerFS(root))
}
