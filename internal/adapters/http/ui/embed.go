// Package ui embeds the default private template pages. They are served when
// the configured private_html directory does not exist.
package ui

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tpl
var templateFiles embed.FS

// Templates returns the embedded pages rooted at the templates directory.
func Templates() fs.FS {
	sub, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}
