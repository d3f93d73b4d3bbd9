// Package web holds the embedded page templates. Rendering stays thin:
// handlers hand over a context map and the templates only display it.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var files embed.FS

func Templates() *template.Template {
	return template.Must(template.ParseFS(files, "templates/*.html"))
}
