// Package templates embeds the HTML templates of the customizer pages.
package templates

import (
	"embed"
	"html/template"
)

//go:embed *.html
var files embed.FS

// Parse parses every embedded template into one set
// layout.html defines the shared "header" and "footer" blocks
func Parse() (*template.Template, error) {
	return template.New("pages").ParseFS(files, "*.html")
}
