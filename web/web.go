// Package web holds the HTML templates served by the home page and the admin site.
package web

import (
	"embed"
	"html/template"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

// ParseTemplates parses every embedded template. Dates are rendered in loc.
func ParseTemplates(loc *time.Location) (*template.Template, error) {
	funcs := template.FuncMap{
		"date": func(t time.Time) string {
			return t.In(loc).Format("Jan. 2, 2006, 3:04 PM")
		},
		"isoDate": func(t time.Time) string {
			return t.In(loc).Format(time.RFC3339)
		},
	}
	return template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
}
