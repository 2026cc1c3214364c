// Package web embeds the storefront's HTML templates and static assets.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
)

// Template names rendered by handlers and middleware.
const (
	LoginTemplate     = "login.tmpl"
	RegisterTemplate  = "register.tmpl"
	VerifyTemplate    = "verify.tmpl"
	DashboardTemplate = "dashboard.tmpl"
	ProductTemplate   = "product.tmpl"
	ErrorTemplate     = "error.tmpl"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var funcs = template.FuncMap{
	"seq": func(n int) []int {
		out := make([]int, n)
		for i := range out {
			out[i] = i + 1
		}
		return out
	},
	"neg": func(n int) int { return -n },
}

func Templates() (*template.Template, error) {
	tmpl, err := template.New("storefront").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}

// Static serves everything under static/ rooted at "/".
func Static() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
