package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"bookstore/internal/catalog"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var pages = []string{
	"home.html",
	"books.html",
	"book_detail.html",
	"manage.html",
	"about.html",
	"contact.html",
	"login.html",
	"signup.html",
	"not_found.html",
	"error.html",
}

var funcs = template.FuncMap{
	"slugify":    catalog.Slugify,
	"pathescape": url.PathEscape,
	"add":        func(a, b int) int { return a + b },
}

// pageData is what every template executes against. Data carries the
// page-specific payload.
type pageData struct {
	Title  string
	Active string
	Data   any
}

func parseTemplates() (map[string]*template.Template, error) {
	tmpl := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		t, err := template.New("base.html").Funcs(funcs).ParseFS(templateFS,
			"templates/base.html",
			"templates/header.html",
			"templates/"+page,
		)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		tmpl[page] = t
	}
	return tmpl, nil
}

func (h *Handler) render(w http.ResponseWriter, status int, page string, data pageData) {
	t, ok := h.tmpl[page]
	if !ok {
		h.log.Error("unknown template", zap.String("page", page))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := t.ExecuteTemplate(w, "base", data); err != nil {
		h.log.Error("render template", zap.String("page", page), zap.Error(err))
	}
}
