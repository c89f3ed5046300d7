// Package web serves the server-rendered pages. The pages are thin shells:
// all data comes from the JSON API, so mutations are always followed by a
// fresh API read instead of any client-side state.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"log/slog"
)

//go:embed templates/*.html
var templateFS embed.FS

type Pages struct {
	tmpl   *template.Template
	logger *slog.Logger
}

func New() (*Pages, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Pages{tmpl: tmpl, logger: slog.Default()}, nil
}

func (p *Pages) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := p.tmpl.ExecuteTemplate(w, name, data); err != nil {
		p.logger.Error("render page", slog.String("template", name), slog.Any("err", err))
	}
}

func (p *Pages) Home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/app", http.StatusFound)
}

func (p *Pages) Login(w http.ResponseWriter, r *http.Request) {
	data := struct{ Error bool }{Error: r.URL.Query().Get("error") != ""}
	p.render(w, "login.html", data)
}

func (p *Pages) App(w http.ResponseWriter, r *http.Request) {
	p.render(w, "app.html", nil)
}

func (p *Pages) Projects(w http.ResponseWriter, r *http.Request) {
	p.render(w, "projects.html", nil)
}

func (p *Pages) Review(w http.ResponseWriter, r *http.Request) {
	p.render(w, "review.html", nil)
}

func (p *Pages) Admin(w http.ResponseWriter, r *http.Request) {
	p.render(w, "admin.html", nil)
}
