package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	log "github.com/sirupsen/logrus"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = []string{
	"index.html",
	"group_posts.html",
	"profile.html",
	"post_detail.html",
	"post_form.html",
	"follow.html",
	"login.html",
	"signup.html",
	"account.html",
	"account_form.html",
	"not_found.html",
}

// Renderer holds the parsed HTML templates. Each page is parsed together
// with the base layout and shared partials.
type Renderer struct {
	templates map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	templates := make(map[string]*template.Template, len(pageTemplates))
	for _, page := range pageTemplates {
		t, err := template.ParseFS(templateFS,
			"templates/base.html",
			"templates/partials.html",
			"templates/"+page,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", page, err)
		}
		templates[page] = t
	}
	return &Renderer{templates: templates}, nil
}

// Render writes the named page. Template failures after headers are sent
// can only be logged.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data interface{}) {
	t, ok := r.templates[page]
	if !ok {
		log.WithField("page", page).Error("unknown template")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := t.ExecuteTemplate(w, "base", data); err != nil {
		log.WithError(err).WithField("page", page).Error("failed to render template")
	}
}
