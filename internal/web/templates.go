package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"github.com/spler/influencer-hub/internal/domain"
	"github.com/spler/influencer-hub/internal/util"
)

//go:embed templates/*.html
var templateFS embed.FS

// viewData is the envelope every page receives: flashes from the session
// plus page-specific data.
type viewData struct {
	Title   string
	Flashes []string
	Data    any
}

type templateSet struct {
	pages map[string]*template.Template
}

var templateFuncs = template.FuncMap{
	"label": func(column string) string {
		if label, ok := domain.ColumnLabels[column]; ok {
			return label
		}
		return column
	},
	"field": func(rec *domain.Influencer, column string) any {
		return rec.Field(column)
	},
	"selected": util.Contains,
}

var pageNames = []string{
	"login.html",
	"index.html",
	"search.html",
	"discover.html",
	"edit.html",
	"import.html",
}

// parseTemplates compiles each page together with the shared layout.
func parseTemplates() (*templateSet, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New("layout.html").Funcs(templateFuncs).ParseFS(
			templateFS,
			"templates/layout.html",
			"templates/"+name,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		pages[name] = t
	}
	return &templateSet{pages: pages}, nil
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data *viewData) {
	t, ok := s.templates.pages[name]
	if !ok {
		s.serverError(w, r, fmt.Errorf("unknown template %s", name))
		return
	}
	data.Flashes = s.takeFlashes(w, r)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.ExecuteTemplate(w, "layout.html", data); err != nil {
		s.logger.Error("Template render failed",
			zap.String("template", name),
			zap.Error(err),
		)
	}
}
