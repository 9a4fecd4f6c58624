// Package render serves the embedded HTML pages through echo's Renderer hook.
package render

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

//go:embed templates/*.html
var templateFS embed.FS

// pageNames lists every renderable page. Each page is parsed together with
// the shared layout so partials stay consistent.
var pageNames = []string{"home", "login", "register", "secrets", "submit", "error"}

// HTMLRenderer implements echo.Renderer over the embedded templates.
type HTMLRenderer struct {
	pages map[string]*template.Template
}

// New parses the embedded templates. A malformed template fails startup.
func New() (*HTMLRenderer, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, errors.Wrapf(err, "parse template %q", name)
		}

		pages[name] = tmpl
	}

	return &HTMLRenderer{pages: pages}, nil
}

// Render implements echo.Renderer.
func (r *HTMLRenderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return errors.Errorf("unknown template %q", name)
	}

	return errors.WithStack(tmpl.ExecuteTemplate(w, "layout", data))
}
