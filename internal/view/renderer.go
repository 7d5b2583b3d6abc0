package view

import (
	"bytes"
	"embed"
	"html/template"

	"github.com/gofiber/fiber/v2"

	"doc-research-fe/internal/dto"
	"doc-research-fe/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

// Data is everything a page template can see. Session is the live state;
// Flashes were popped from it before rendering so they show exactly once.
type Data struct {
	Title   string
	Flashes []session.Flash
	Session *session.Session

	Documents []dto.Document
	Summary   string
	Notes     []string
	ShowNotes bool
}

type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() *Renderer {
	funcs := template.FuncMap{
		"derefBool": func(b *bool) bool { return b != nil && *b },
		"inc":       func(i int) int { return i + 1 },
	}
	return &Renderer{
		tmpl: template.Must(template.New("pages").Funcs(funcs).ParseFS(templateFS, "templates/*.html")),
	}
}

// Render executes a named page template as a full view refresh.
func (r *Renderer) Render(ctx *fiber.Ctx, name string, data Data) error {
	if data.Session != nil && data.Flashes == nil {
		data.Flashes = data.Session.PopFlashes()
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}
	ctx.Type("html", "utf-8")
	return ctx.Send(buf.Bytes())
}
