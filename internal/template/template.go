package template

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"strings"

	humanize "github.com/dustin/go-humanize"
	"github.com/microcosm-cc/bluemonday"
	blackfriday "gopkg.in/russross/blackfriday.v2"
)

// Template wraps the parsed view set plus the helpers the views rely on.
type Template struct {
	templates *template.Template
}

func NewTemplate(views fs.FS) (*Template, error) {
	funcMap := template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
		"mul": func(a, b int) int { return a * b },
		"last": func(i, total int) bool {
			return i == total-1
		},
		"humantime":   humanize.Time,
		"humannumber": humanize.Comma,
		"stringtitle": strings.Title,
		"lower":       strings.ToLower,
		"jsescape":    template.JSEscapeString,
	}
	tmpl, err := template.New("").Funcs(funcMap).ParseFS(views, "static/views/*.html")
	if err != nil {
		return nil, fmt.Errorf("unable to parse views: %w", err)
	}
	return &Template{templates: tmpl}, nil
}

func (t *Template) Render(w io.Writer, name string, data interface{}) error {
	return t.templates.ExecuteTemplate(w, name, data)
}

func (t *Template) RenderToHTTPResponse(w http.ResponseWriter, statusCode int, name string, data interface{}) error {
	var buf bytes.Buffer
	if err := t.Render(&buf, name, data); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, err := w.Write(buf.Bytes())
	return err
}

// MarkdownToHTML renders untrusted markdown, sanitised for embedding.
func (t *Template) MarkdownToHTML(s string) template.HTML {
	rendered := blackfriday.Run([]byte(s))
	return template.HTML(bluemonday.UGCPolicy().SanitizeBytes(rendered))
}

func (t *Template) StringToHTML(s string) template.HTML {
	return template.HTML(s)
}

func (t *Template) JSEscapeString(s string) string {
	return template.JSEscapeString(s)
}
