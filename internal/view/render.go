package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const (
	// DocumentTemplate renders the complete HTML document.
	DocumentTemplate = "page.html"
	// FragmentTemplate renders only the #page element swapped in by HTMX.
	FragmentTemplate = "body.html"
)

// Templates parses the page templates. Callers may parse further templates
// into the returned set.
func Templates() (*template.Template, error) {
	tmpl, err := template.New("").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing page templates: %w", err)
	}
	return tmpl, nil
}

// StaticFS holds the stylesheet served under /static.
func StaticFS() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Render writes either the whole document or just the #page fragment.
func Render(w io.Writer, page Page, fragment bool) error {
	tmpl, err := Templates()
	if err != nil {
		return err
	}
	name := DocumentTemplate
	if fragment {
		name = FragmentTemplate
	}
	if err := tmpl.ExecuteTemplate(w, name, page); err != nil {
		return fmt.Errorf("rendering %s: %w", name, err)
	}
	return nil
}
