// Package site writes the portfolio as plain files for a static host.
package site

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/kaylaburzese/portfolio/internal/content"
	"github.com/kaylaburzese/portfolio/internal/view"
)

// Exporter renders the page once and copies the stylesheet next to it.
type Exporter struct {
	OutputDir string
	Theme     view.Theme
}

func NewExporter(outputDir string, theme view.Theme) *Exporter {
	return &Exporter{OutputDir: outputDir, Theme: theme}
}

// Export writes index.html and static/. Returns the files written, relative
// to OutputDir.
func (e *Exporter) Export(portfolio *content.Portfolio) ([]string, error) {
	if err := os.MkdirAll(e.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}

	index := filepath.Join(e.OutputDir, "index.html")
	f, err := os.Create(index)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", index, err)
	}
	page := view.NewController(e.Theme).Page(portfolio, true)
	page.Static = true
	if err := view.Render(f, page, false); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("closing %s: %w", index, err)
	}

	written := []string{"index.html"}
	static := view.StaticFS()
	err = fs.WalkDir(static, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(static, path)
		if err != nil {
			return err
		}
		dst := filepath.Join(e.OutputDir, "static", filepath.FromSlash(path))
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(dst, data, 0o644); err != nil {
			return err
		}
		written = append(written, filepath.ToSlash(filepath.Join("static", path)))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("copying static assets: %w", err)
	}
	return written, nil
}
