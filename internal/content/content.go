package content

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"
)

//go:embed portfolio.yaml
var defaultYAML []byte

// Highlight is one of the short cards under the About text.
type Highlight struct {
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
}

type Skill struct {
	Label       string `yaml:"label"`
	Description string `yaml:"description"`
}

type Project struct {
	Title       string `yaml:"title"`
	Year        string `yaml:"year"`
	Description string `yaml:"description"`
	SourceURL   string `yaml:"source_url"`

	DescriptionHTML template.HTML `yaml:"-"`
}

// LinkKind identifies an outbound contact destination.
type LinkKind string

const (
	LinkEmail    LinkKind = "email"
	LinkGitHub   LinkKind = "github"
	LinkLinkedIn LinkKind = "linkedin"
)

type Link struct {
	Kind  LinkKind `yaml:"kind"`
	Label string   `yaml:"label"`
	Href  string   `yaml:"href"`
}

// External reports whether the link should open in a new browsing context.
// mailto links go to the visitor's own mail handler instead.
func (l Link) External() bool {
	return strings.HasPrefix(l.Href, "http://") || strings.HasPrefix(l.Href, "https://")
}

// Portfolio is all of the copy shown on the page.
type Portfolio struct {
	Owner          string      `yaml:"owner"`
	SiteTitle      string      `yaml:"site_title"`
	Tagline        string      `yaml:"tagline"`
	Greeting       string      `yaml:"greeting"`
	Welcome        string      `yaml:"welcome"`
	Intro          string      `yaml:"intro"`
	About          string      `yaml:"about"`
	Highlights     []Highlight `yaml:"highlights"`
	SkillsIntro    string      `yaml:"skills_intro"`
	Skills         []Skill     `yaml:"skills"`
	Projects       []Project   `yaml:"projects"`
	ContactHeading string      `yaml:"contact_heading"`
	Contact        []Link      `yaml:"contact"`
	Footer         string      `yaml:"footer"`

	AboutHTML template.HTML `yaml:"-"`
}

// Default returns the built-in portfolio copy.
func Default() (*Portfolio, error) {
	return Parse(defaultYAML)
}

// Load reads portfolio copy from path, or the built-in copy when path is empty.
func Load(path string) (*Portfolio, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading content %s: %w", path, err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("content %s: %w", path, err)
	}
	return p, nil
}

// Parse decodes YAML copy, validates it and renders its markdown fields.
func Parse(data []byte) (*Portfolio, error) {
	var p Portfolio
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing content: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := p.render(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks the fields the page cannot render without.
func (p *Portfolio) Validate() error {
	if strings.TrimSpace(p.Owner) == "" {
		return fmt.Errorf("owner is required")
	}
	for i, l := range p.Contact {
		if strings.TrimSpace(l.Href) == "" {
			return fmt.Errorf("contact link %d (%s) has no href", i, l.Label)
		}
		if strings.TrimSpace(l.Label) == "" {
			return fmt.Errorf("contact link %d (%s) has no label", i, l.Href)
		}
	}
	return nil
}

// LinkFor returns the first contact link of the given kind.
func (p *Portfolio) LinkFor(kind LinkKind) (Link, bool) {
	for _, l := range p.Contact {
		if l.Kind == kind {
			return l, true
		}
	}
	return Link{}, false
}

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

func (p *Portfolio) render() error {
	about, err := renderMarkdown(p.About)
	if err != nil {
		return fmt.Errorf("rendering about: %w", err)
	}
	p.AboutHTML = about

	for i := range p.Projects {
		desc, err := renderMarkdown(p.Projects[i].Description)
		if err != nil {
			return fmt.Errorf("rendering project %q: %w", p.Projects[i].Title, err)
		}
		p.Projects[i].DescriptionHTML = desc
	}
	return nil
}

// renderMarkdown converts trusted copy to HTML. Raw HTML in the source is
// dropped by goldmark's default renderer.
func renderMarkdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
