package view

import (
	"bytes"
	"io/fs"
	"regexp"
	"strings"
	"testing"

	"github.com/kaylaburzese/portfolio/internal/content"
)

func TestToggleParity(t *testing.T) {
	c := NewController(DefaultTheme)
	for n := 1; n <= 9; n++ {
		got := c.ToggleTheme()
		want := DefaultTheme
		if n%2 == 1 {
			want = DefaultTheme.Toggle()
		}
		if got != want || c.Theme() != want {
			t.Fatalf("after %d toggles: got %v, want %v", n, got, want)
		}
	}
}

func TestDefaultThemeIsDark(t *testing.T) {
	if !DefaultTheme.IsDark() {
		t.Fatal("expected dark default")
	}
	if NewController(DefaultTheme).Theme().String() != "dark" {
		t.Fatal("expected controller to start dark")
	}
}

func TestParseTheme(t *testing.T) {
	tests := []struct {
		in   string
		want Theme
	}{
		{"dark", ThemeDark},
		{"light", ThemeLight},
		{"", DefaultTheme},
		{"purple", DefaultTheme},
		{"DARK", DefaultTheme},
	}
	for _, tt := range tests {
		if got := ParseTheme(tt.in); got != tt.want {
			t.Errorf("ParseTheme(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPaletteClassesFollowTheme(t *testing.T) {
	for _, theme := range []Theme{ThemeDark, ThemeLight} {
		p := PaletteFor(theme)
		other := theme.Toggle().String()
		for _, s := range Surfaces() {
			class := p.Class(s)
			if !strings.HasSuffix(class, "--"+theme.String()) {
				t.Errorf("%s: class %q does not belong to theme", theme, class)
			}
			if strings.Contains(class, other) {
				t.Errorf("%s: class %q mixes in %s", theme, class, other)
			}
		}
	}
	if got := PaletteFor(ThemeDark).Class("sidebar"); got != "" {
		t.Errorf("unknown surface got class %q", got)
	}
}

func TestAnchors(t *testing.T) {
	want := []string{"home", "about", "skills", "projects", "contact"}
	got := Anchors()
	if len(got) != len(want) {
		t.Fatalf("expected %d anchors, got %d", len(want), len(got))
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("anchor %d = %q, want %q", i, got[i].Name, name)
		}
	}

	got[0].Name = "changed"
	if Anchors()[0].Name != "home" {
		t.Error("Anchors exposed internal state")
	}
}

func TestScrollTarget(t *testing.T) {
	c := NewController(DefaultTheme)
	for _, a := range Anchors() {
		got, ok := c.ScrollTarget(a.Name)
		if !ok || got.Name != a.Name {
			t.Errorf("ScrollTarget(%q) = %v, %v", a.Name, got, ok)
		}
		if href := c.ScrollHref(a.Name); href != "#"+a.Name {
			t.Errorf("ScrollHref(%q) = %q", a.Name, href)
		}
	}

	if _, ok := c.ScrollTarget("blog"); ok {
		t.Error("expected unknown section to be rejected")
	}
	if href := c.ScrollHref("blog"); href != "" {
		t.Errorf("expected empty href for unknown section, got %q", href)
	}
	if c.Theme() != DefaultTheme {
		t.Error("scroll lookup changed theme")
	}
}

func renderPage(t *testing.T, theme Theme, fragment bool) string {
	t.Helper()
	p, err := content.Default()
	if err != nil {
		t.Fatalf("content.Default: %v", err)
	}
	var buf bytes.Buffer
	if err := Render(&buf, NewController(theme).Page(p, true), fragment); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return buf.String()
}

var themedClass = regexp.MustCompile(`[a-z]+--(dark|light)\b`)

func TestRenderedSurfacesMatchTheme(t *testing.T) {
	for _, theme := range []Theme{ThemeDark, ThemeLight} {
		out := renderPage(t, theme, false)
		matches := themedClass.FindAllStringSubmatch(out, -1)
		if len(matches) == 0 {
			t.Fatalf("%s: no themed classes rendered", theme)
		}
		for _, m := range matches {
			if m[1] != theme.String() {
				t.Errorf("%s page contains %q", theme, m[0])
			}
		}
		if !strings.Contains(out, `data-theme="`+theme.String()+`"`) {
			t.Errorf("%s: missing data-theme", theme)
		}
		if !strings.Contains(out, theme.ToggleLabel()) {
			t.Errorf("%s: missing toggle label %q", theme, theme.ToggleLabel())
		}
	}
}

func TestRenderedAnchorsAreUnique(t *testing.T) {
	out := renderPage(t, DefaultTheme, false)
	for _, a := range Anchors() {
		if n := strings.Count(out, `id="`+a.Name+`"`); n != 1 {
			t.Errorf("anchor %q rendered %d times", a.Name, n)
		}
	}
	if !strings.Contains(out, `href="#contact"`) {
		t.Error("expected a control targeting #contact")
	}
}

func TestRenderedContactLinks(t *testing.T) {
	out := renderPage(t, DefaultTheme, false)
	for _, href := range []string{
		`href="mailto:kaylaburzese@gmail.com"`,
		`href="https://github.com/kaylaburzese"`,
		`href="https://www.linkedin.com/in/kaylaburzese/"`,
	} {
		if !strings.Contains(out, href) {
			t.Errorf("missing %s", href)
		}
	}
	if strings.Contains(out, `href="mailto:kaylaburzese@gmail.com" target="_blank"`) {
		t.Error("mail link should not open a new browsing context")
	}
}

func TestRenderFragment(t *testing.T) {
	out := renderPage(t, ThemeLight, true)
	if strings.Contains(out, "<html") {
		t.Error("fragment should not contain the document shell")
	}
	if !strings.HasPrefix(strings.TrimSpace(out), `<div id="page"`) {
		t.Errorf("fragment should start with #page, got %.40q", out)
	}
}

func TestRenderSkipsAnimationWhenAsked(t *testing.T) {
	p, err := content.Default()
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := Render(&buf, NewController(DefaultTheme).Page(p, false), true); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "fade-up") {
		t.Error("expected no entrance animation classes")
	}
}

func TestStaticFSDefinesEverySurface(t *testing.T) {
	css, err := fs.ReadFile(StaticFS(), "site.css")
	if err != nil {
		t.Fatalf("reading site.css: %v", err)
	}
	for _, theme := range []Theme{ThemeDark, ThemeLight} {
		for _, s := range Surfaces() {
			if !bytes.Contains(css, []byte("."+PaletteFor(theme).Class(s)+" ")) {
				t.Errorf("site.css has no rule for %s", PaletteFor(theme).Class(s))
			}
		}
	}
}

func TestSectionsAlignToViewportTop(t *testing.T) {
	css, err := fs.ReadFile(StaticFS(), "site.css")
	if err != nil {
		t.Fatalf("reading site.css: %v", err)
	}
	if bytes.Contains(css, []byte("scroll-margin")) {
		t.Error("sections should scroll flush to the top of the viewport")
	}
	if !bytes.Contains(css, []byte("scroll-behavior: smooth")) {
		t.Error("expected smooth scrolling")
	}
}

func TestControllerOwnsAnchors(t *testing.T) {
	c := &Controller{
		theme:   DefaultTheme,
		anchors: map[string]Anchor{"contact": {Name: "contact", Label: "Contact", InNav: true}},
		order:   []Anchor{{Name: "contact", Label: "Contact", InNav: true}},
	}
	if _, ok := c.ScrollTarget("about"); ok {
		t.Error("expected lookup to use the controller's own anchor set")
	}
	if href := c.ScrollHref("contact"); href != "#contact" {
		t.Errorf("ScrollHref(contact) = %q", href)
	}
	if nav := c.Page(nil, false).Nav(); len(nav) != 1 || nav[0].Name != "contact" {
		t.Errorf("unexpected nav %v", nav)
	}
}

func TestStaticPageTogglesInBrowser(t *testing.T) {
	p, err := content.Default()
	if err != nil {
		t.Fatal(err)
	}
	page := NewController(DefaultTheme).Page(p, true)
	page.Static = true

	var buf bytes.Buffer
	if err := Render(&buf, page, false); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	for _, unwanted := range []string{`action="/theme"`, "hx-post", "htmx.org"} {
		if strings.Contains(out, unwanted) {
			t.Errorf("static page contains %s", unwanted)
		}
	}
	if !strings.Contains(out, "data-theme-toggle") {
		t.Error("expected a client-side theme toggle")
	}
	for _, m := range themedClass.FindAllStringSubmatch(out, -1) {
		if m[1] != "dark" {
			t.Errorf("static dark page contains %q", m[0])
		}
	}
}
