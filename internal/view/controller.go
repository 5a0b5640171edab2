package view

import "github.com/kaylaburzese/portfolio/internal/content"

// Controller holds the transient state of one rendered page: the theme flag
// and the anchor set. It is built per request and not shared.
type Controller struct {
	theme   Theme
	anchors map[string]Anchor
	order   []Anchor
}

func NewController(theme Theme) *Controller {
	return &Controller{
		theme:   theme,
		anchors: anchorIndex,
		order:   anchors,
	}
}

func (c *Controller) Theme() Theme {
	return c.theme
}

// ToggleTheme flips the theme flag and returns the new value.
func (c *Controller) ToggleTheme() Theme {
	c.theme = c.theme.Toggle()
	return c.theme
}

// ScrollTarget resolves a section name. ok is false for unknown names and the
// caller is expected to do nothing in that case.
func (c *Controller) ScrollTarget(name string) (Anchor, bool) {
	a, ok := c.anchors[name]
	return a, ok
}

// ScrollHref is the fragment link for a known section, or "" otherwise.
func (c *Controller) ScrollHref(name string) string {
	a, ok := c.ScrollTarget(name)
	if !ok {
		return ""
	}
	return a.Href()
}

// Page builds the view model for the templates from the current state.
// animate controls whether entrance animations are emitted; re-renders after
// a toggle skip them.
func (c *Controller) Page(p *content.Portfolio, animate bool) Page {
	return Page{
		Theme:   c.theme,
		Palette: PaletteFor(c.theme),
		Content: p,
		Animate: animate,
		ctrl:    c,
	}
}

// Page is the data passed to the page templates. Every themed class is read
// through Class so that the rendered output follows the single theme flag.
type Page struct {
	Theme   Theme
	Palette Palette
	Content *content.Portfolio
	Animate bool
	// Static pages have no server behind them, so the theme toggle switches
	// classes in the browser instead of posting to /theme.
	Static bool

	ctrl *Controller
}

func (p Page) Class(s Surface) string {
	return p.Palette.Class(s)
}

func (p Page) ScrollHref(name string) string {
	return p.ctrl.ScrollHref(name)
}

// Nav returns the anchors shown in the top navigation bar.
func (p Page) Nav() []Anchor {
	var out []Anchor
	for _, a := range p.ctrl.order {
		if a.InNav {
			out = append(out, a)
		}
	}
	return out
}
