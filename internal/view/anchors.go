package view

// Anchor is a named region of the page that navigation can scroll to.
type Anchor struct {
	Name  string
	Label string
	InNav bool
}

// Href is the in-document fragment link for the anchor.
func (a Anchor) Href() string {
	return "#" + a.Name
}

// anchors is in document order and never modified after init.
var anchors = []Anchor{
	{Name: "home", Label: "Home"},
	{Name: "about", Label: "About", InNav: true},
	{Name: "skills", Label: "Skills", InNav: true},
	{Name: "projects", Label: "Projects", InNav: true},
	{Name: "contact", Label: "Contact", InNav: true},
}

var anchorIndex = func() map[string]Anchor {
	m := make(map[string]Anchor, len(anchors))
	for _, a := range anchors {
		m[a.Name] = a
	}
	return m
}()

// Anchors returns a copy of the anchor set in document order.
func Anchors() []Anchor {
	out := make([]Anchor, len(anchors))
	copy(out, anchors)
	return out
}

// LookupAnchor finds the anchor registered under name.
func LookupAnchor(name string) (Anchor, bool) {
	a, ok := anchorIndex[name]
	return a, ok
}
