package view

// Theme selects one of the two page palettes.
type Theme bool

const (
	ThemeLight Theme = false
	ThemeDark  Theme = true

	// DefaultTheme is what every fresh page load starts with.
	DefaultTheme = ThemeDark
)

// ParseTheme maps "dark" and "light" to their themes. Anything else yields
// DefaultTheme so a malformed toggle request still lands on a valid state.
func ParseTheme(s string) Theme {
	switch s {
	case "light":
		return ThemeLight
	case "dark":
		return ThemeDark
	}
	return DefaultTheme
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	return !t
}

func (t Theme) IsDark() bool {
	return t == ThemeDark
}

func (t Theme) String() string {
	if t == ThemeDark {
		return "dark"
	}
	return "light"
}

// ToggleLabel is the caption of the control that switches away from t.
func (t Theme) ToggleLabel() string {
	if t == ThemeDark {
		return "☀️ Light"
	}
	return "🌙 Dark"
}

// Surface names a themed visual element of the page.
type Surface string

const (
	SurfacePage    Surface = "page"
	SurfaceNav     Surface = "nav"
	SurfaceBadge   Surface = "badge"
	SurfaceNavLink Surface = "navlink"
	SurfaceTitle   Surface = "title"
	SurfaceText    Surface = "text"
	SurfaceMuted   Surface = "muted"
	SurfaceCard    Surface = "card"
	SurfaceOutline Surface = "outline"
	SurfaceFooter  Surface = "footer"
)

var surfaces = []Surface{
	SurfacePage,
	SurfaceNav,
	SurfaceBadge,
	SurfaceNavLink,
	SurfaceTitle,
	SurfaceText,
	SurfaceMuted,
	SurfaceCard,
	SurfaceOutline,
	SurfaceFooter,
}

// Surfaces lists every themed surface.
func Surfaces() []Surface {
	out := make([]Surface, len(surfaces))
	copy(out, surfaces)
	return out
}

func (s Surface) valid() bool {
	for _, known := range surfaces {
		if s == known {
			return true
		}
	}
	return false
}

// Palette resolves surfaces to CSS classes for a single theme.
type Palette struct {
	theme Theme
}

func PaletteFor(t Theme) Palette {
	return Palette{theme: t}
}

func (p Palette) Theme() Theme {
	return p.theme
}

// Class returns the stylesheet class for s, e.g. "card--dark".
// Unknown surfaces get no class.
func (p Palette) Class(s Surface) string {
	if !s.valid() {
		return ""
	}
	return string(s) + "--" + p.theme.String()
}
