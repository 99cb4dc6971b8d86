package render

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/michaelscutari/dls/internal/entry"
	"github.com/michaelscutari/dls/internal/snapshot"
	"github.com/taigrr/colorhash"
)

// Styler decorates text cells. Implementations must not change the
// visible width of what they return.
type Styler interface {
	Name(r *snapshot.Record) string
	Owner(name string) string
	Group(name string) string
}

// Plain leaves every cell untouched.
type Plain struct{}

func (Plain) Name(r *snapshot.Record) string { return r.Name }
func (Plain) Owner(name string) string         { return name }
func (Plain) Group(name string) string         { return name }

var (
	colorPrimary   = lipgloss.Color("39")  // Blue
	colorHighlight = lipgloss.Color("212") // Pink
	colorSuccess   = lipgloss.Color("76")  // Green
	colorWarning   = lipgloss.Color("214") // Orange
	colorSecondary = lipgloss.Color("245") // Gray
)

// Color styles names by kind and gives every owner and group a stable
// colour derived from its name.
type Color struct {
	renderer *lipgloss.Renderer

	dirStyle     lipgloss.Style
	symlinkStyle lipgloss.Style
	execStyle    lipgloss.Style
	deviceStyle  lipgloss.Style
	specialStyle lipgloss.Style
}

// NewColor creates a colour styler. A nil renderer uses lipgloss's
// default, which drops colours when stdout is not a terminal.
func NewColor(r *lipgloss.Renderer) *Color {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &Color{
		renderer: r,
		dirStyle: r.NewStyle().
			Foreground(colorPrimary).
			Bold(true),
		symlinkStyle: r.NewStyle().
			Foreground(colorHighlight),
		execStyle: r.NewStyle().
			Foreground(colorSuccess),
		deviceStyle: r.NewStyle().
			Foreground(colorWarning),
		specialStyle: r.NewStyle().
			Foreground(colorSecondary),
	}
}

func (c *Color) Name(r *snapshot.Record) string {
	var style lipgloss.Style
	switch {
	case r.Kind == entry.KindDir:
		style = c.dirStyle
	case r.Kind == entry.KindSymlink:
		style = c.symlinkStyle
	case r.Kind.IsDevice():
		style = c.deviceStyle
	case r.Kind == entry.KindSocket || r.Kind == entry.KindFIFO:
		style = c.specialStyle
	case r.TypeChar == '*':
		style = c.execStyle
	default:
		return r.Name
	}
	return style.Render(r.Name)
}

func (c *Color) Owner(name string) string {
	return c.hashed(name)
}

func (c *Color) Group(name string) string {
	return c.hashed(name)
}

// hashed picks one of the 216 cube colours of the 256-colour palette.
func (c *Color) hashed(name string) string {
	h := colorhash.HashString(name) % 216
	if h < 0 {
		h = -h
	}
	return c.renderer.NewStyle().
		Foreground(lipgloss.Color(strconv.Itoa(16 + h))).
		Render(name)
}
