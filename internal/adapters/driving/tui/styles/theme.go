// Package styles holds the lipgloss styles shared by the TUI views.
package styles

import "github.com/charmbracelet/lipgloss"

// Palette colours adapt to light and dark terminal backgrounds.
type Palette struct {
	Accent  lipgloss.AdaptiveColor
	Label   lipgloss.AdaptiveColor
	Text    lipgloss.AdaptiveColor
	Dim     lipgloss.AdaptiveColor
	Failure lipgloss.AdaptiveColor
	Rule    lipgloss.AdaptiveColor
}

// IndexPalette uses the package index's blue and yellow.
var IndexPalette = Palette{
	Accent:  lipgloss.AdaptiveColor{Light: "#2B5B84", Dark: "#3775A9"},
	Label:   lipgloss.AdaptiveColor{Light: "#B58900", Dark: "#FFD43B"},
	Text:    lipgloss.AdaptiveColor{Light: "#1F2328", Dark: "#E6EDF3"},
	Dim:     lipgloss.AdaptiveColor{Light: "#656D76", Dark: "#7D8590"},
	Failure: lipgloss.AdaptiveColor{Light: "#CF222E", Dark: "#F85149"},
	Rule:    lipgloss.AdaptiveColor{Light: "#D0D7DE", Dark: "#30363D"},
}

// Styles is the set of styles a view renders with.
type Styles struct {
	Title      lipgloss.Style
	Heading    lipgloss.Style // document section labels
	Normal     lipgloss.Style
	Muted      lipgloss.Style
	Selected   lipgloss.Style // list cursor row
	Code       lipgloss.Style // example usage block
	Error      lipgloss.Style
	InputField lipgloss.Style
	Help       lipgloss.Style
}

// New derives Styles from p.
func New(p Palette) *Styles {
	text := lipgloss.NewStyle().Foreground(p.Text)
	dim := lipgloss.NewStyle().Foreground(p.Dim)

	return &Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		Heading:  lipgloss.NewStyle().Bold(true).Foreground(p.Label),
		Normal:   text,
		Muted:    dim,
		Selected: text.Bold(true).Background(p.Accent),
		Code: text.
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(p.Rule).
			PaddingLeft(1),
		Error:      lipgloss.NewStyle().Foreground(p.Failure),
		InputField: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Rule).Padding(0, 1),
		Help:       dim,
	}
}

// DefaultStyles returns New(IndexPalette).
func DefaultStyles() *Styles {
	return New(IndexPalette)
}
