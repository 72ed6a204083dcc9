// Package input provides text input components for the TUI.
package input

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/pkgdocs/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pkgdocs/internal/core/domain"
)

// maxNameLength matches the longest accepted package name.
const maxNameLength = 214

// PackageInput wraps a bubbles textinput for entering a package name.
type PackageInput struct {
	textinput textinput.Model
	styles    *styles.Styles
}

// NewPackageInput creates a new package name input.
func NewPackageInput(s *styles.Styles) *PackageInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "package name, e.g. requests"
	ti.CharLimit = maxNameLength
	ti.Width = 40

	return &PackageInput{
		textinput: ti,
		styles:    s,
	}
}

// Update handles input messages.
func (p *PackageInput) Update(msg tea.Msg) (*PackageInput, tea.Cmd) {
	var cmd tea.Cmd
	p.textinput, cmd = p.textinput.Update(msg)
	return p, cmd
}

// View renders the input.
func (p *PackageInput) View() string {
	label := p.styles.Title.Render("Package: ")
	field := p.styles.InputField.Render(p.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

// Value returns the trimmed input value.
func (p *PackageInput) Value() string {
	return strings.TrimSpace(p.textinput.Value())
}

// SetValue sets the input value.
func (p *PackageInput) SetValue(value string) {
	p.textinput.SetValue(value)
}

// Validate checks the current value as a package name.
func (p *PackageInput) Validate() error {
	return domain.ValidatePackageName(p.Value())
}

// Focus sets focus on the input.
func (p *PackageInput) Focus() tea.Cmd {
	return p.textinput.Focus()
}

// Blur removes focus from the input.
func (p *PackageInput) Blur() {
	p.textinput.Blur()
}

// Focused returns whether the input is focused.
func (p *PackageInput) Focused() bool {
	return p.textinput.Focused()
}

// SetWidth sets the width of the input.
func (p *PackageInput) SetWidth(width int) {
	inputWidth := width - 16
	if inputWidth < 20 {
		inputWidth = 20
	}
	p.textinput.Width = inputWidth
}

// Reset clears the input.
func (p *PackageInput) Reset() {
	p.textinput.Reset()
}
