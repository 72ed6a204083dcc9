// Package packages provides the cached package list view for the TUI.
package packages

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/pkgdocs/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/pkgdocs/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/pkgdocs/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pkgdocs/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pkgdocs/internal/core/ports/driving"
)

// View lists cached packages and accepts a package name to look up.
type View struct {
	styles *styles.Styles
	keys   *keymap.KeyMap
	docs   driving.DocsService
	ctx    context.Context

	names  []string
	cursor int
	input  *input.PackageInput
	err    error

	width  int
	height int
}

// NewView creates a new package list view.
func NewView(s *styles.Styles, keys *keymap.KeyMap, docs driving.DocsService) *View {
	return &View{
		styles: s,
		keys:   keys,
		docs:   docs,
		ctx:    context.Background(),
		input:  input.NewPackageInput(s),
	}
}

// WithContext sets the context used for store calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the package list.
func (v *View) Init() tea.Cmd {
	return v.Refresh()
}

// Refresh returns a command that reloads the package list.
func (v *View) Refresh() tea.Cmd {
	docs, ctx := v.docs, v.ctx
	return func() tea.Msg {
		names, err := docs.ListCached(ctx)
		return messages.PackagesLoaded{Names: names, Err: err}
	}
}

// Update handles messages for the package list view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.PackagesLoaded:
		v.err = msg.Err
		v.names = msg.Names
		if v.cursor >= len(v.names) {
			v.cursor = max(len(v.names)-1, 0)
		}
		return v, nil

	case tea.KeyMsg:
		if v.input.Focused() {
			return v.handleInputKey(msg)
		}
		return v.handleListKey(msg)
	}

	return v, nil
}

func (v *View) handleInputKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.input.Blur()
		v.input.Reset()
		v.err = nil
		return v, nil
	case tea.KeyEnter:
		if err := v.input.Validate(); err != nil {
			v.err = err
			return v, nil
		}
		name := v.input.Value()
		v.input.Blur()
		v.input.Reset()
		v.err = nil
		return v, selectPackage(name)
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleListKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
		}
	case key.Matches(msg, v.keys.Down):
		if v.cursor < len(v.names)-1 {
			v.cursor++
		}
	case key.Matches(msg, v.keys.Select):
		if len(v.names) > 0 {
			return v, selectPackage(v.names[v.cursor])
		}
	case key.Matches(msg, v.keys.Lookup):
		return v, v.input.Focus()
	case key.Matches(msg, v.keys.Refresh):
		return v, v.Refresh()
	}
	return v, nil
}

func selectPackage(name string) tea.Cmd {
	return func() tea.Msg {
		return messages.PackageSelected{Name: name}
	}
}

// View renders the package list.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Cached packages"))
	b.WriteString("\n\n")

	if len(v.names) == 0 {
		b.WriteString(v.styles.Muted.Render("No cached packages. Press / to look one up."))
		b.WriteString("\n")
	}

	start, end := v.window()
	for i := start; i < end; i++ {
		line := fmt.Sprintf("  %s", v.names[i])
		if i == v.cursor {
			b.WriteString(v.styles.Selected.Render(line))
		} else {
			b.WriteString(v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if v.input.Focused() {
		b.WriteString(v.input.View())
		b.WriteString("\n")
	}
	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render(keymap.HelpLine(v.keys.ListHelp())))
	return b.String()
}

// window returns the visible slice of names keeping the cursor in view.
func (v *View) window() (start, end int) {
	visible := v.height - 8
	if visible < 1 || visible >= len(v.names) {
		return 0, len(v.names)
	}
	start = v.cursor - visible + 1
	if start < 0 {
		start = 0
	}
	return start, start + visible
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.input.SetWidth(width)
}

// InputActive reports whether the package name input has focus.
func (v *View) InputActive() bool {
	return v.input.Focused()
}

// Names returns the loaded package names.
func (v *View) Names() []string {
	return v.names
}

// Cursor returns the selected index.
func (v *View) Cursor() int {
	return v.cursor
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
