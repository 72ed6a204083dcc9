// Package docview provides the package document view for the TUI.
package docview

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/pkgdocs/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/pkgdocs/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pkgdocs/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pkgdocs/internal/core/domain"
	"github.com/custodia-labs/pkgdocs/internal/core/ports/driving"
)

// View shows one package document, resolving it through the docs service.
type View struct {
	styles *styles.Styles
	keys   *keymap.KeyMap
	docs   driving.DocsService
	ctx    context.Context

	pkg          string
	document     *domain.PackageDocument
	lines        []string
	scrollOffset int
	loading      bool
	err          error

	width  int
	height int
}

// NewView creates a new document view.
func NewView(s *styles.Styles, keys *keymap.KeyMap, docs driving.DocsService) *View {
	return &View{
		styles: s,
		keys:   keys,
		docs:   docs,
		ctx:    context.Background(),
	}
}

// WithContext sets the context used for resolution.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Load resets the view and returns a command resolving the package.
// Resolution may fetch and generate the document, so it runs off the
// update loop.
func (v *View) Load(pkg string) tea.Cmd {
	v.pkg = pkg
	v.document = nil
	v.lines = nil
	v.scrollOffset = 0
	v.err = nil
	v.loading = true

	docs, ctx := v.docs, v.ctx
	return func() tea.Msg {
		doc, err := docs.GetPackageDocs(ctx, pkg)
		return messages.DocumentLoaded{Package: pkg, Document: doc, Err: err}
	}
}

// Update handles messages for the document view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.DocumentLoaded:
		if msg.Package != v.pkg {
			return v, nil
		}
		v.loading = false
		v.err = msg.Err
		v.document = msg.Document
		v.layout()
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Up):
		if v.scrollOffset > 0 {
			v.scrollOffset--
		}
	case key.Matches(msg, v.keys.Down):
		if v.scrollOffset < v.maxScrollOffset() {
			v.scrollOffset++
		}
	case key.Matches(msg, v.keys.PageUp):
		v.scrollOffset = max(v.scrollOffset-v.visibleLines(), 0)
	case key.Matches(msg, v.keys.PageDown):
		v.scrollOffset = min(v.scrollOffset+v.visibleLines(), v.maxScrollOffset())
	case key.Matches(msg, v.keys.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewPackages}
		}
	}
	return v, nil
}

// layout renders the document into wrapped lines.
func (v *View) layout() {
	if v.document == nil {
		v.lines = nil
		return
	}
	width := v.width - 4
	if width < 20 {
		width = 20
	}
	v.lines = strings.Split(Render(v.styles, v.document, width), "\n")
	v.scrollOffset = min(v.scrollOffset, v.maxScrollOffset())
}

// Render formats a document as styled text wrapped to width.
func Render(s *styles.Styles, doc *domain.PackageDocument, width int) string {
	wrap := s.Normal.Width(width)
	var b strings.Builder

	section := func(heading, body string) {
		b.WriteString(s.Heading.Render(heading))
		b.WriteString("\n")
		b.WriteString(wrap.Render(body))
		b.WriteString("\n\n")
	}

	section("Version", doc.Version)
	section("Installation", doc.Installation)
	section("Description", doc.Description)

	b.WriteString(s.Heading.Render("Example usage"))
	b.WriteString("\n")
	b.WriteString(s.Code.Render(doc.ExampleUsage))
	b.WriteString("\n\n")

	b.WriteString(s.Heading.Render("Key variables"))
	b.WriteString("\n")
	if len(doc.KeyVariables) == 0 {
		b.WriteString(s.Muted.Render("(none)"))
	}
	for i, kv := range doc.KeyVariables {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(s.Title.Render(kv.Name))
		b.WriteString("\n")
		b.WriteString(wrap.PaddingLeft(2).Render(kv.Description))
	}

	return b.String()
}

// visibleLines returns the number of lines that can be displayed.
func (v *View) visibleLines() int {
	// Reserve lines for title, separator and help.
	return max(v.height-6, 1)
}

// maxScrollOffset returns the maximum scroll offset.
func (v *View) maxScrollOffset() int {
	return max(len(v.lines)-v.visibleLines(), 0)
}

// View renders the document view.
func (v *View) View() string {
	var b strings.Builder

	title := v.pkg
	if v.document != nil && v.document.Name != "" {
		title = v.document.Name
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", min(max(v.width-4, 1), 60)))
	b.WriteString("\n\n")

	help := v.styles.Help.Render(keymap.HelpLine(v.keys.DocumentHelp()))

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Resolving " + v.pkg + "... (first lookups fetch and summarise the listing page)"))
		b.WriteString("\n\n")
		b.WriteString(help)
		return b.String()
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n\n")
		b.WriteString(help)
		return b.String()
	}

	visible := v.visibleLines()
	for i := v.scrollOffset; i < len(v.lines) && i < v.scrollOffset+visible; i++ {
		b.WriteString(v.lines[i])
		b.WriteString("\n")
	}

	if len(v.lines) > visible {
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  Line %d-%d of %d",
			v.scrollOffset+1, min(v.scrollOffset+visible, len(v.lines)), len(v.lines))))
	}

	b.WriteString("\n\n")
	b.WriteString(help)
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.layout()
}

// Document returns the loaded document.
func (v *View) Document() *domain.PackageDocument {
	return v.document
}

// Loading reports whether resolution is in progress.
func (v *View) Loading() bool {
	return v.loading
}

// ScrollOffset returns the first visible line.
func (v *View) ScrollOffset() int {
	return v.scrollOffset
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
