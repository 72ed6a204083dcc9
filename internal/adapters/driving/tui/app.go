package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/pkgdocs/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/pkgdocs/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pkgdocs/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pkgdocs/internal/adapters/driving/tui/views/docview"
	"github.com/custodia-labs/pkgdocs/internal/adapters/driving/tui/views/packages"
)

// App is the package browser following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keys   *keymap.KeyMap

	packagesView *packages.View
	docView      *docview.View

	currentView messages.ViewType

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	keys := keymap.DefaultKeyMap()

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		keys:         keys,
		packagesView: packages.NewView(s, keys, ports.Docs),
		docView:      docview.NewView(s, keys, ports.Docs),
		currentView:  messages.ViewPackages,
	}, nil
}

// WithContext sets the context for service calls.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.packagesView.WithContext(ctx)
	a.docView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("pkgdocs"),
		a.packagesView.Init(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
		if a.currentView == messages.ViewPackages {
			if !a.packagesView.InputActive() && key.Matches(msg, a.keys.Quit) {
				return a, tea.Quit
			}
			a.packagesView, cmd = a.packagesView.Update(msg)
			return a, cmd
		}
		a.docView, cmd = a.docView.Update(msg)
		return a, cmd

	case messages.PackageSelected:
		a.currentView = messages.ViewDocument
		return a, a.docView.Load(msg.Name)

	case messages.ViewChanged:
		a.currentView = msg.View
		if msg.View == messages.ViewPackages {
			// A lookup may have generated a new document.
			return a, a.packagesView.Refresh()
		}
		return a, nil

	case messages.PackagesLoaded:
		a.packagesView, cmd = a.packagesView.Update(msg)
		return a, cmd

	case messages.DocumentLoaded:
		a.docView, cmd = a.docView.Update(msg)
		return a, cmd
	}

	return a, nil
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}
	if a.currentView == messages.ViewDocument {
		return a.docView.View()
	}
	return a.packagesView.View()
}

// Run starts the TUI and blocks until it exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	a.WithContext(ctx)
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Ready returns whether the app has received its dimensions.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.packagesView.SetDimensions(width, height)
	a.docView.SetDimensions(width, height)
}
