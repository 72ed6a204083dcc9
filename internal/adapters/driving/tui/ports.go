// Package tui provides an interactive terminal browser for cached package
// documentation. It implements a driving adapter following hexagonal
// architecture principles.
package tui

import (
	"github.com/custodia-labs/pkgdocs/internal/core/ports/driving"
)

// Ports aggregates the driving ports required by the TUI.
type Ports struct {
	// Docs lists and resolves package documents.
	Docs driving.DocsService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Docs == nil {
		return ErrMissingDocsService
	}
	return nil
}
