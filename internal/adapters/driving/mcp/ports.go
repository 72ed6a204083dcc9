package mcp

import (
	"github.com/custodia-labs/pkgdocs/internal/core/ports/driving"
)

// Ports are the services the MCP tools call. Both are required.
type Ports struct {
	Docs   driving.DocsService
	Prompt driving.PromptService
}

// Validate reports the first missing service.
func (p *Ports) Validate() error {
	switch {
	case p == nil || p.Docs == nil:
		return ErrMissingDocsService
	case p.Prompt == nil:
		return ErrMissingPromptService
	}
	return nil
}
