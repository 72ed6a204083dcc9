// Package mcp provides an MCP (Model Context Protocol) server adapter for pkgdocs.
// It lets AI assistants fetch package documentation and code-generation
// prompts as tools.
package mcp

import "errors"

// ErrMissingDocsService is returned when the docs service is not provided.
var ErrMissingDocsService = errors.New("mcp: docs service is required")

// ErrMissingPromptService is returned when the prompt service is not provided.
var ErrMissingPromptService = errors.New("mcp: prompt service is required")
