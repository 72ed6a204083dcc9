package tui

import "errors"

// ErrMissingDocsService means Ports.Docs was nil.
var ErrMissingDocsService = errors.New("tui: no docs service")
