// Package messages defines Bubbletea message types for the TUI.
package messages

import (
	"github.com/custodia-labs/pkgdocs/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewPackages lists cached packages.
	ViewPackages ViewType = iota
	// ViewDocument shows one package document.
	ViewDocument
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewPackages:
		return "packages"
	case ViewDocument:
		return "document"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// PackagesLoaded carries the cached package names.
type PackagesLoaded struct {
	Names []string
	Err   error
}

// PackageSelected asks for a package document to be opened.
type PackageSelected struct {
	Name string
}

// DocumentLoaded carries a resolved document, or the resolution failure.
type DocumentLoaded struct {
	Package  string
	Document *domain.PackageDocument
	Err      error
}
