package domain

import (
	"fmt"
	"regexp"
)

// DescriptionNotFound is the placeholder used when a listing page has no
// description block.
const DescriptionNotFound = "Description not found."

// maxPackageNameLength bounds package names; it matches npm's limit, which is
// the most generous of the common package indexes.
const maxPackageNameLength = 214

// packageNamePattern is the allow-list for package identifiers.
var packageNamePattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// PackageDocument is the structured description of a package produced by the
// LLM from its listing page. Once stored it is treated as authoritative for
// its package name and is never refreshed in place.
type PackageDocument struct {
	// Name is the display name of the package.
	Name string `json:"name" yaml:"name"`

	// Version is the version reported by the model's reading of the page.
	// It is not checked against the index and may be stale.
	Version string `json:"version" yaml:"version"`

	// Installation is a one-line install command.
	Installation string `json:"installation" yaml:"installation"`

	// Description is prose describing the package.
	Description string `json:"description" yaml:"description"`

	// ExampleUsage is a free-form code snippet.
	ExampleUsage string `json:"example_usage" yaml:"example_usage"`

	// KeyVariables lists notable variables in the order the model gave them.
	KeyVariables []KeyVariable `json:"key_variables" yaml:"key_variables"`
}

// KeyVariable is a single entry of PackageDocument.KeyVariables.
type KeyVariable struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// ValidatePackageName checks a package identifier against the allow-list
// before it is used as a file name or URL path segment.
func ValidatePackageName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: name is empty", ErrInvalidPackageName)
	case name == "." || name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidPackageName, name)
	case len(name) > maxPackageNameLength:
		return fmt.Errorf("%w: longer than %d characters", ErrInvalidPackageName, maxPackageNameLength)
	case !packageNamePattern.MatchString(name):
		return fmt.Errorf("%w: %q may only contain letters, digits, '.', '-' and '_'", ErrInvalidPackageName, name)
	}
	return nil
}
