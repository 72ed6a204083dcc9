package driven

import "context"

// PageFetcher retrieves a package's public listing page and flattens it into
// the text blob handed to the LLM.
type PageFetcher interface {
	// Fetch returns "Name: {title}\n\nDescription: {description}" for the
	// package. Transport failures and non-2xx responses return an error.
	Fetch(ctx context.Context, packageName string) (string, error)

	// PageURL returns the canonical listing URL for the package.
	PageURL(packageName string) string
}
