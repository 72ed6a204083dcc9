// Package pypi fetches package listing pages from a PyPI-compatible index
// and extracts the title and description used for document generation.
package pypi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sethvargo/go-retry"

	"github.com/custodia-labs/pkgdocs/internal/core/domain"
	"github.com/custodia-labs/pkgdocs/internal/core/ports/driven"
	"github.com/custodia-labs/pkgdocs/internal/logger"
)

// Ensure Fetcher implements the interface.
var _ driven.PageFetcher = (*Fetcher)(nil)

// Default configuration values.
const (
	DefaultBaseURL      = "https://pypi.org"
	DefaultTimeout      = 30 * time.Second
	DefaultRetryBackoff = 500 * time.Millisecond
	DefaultUserAgent    = "pkgdocs"
)

var (
	titlePattern       = regexp.MustCompile(`(?s)<h1 class="package-header__name">(.*?)</h1>`)
	descriptionPattern = regexp.MustCompile(`(?s)<div class="project-description">(.*?)</div>`)
)

// Config holds fetcher configuration.
type Config struct {
	// BaseURL is the index root (default: https://pypi.org).
	BaseURL string

	// Timeout bounds each HTTP request (default: 30s).
	Timeout time.Duration

	// MaxRetries is the number of retries after the first attempt for
	// transport errors, 429 and 5xx responses. Zero disables retrying.
	MaxRetries int

	// RetryBackoff is the initial exponential backoff (default: 500ms).
	RetryBackoff time.Duration

	// UserAgent is sent with every request.
	UserAgent string
}

// Fetcher retrieves listing pages over HTTP.
type Fetcher struct {
	client     *http.Client
	baseURL    string
	maxRetries int
	backoff    time.Duration
	userAgent  string
}

// NewFetcher creates a fetcher, filling in defaults for zero values.
func NewFetcher(cfg Config) *Fetcher {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RetryBackoff == 0 {
		cfg.RetryBackoff = DefaultRetryBackoff
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}

	return &Fetcher{
		client:     &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		maxRetries: cfg.MaxRetries,
		backoff:    cfg.RetryBackoff,
		userAgent:  cfg.UserAgent,
	}
}

// PageURL returns <base>/project/<name>/.
func (f *Fetcher) PageURL(packageName string) string {
	return fmt.Sprintf("%s/project/%s/", f.baseURL, packageName)
}

// Fetch downloads the listing page and returns
// "Name: {title}\n\nDescription: {description}".
func (f *Fetcher) Fetch(ctx context.Context, packageName string) (string, error) {
	url := f.PageURL(packageName)

	var page string
	attempt := 0
	backoff := retry.WithMaxRetries(uint64(f.maxRetries), retry.NewExponential(f.backoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		body, err := f.get(ctx, url)
		if err != nil {
			if isTransient(err) {
				logger.Debugw("page fetch failed", "url", url, "attempt", attempt, "error", err)
				return retry.RetryableError(err)
			}
			return err
		}
		page = body
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}

	return Extract(page, packageName), nil
}

// get performs one GET request.
func (f *Fetcher) get(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("%w: %w", driven.ErrTransient, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
			return "", fmt.Errorf("%w: status %d: %w", domain.ErrUpstreamStatus, resp.StatusCode, driven.ErrTransient)
		}
		return "", fmt.Errorf("%w: status %d", domain.ErrUpstreamStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w: %w", driven.ErrTransient, err)
	}
	return string(body), nil
}

func isTransient(err error) bool {
	return errors.Is(err, driven.ErrTransient)
}

// Extract pulls the title and description out of a listing page. The title
// falls back to packageName and the description to domain.DescriptionNotFound.
func Extract(page, packageName string) string {
	title := packageName
	if m := titlePattern.FindStringSubmatch(page); m != nil {
		title = strings.TrimSpace(m[1])
	}

	description := domain.DescriptionNotFound
	if m := descriptionPattern.FindStringSubmatch(page); m != nil {
		description = stripTags(m[1])
	}

	return fmt.Sprintf("Name: %s\n\nDescription: %s", title, description)
}

// angleEscaper restores entities for angle brackets that were escaped in
// the page, so decoded text never reads as markup.
var angleEscaper = strings.NewReplacer("<", "&lt;", ">", "&gt;")

// stripTags returns the text content of an HTML fragment with whitespace
// runs collapsed to single spaces.
func stripTags(fragment string) string {
	text := fragment
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err == nil {
		text = angleEscaper.Replace(doc.Text())
	}
	return strings.Join(strings.Fields(text), " ")
}
