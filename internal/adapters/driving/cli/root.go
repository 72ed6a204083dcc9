// Package cli implements the pkgdocs command line interface using cobra.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pkgdocs/internal/core/ports/driving"
	"github.com/custodia-labs/pkgdocs/internal/logger"
)

var (
	version = "dev"

	docsService     driving.DocsService
	promptService   driving.PromptService
	settingsService driving.SettingsService

	// configErr is the startup validation error, if any.
	configErr error

	watchPrompts func(ctx context.Context) error

	bootstrap Bootstrap
	cleanup   func()

	verboseFlag   bool
	configDirFlag string
)

// Services holds the driving ports the commands operate on.
type Services struct {
	Docs     driving.DocsService
	Prompt   driving.PromptService
	Settings driving.SettingsService

	// ConfigErr is set when the settings failed validation. Commands that
	// need to generate documents return it instead of running.
	ConfigErr error

	// WatchPrompts, when set, reloads prompt templates as they change on
	// disk until ctx is cancelled. Long-running commands start it.
	WatchPrompts func(ctx context.Context) error
}

// Bootstrap builds the services for a config directory. An empty
// configDir selects the default location. The returned func releases
// resources and may be nil.
type Bootstrap func(configDir string) (*Services, func(), error)

var rootCmd = &cobra.Command{
	Use:   "pkgdocs",
	Short: "Generate and cache structured package documentation",
	Long: `pkgdocs fetches a package's listing page, asks an LLM to summarise it into
structured documentation, caches the result locally and builds code-generation
prompts from it.

Cached documents are returned as-is on every later lookup.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "print pipeline diagnostics to stderr")
	rootCmd.PersistentFlags().StringVar(&configDirFlag, "config-dir", "", "configuration directory (default ~/.pkgdocs)")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetBootstrap registers the function that builds services on first use.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetServices injects services directly, bypassing Bootstrap.
func SetServices(s *Services) {
	docsService = s.Docs
	promptService = s.Prompt
	settingsService = s.Settings
	configErr = s.ConfigErr
	watchPrompts = s.WatchPrompts
}

// Execute runs the root command and releases bootstrapped resources.
func Execute(ctx context.Context) error {
	defer func() {
		if cleanup != nil {
			cleanup()
			cleanup = nil
		}
	}()
	return rootCmd.ExecuteContext(ctx)
}

// ensureServices bootstraps services once, on the first command that needs them.
func ensureServices() error {
	if settingsService != nil || bootstrap == nil {
		return nil
	}
	s, done, err := bootstrap(configDirFlag)
	if err != nil {
		return err
	}
	SetServices(s)
	cleanup = done
	return nil
}

// requireSettings returns the settings service or an error.
func requireSettings() (driving.SettingsService, error) {
	if err := ensureServices(); err != nil {
		return nil, err
	}
	if settingsService == nil {
		return nil, errors.New("settings service not configured")
	}
	return settingsService, nil
}

// requireGeneration checks that documents can be generated with the
// current configuration.
func requireGeneration() error {
	if err := ensureServices(); err != nil {
		return err
	}
	if configErr != nil {
		return fmt.Errorf("%w\nRun 'pkgdocs settings llm' to configure a provider", configErr)
	}
	if docsService == nil || promptService == nil {
		return errors.New("docs service not configured")
	}
	return nil
}

// requireDocs returns the docs service for commands that only read the cache.
func requireDocs() (driving.DocsService, error) {
	if err := ensureServices(); err != nil {
		return nil, err
	}
	if docsService == nil {
		if configErr != nil {
			return nil, configErr
		}
		return nil, errors.New("docs service not configured")
	}
	return docsService, nil
}
