// Command pkgdocs generates, caches and serves structured package documentation.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/pkgdocs/internal/adapters/driven/ai"
	"github.com/custodia-labs/pkgdocs/internal/adapters/driven/config/file"
	"github.com/custodia-labs/pkgdocs/internal/adapters/driven/pypi"
	"github.com/custodia-labs/pkgdocs/internal/adapters/driven/storage"
	"github.com/custodia-labs/pkgdocs/internal/adapters/driving/cli"
	"github.com/custodia-labs/pkgdocs/internal/core/domain"
	"github.com/custodia-labs/pkgdocs/internal/core/ports/driven"
	"github.com/custodia-labs/pkgdocs/internal/core/services"
	"github.com/custodia-labs/pkgdocs/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// A missing .env is normal.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("reading .env: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetBootstrap(wire)

	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// wire builds the services for configDir. Invalid settings are not fatal:
// they are reported through Services.ConfigErr so that settings commands
// still work.
func wire(configDir string) (*cli.Services, func(), error) {
	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	settingsService := services.NewSettingsService(configStore, ai.ValidateLLMConfig)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, nil, err
	}

	out := &cli.Services{
		Settings:  settingsService,
		ConfigErr: settings.Validate(),
	}
	if errors.Is(out.ConfigErr, domain.ErrInvalidConfig) {
		return out, nil, nil
	}

	promptDir := ""
	if configDir != "" {
		promptDir = filepath.Join(configDir, "prompts")
	}
	promptStore, err := file.NewPromptStore(promptDir)
	if err != nil {
		return nil, nil, err
	}

	store, err := storage.OpenDocumentStore(settings.Docs)
	if err != nil {
		return nil, nil, fmt.Errorf("opening document store: %w", err)
	}

	fetcher := pypi.NewFetcher(pypi.Config{
		BaseURL:      settings.Index.BaseURL,
		Timeout:      settings.Fetch.Timeout,
		MaxRetries:   settings.Fetch.MaxRetries,
		RetryBackoff: settings.Fetch.RetryBackoff,
		UserAgent:    "pkgdocs/" + version,
	})

	var llm driven.LLMService
	var synthesizer *services.Synthesizer
	if out.ConfigErr == nil {
		llm, err = ai.CreateLLMService(&settings.LLM)
		if err != nil {
			store.Close()
			return nil, nil, err
		}
		synthesizer, err = services.NewSynthesizer(llm, promptStore, services.SynthesizerConfig{
			MaxRetries:   settings.Fetch.MaxRetries,
			RetryBackoff: settings.Fetch.RetryBackoff,
		})
		if err != nil {
			llm.Close()
			store.Close()
			return nil, nil, err
		}
	}

	docsService := services.NewDocsService(store, fetcher, synthesizer)
	out.Docs = docsService
	out.Prompt = services.NewPromptService(docsService, promptStore)
	out.WatchPrompts = promptStore.Watch

	cleanup := func() {
		if llm != nil {
			if err := llm.Close(); err != nil {
				logger.Warn("closing LLM client: %v", err)
			}
		}
		if err := store.Close(); err != nil {
			logger.Warn("closing document store: %v", err)
		}
	}

	return out, cleanup, nil
}
