package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/pkgdocs/internal/core/domain"
)

var (
	llmProviderFlag string
	llmModelFlag    string
	docsDirFlag     string
	docsBackendFlag string
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the LLM provider and document cache.

Credentials are read from OPENAI_API_KEY or ANTHROPIC_API_KEY, a .env file in
the working directory, or llm.api_key in the config file. The environment wins.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "Configure LLM provider",
	Long: `Configure the LLM provider used to summarise listing pages.

Without --provider an interactive menu is shown. The API key is prompted for
providers that need one; leave it empty to rely on the environment.`,
	RunE: runSettingsLLM,
}

var settingsDocsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Configure the document cache",
	Long: `Configure where package documents are cached.

Backends:
  file   - one JSON file per package in the directory (default)
  sqlite - a single pkgdocs.db database in the directory`,
	RunE: runSettingsDocs,
}

var settingsCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that the LLM provider is reachable",
	RunE:  runSettingsCheck,
}

func init() {
	settingsLLMCmd.Flags().StringVar(&llmProviderFlag, "provider", "", "provider: openai, anthropic or ollama")
	settingsLLMCmd.Flags().StringVar(&llmModelFlag, "model", "", "model name (default depends on provider)")
	settingsDocsCmd.Flags().StringVar(&docsDirFlag, "dir", "", "cache directory")
	settingsDocsCmd.Flags().StringVar(&docsBackendFlag, "backend", "", "storage backend: file or sqlite")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsLLMCmd)
	settingsCmd.AddCommand(settingsDocsCmd)
	settingsCmd.AddCommand(settingsCheckCmd)
	rootCmd.AddCommand(settingsCmd)
}

// runSettingsShow prints the effective settings as a table keyed by the
// config.toml keys that set them.
func runSettingsShow(cmd *cobra.Command, _ []string) error {
	svc, err := requireSettings()
	if err != nil {
		return err
	}
	cfg, err := svc.Get()
	if err != nil {
		return fmt.Errorf("read settings: %w", err)
	}

	llm := cfg.LLM
	model := llm.Model
	if model == "" {
		model = domain.DefaultLLMModels()[llm.Provider] + " (default)"
	}
	key := "(not needed)"
	switch {
	case !llm.Provider.RequiresAPIKey():
	case llm.APIKey != "":
		key = maskAPIKey(llm.APIKey)
	default:
		key = fmt.Sprintf("(not set, export %s)", llm.Provider.APIKeyEnvVar())
	}
	baseURL := llm.BaseURL
	if baseURL == "" {
		baseURL = "(provider default)"
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(cmd.OutOrStdout())
	tw.SetTitle(svc.ConfigPath())
	tw.AppendHeader(table.Row{"Key", "Value"})
	tw.AppendRows([]table.Row{
		{"llm.provider", llm.Provider.Description()},
		{"llm.model", model},
		{"llm.base_url", baseURL},
		{"llm.api_key", key},
	})
	tw.AppendSeparator()
	tw.AppendRows([]table.Row{
		{"docs.dir", cfg.Docs.Dir},
		{"docs.backend", cfg.Docs.Backend},
	})
	tw.AppendSeparator()
	tw.AppendRows([]table.Row{
		{"index.base_url", cfg.Index.BaseURL},
		{"fetch.timeout", cfg.Fetch.Timeout},
		{"fetch.max_retries", cfg.Fetch.MaxRetries},
	})
	tw.SetStyle(table.StyleLight)
	tw.Render()

	out := cmd.OutOrStdout()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(out, "Warning: %v\n", err)
		fmt.Fprintln(out, "Run 'pkgdocs settings llm' to fix configuration issues.")
		return nil
	}
	fmt.Fprintln(out, "Configuration is valid.")
	return nil
}

func runSettingsLLM(cmd *cobra.Command, _ []string) error {
	svc, err := requireSettings()
	if err != nil {
		return err
	}

	reader := bufio.NewReader(cmd.InOrStdin())

	var provider domain.AIProvider
	if llmProviderFlag != "" {
		provider = domain.AIProvider(llmProviderFlag)
	} else {
		cmd.Println("Select LLM Provider")
		providers := domain.AllAIProviders()
		for i, p := range providers {
			cmd.Printf("  %d. %s\n", i+1, p.Description())
		}
		cmd.Print("\nEnter choice [1]: ")
		idx := parseChoice(readLine(reader), len(providers), 1)
		provider = providers[idx-1]
	}
	if !provider.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedProvider, provider)
	}

	model := llmModelFlag
	if model == "" && llmProviderFlag == "" {
		defaultModel := domain.DefaultLLMModels()[provider]
		cmd.Printf("Enter model name [%s]: ", defaultModel)
		model = readLine(reader)
	}

	var apiKey string
	if provider.RequiresAPIKey() && llmProviderFlag == "" {
		cmd.Printf("Enter API key (empty to use %s): ", provider.APIKeyEnvVar())
		apiKey = readPassword(cmd.InOrStdin(), reader)
		cmd.Println()
	}

	if err := svc.SetLLMProvider(provider, model, apiKey); err != nil {
		return fmt.Errorf("failed to configure LLM provider: %w", err)
	}

	cmd.Printf("LLM provider configured: %s\n", provider.Description())
	err = checkLLM(cmd)
	if errors.Is(err, domain.ErrMissingCredential) {
		cmd.Printf("Export %s before generating documents.\n", provider.APIKeyEnvVar())
		return nil
	}
	return err
}

func runSettingsDocs(cmd *cobra.Command, _ []string) error {
	svc, err := requireSettings()
	if err != nil {
		return err
	}

	settings, err := svc.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	dir := settings.Docs.Dir
	if docsDirFlag != "" {
		dir = docsDirFlag
	}
	backend := settings.Docs.Backend
	if docsBackendFlag != "" {
		backend = domain.StorageBackend(docsBackendFlag)
	}

	if err := svc.SetDocsStorage(dir, backend); err != nil {
		return fmt.Errorf("failed to configure document cache: %w", err)
	}

	cmd.Printf("Document cache: %s (%s)\n", dir, backend)
	return nil
}

func runSettingsCheck(cmd *cobra.Command, _ []string) error {
	if _, err := requireSettings(); err != nil {
		return err
	}
	return checkLLM(cmd)
}

// checkLLM pings the configured provider and reports the result.
func checkLLM(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	fmt.Fprint(out, "Checking LLM provider... ")
	if err := settingsService.ValidateLLM(cmd.Context()); err != nil {
		fmt.Fprintf(out, "FAILED: %v\n", err)
		return fmt.Errorf("check LLM provider: %w", err)
	}
	fmt.Fprintln(out, "OK")
	return nil
}

// readLine returns the next line without surrounding space. EOF yields "".
func readLine(reader *bufio.Reader) string {
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

// parseChoice returns the 1-based menu index in input, or def when input is
// empty or out of range.
func parseChoice(input string, limit, def int) int {
	if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= limit {
		return n
	}
	return def
}

// readPassword reads without echo when in is a terminal, and falls back
// to a plain line read otherwise.
func readPassword(in io.Reader, reader *bufio.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	return readLine(reader)
}

// maskAPIKey keeps the first and last four characters of keys long enough
// that doing so hides most of them.
func maskAPIKey(key string) string {
	const keep = 4
	if len(key) <= 2*keep {
		return "****"
	}
	return key[:keep] + "..." + key[len(key)-keep:]
}
