package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pkgdocs/internal/adapters/driving/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse cached documentation in a terminal UI",
	Long: `Launch an interactive browser for cached package documentation.

Packages that are not cached can be looked up by name; they are generated
the same way as with 'pkgdocs docs get'.

Controls:
  ↑/k, ↓/j - Navigate packages or scroll
  Enter    - Open package
  /        - Look up a package by name
  r        - Refresh the list
  Esc      - Back / Cancel
  q        - Quit`,
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	docs, err := requireDocs()
	if err != nil {
		return err
	}

	app, err := tui.NewApp(&tui.Ports{Docs: docs})
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	if err := app.Run(cmd.Context()); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
