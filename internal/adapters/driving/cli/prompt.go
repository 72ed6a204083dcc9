package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var promptCmd = &cobra.Command{
	Use:   "prompt <package> <task...>",
	Short: "Build a code-generation prompt for a package",
	Long: `Build a prompt asking for code that performs the task using the package.

The prompt embeds the package's documentation, generating it first when it
is not cached. The prompt is printed; no code-generation request is sent.

Example:
  pkgdocs prompt requests download a file and print its size`,
	Args: cobra.MinimumNArgs(2),
	RunE: runPrompt,
}

func init() {
	rootCmd.AddCommand(promptCmd)
}

func runPrompt(cmd *cobra.Command, args []string) error {
	if err := requireGeneration(); err != nil {
		return err
	}

	task := strings.Join(args[1:], " ")
	prompt, err := promptService.GeneratePrompt(cmd.Context(), args[0], task)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), prompt)
	return err
}
