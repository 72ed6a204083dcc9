package cli

import (
	"encoding/json"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Output formats for docs get.
const (
	formatJSON = "json"
	formatYAML = "yaml"
)

var docsFormat string

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Get and list package documentation",
	Long:  `Commands for resolving package documents and inspecting the cache.`,
}

var docsGetCmd = &cobra.Command{
	Use:   "get <package>",
	Short: "Print documentation for a package",
	Long: `Print the structured documentation for a package.

The document is read from the cache. On a miss the listing page is fetched,
summarised by the configured LLM and stored before it is printed.`,
	Args: cobra.ExactArgs(1),
	RunE: runDocsGet,
}

var docsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached packages",
	Args:  cobra.NoArgs,
	RunE:  runDocsList,
}

func init() {
	docsGetCmd.Flags().StringVarP(&docsFormat, "format", "f", formatJSON, "output format: json or yaml")
	docsCmd.AddCommand(docsGetCmd)
	docsCmd.AddCommand(docsListCmd)
	rootCmd.AddCommand(docsCmd)
}

func runDocsGet(cmd *cobra.Command, args []string) error {
	if docsFormat != formatJSON && docsFormat != formatYAML {
		return fmt.Errorf("unknown format %q (want json or yaml)", docsFormat)
	}
	if err := requireGeneration(); err != nil {
		return err
	}

	doc, err := docsService.GetPackageDocs(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	var out []byte
	switch docsFormat {
	case formatYAML:
		out, err = yaml.Marshal(doc)
	default:
		out, err = json.MarshalIndent(doc, "", "  ")
		out = append(out, '\n')
	}
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}

	_, err = cmd.OutOrStdout().Write(out)
	return err
}

func runDocsList(cmd *cobra.Command, _ []string) error {
	docs, err := requireDocs()
	if err != nil {
		return err
	}

	names, err := docs.ListCached(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list cached packages: %w", err)
	}

	if len(names) == 0 {
		cmd.Println("No cached packages.")
		cmd.Println("Use 'pkgdocs docs get <package>' to generate one.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.AppendHeader(table.Row{"Package", "Location"})
	for _, name := range names {
		t.AppendRow(table.Row{name, docs.Location(name)})
	}
	t.SetStyle(table.StyleLight)
	t.Render()
	return nil
}
