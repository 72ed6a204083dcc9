package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pkgdocs/internal/adapters/driving/mcp"
	"github.com/custodia-labs/pkgdocs/internal/logger"
)

var mcpPort int

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Model Context Protocol integration",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve package docs to MCP clients",
	Long: `Serve the get_package_docs and prompt_generator tools, plus the cached
packages as resources, to an MCP client.

Stdio is used unless --port is given, in which case streamable HTTP is served
on that port. A client entry for stdio looks like:

  "pkgdocs": {"command": "pkgdocs", "args": ["mcp", "serve"]}

Prompt templates are reloaded while the server runs when their files change.`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntVarP(&mcpPort, "port", "p", 0, "serve HTTP on this port instead of stdio")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	if err := requireGeneration(); err != nil {
		return err
	}
	server, err := mcp.NewServer(&mcp.Ports{Docs: docsService, Prompt: promptService}, version)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	startPromptWatcher(ctx)

	if mcpPort <= 0 {
		return server.Run(ctx)
	}
	addr := fmt.Sprintf(":%d", mcpPort)
	fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
	return server.RunHTTP(ctx, addr)
}

// startPromptWatcher reloads templates in the background until ctx ends.
func startPromptWatcher(ctx context.Context) {
	if watchPrompts == nil {
		return
	}
	go func() {
		if err := watchPrompts(ctx); err != nil {
			logger.Warn("prompt templates will not reload: %v", err)
		}
	}()
}
