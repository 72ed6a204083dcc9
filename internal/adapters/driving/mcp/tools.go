package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/pkgdocs/internal/core/domain"
)

// PackageDocsInput is the input schema for the get_package_docs tool.
type PackageDocsInput struct {
	Package string `json:"package" jsonschema:"the package name as listed on the index, e.g. requests"`
}

// PackageDocsOutput is the output schema for the get_package_docs tool.
type PackageDocsOutput struct {
	Document *domain.PackageDocument `json:"document"`
	Location string                  `json:"location"`
}

// PromptInput is the input schema for the prompt_generator tool.
type PromptInput struct {
	Package string `json:"package" jsonschema:"the package the generated code should use"`
	Task    string `json:"task" jsonschema:"what the code should do"`
}

// PromptOutput is the output schema for the prompt_generator tool.
type PromptOutput struct {
	Prompt string `json:"prompt"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_package_docs",
		Description: "Return structured documentation for a package, generating and caching it on first use",
	}, s.handleGetPackageDocs)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "prompt_generator",
		Description: "Build a code-generation prompt that embeds a package's documentation and a task",
	}, s.handlePromptGenerator)
}

// handleGetPackageDocs handles the get_package_docs tool invocation.
func (s *Server) handleGetPackageDocs(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PackageDocsInput,
) (*mcp.CallToolResult, PackageDocsOutput, error) {
	doc, err := s.ports.Docs.GetPackageDocs(ctx, input.Package)
	if err != nil {
		return nil, PackageDocsOutput{}, err
	}

	return nil, PackageDocsOutput{
		Document: doc,
		Location: s.ports.Docs.Location(input.Package),
	}, nil
}

// handlePromptGenerator handles the prompt_generator tool invocation.
func (s *Server) handlePromptGenerator(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PromptInput,
) (*mcp.CallToolResult, PromptOutput, error) {
	prompt, err := s.ports.Prompt.GeneratePrompt(ctx, input.Package, input.Task)
	if err != nil {
		return nil, PromptOutput{}, err
	}
	return nil, PromptOutput{Prompt: prompt}, nil
}
