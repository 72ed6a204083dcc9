// Package prompts holds the embedded default prompt templates and renders
// them with text/template. User overrides are loaded through a
// driven.PromptStore; these defaults apply when no override exists.
package prompts

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/custodia-labs/pkgdocs/internal/core/ports/driven"
)

// defaults contains the embedded default prompts, keyed by prompt name.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
var defaults = map[string]string{
	driven.PromptSynthesisSystem: `You are a helpful assistant that provides information about software packages in a structured JSON format. Use only the information provided in the package page content to generate your response.`,

	driven.PromptSynthesisUser: `Package Name: {{.Package}}
Package URL: {{.URL}}

Here's the content of the listing page for this package:

{{.PageContent}}

Based on the above content from the listing page, generate a JSON object describing how to best use this package, including its main variables and requirements. Follow this structure:
{
    "name": "package_name",
    "version": "current_version",
    "installation": "pip install package_name",
    "description": "A detailed description of the package",
    "example_usage": "A comprehensive code snippet demonstrating common usage, including multiple features and best practices",
    "key_variables": [
        {"name": "variable_name", "description": "Detailed variable description"},
        ... (at least 5 key variables, more if applicable)
    ]
}

Ensure all information is extracted from the provided page content, not from prior knowledge.`,

	driven.PromptCodeGeneration: `The assistant needs to write code that uses the '{{.Package}}' package. Before beginning, review the following docs:

Package Name: {{.Doc.Name}}
Version: {{.Doc.Version}}
Installation: {{.Doc.Installation}}
Description: {{.Doc.Description}}

Example Usage:
{{.Doc.ExampleUsage}}

Key Variables:
{{.KeyVariablesJSON}}

Now, using the documentation effectively, write code for the following:

Task: {{.Task}}

Include any necessary imports and provide comments explaining your code.`,
}

// Names returns the names of all known prompts.
func Names() []string {
	return []string{
		driven.PromptSynthesisSystem,
		driven.PromptSynthesisUser,
		driven.PromptCodeGeneration,
	}
}

// Default returns the embedded default for name.
func Default(name string) (string, bool) {
	p, ok := defaults[name]
	return p, ok
}

// Load returns the template for name from store, falling back to the
// embedded default when store is nil or the load fails.
func Load(store driven.PromptStore, name string) (string, error) {
	if store != nil {
		if p, err := store.Load(name); err == nil && p != "" {
			return p, nil
		}
	}
	p, ok := defaults[name]
	if !ok {
		return "", fmt.Errorf("unknown prompt %q", name)
	}
	return p, nil
}

// Render executes the template text with data.
func Render(name, text string, data any) (string, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", fmt.Errorf("parse prompt %q: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render prompt %q: %w", name, err)
	}
	return buf.String(), nil
}
