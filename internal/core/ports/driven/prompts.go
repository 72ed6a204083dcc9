package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files or embed them in the binary.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// If the prompt is not found, implementations should return the
	// embedded default or an error.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// Well-known prompt names. Templates use text/template syntax.
const (
	// PromptSynthesisSystem is the system instruction for document synthesis.
	// It has no template fields.
	PromptSynthesisSystem = "synthesis_system"

	// PromptSynthesisUser is the user message for document synthesis.
	// Fields: .Package, .URL, .PageContent.
	PromptSynthesisUser = "synthesis_user"

	// PromptCodeGeneration is the prompt rendered for downstream code generation.
	// Fields: .Package, .Task and .Doc (a domain.PackageDocument),
	// .KeyVariablesJSON.
	PromptCodeGeneration = "code_generation"
)
