// Package file keeps pkgdocs' own files under the config directory:
// config.toml through ConfigStore and the editable prompt templates through
// PromptStore, which can also watch them for edits.
package file
