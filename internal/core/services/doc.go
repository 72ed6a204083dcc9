// Package services implements the driving ports.
//
// DocsService resolves a package to a document: cache lookup, then on a
// miss page fetch, synthesis, save and a re-read from the cache. Every
// failure comes back as a *domain.DocsError. PromptService renders the
// code-generation template around a resolved document, and
// SettingsService reads and writes configuration.
package services
