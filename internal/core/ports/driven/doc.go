// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - PageFetcher: Retrieves and flattens a package listing page
//   - LLMService: Chat completion against a configured provider
//   - DocumentStore: Package document persistence (file or SQLite)
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
//   - PromptStore: User-customisable prompt templates. Without it the
//     embedded defaults are used.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
