// Package driving holds the use-case interfaces the CLI, the MCP server and
// the TUI call into. internal/core/services implements them.
package driving
