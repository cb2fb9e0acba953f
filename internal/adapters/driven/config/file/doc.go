// Package file keeps user-owned settings under the config directory
// (~/.manuals by default).
//
// ConfigStore reads and writes config.toml. Dotted keys such as
// "search.default_limit" map onto nested TOML tables. PromptStore serves
// MCP prompt templates from prompts/, seeding that directory with the
// built-in templates on first use so they can be edited in place.
package file
