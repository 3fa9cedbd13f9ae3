// Package config provides configuration management for carousel.
//
// A single YAML document configures the pager physics, the TUI and how cards
// are read from their source. Documents are validated against a JSON schema
// reflected from the Go types before they are decoded, so that errors point
// at the offending YAML node.
package config
