// Package cli provides output formatting and terminal styling shared by the
// databuf command line tool: structured output in YAML, JSON or raw form,
// byte-count formatting, and a lipgloss color theme for hex dumps.
package cli
