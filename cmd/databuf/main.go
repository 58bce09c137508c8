// Package main is the entry point for the databuf CLI.
//
// Usage:
//
//	databuf [flags] <command> [args]
//
// Commands:
//
//	hexdump    - Styled hex/ASCII dump of a file or stdin
//	transcode  - Re-encode text between charsets
//	inspect    - Buffer statistics for a file or stdin
//	version    - Show version information
package main

import (
	"fmt"
	"os"

	"github.com/edgebyte/databuf/cmd/databuf/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
