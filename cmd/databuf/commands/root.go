package commands

import (
	"github.com/spf13/cobra"
)

// Global flags
var verbose bool

var rootCmd = &cobra.Command{
	Use:   "databuf",
	Short: "Byte buffer toolkit",
	Long: `databuf - inspect, dump and transcode binary data through the
databuf split-cursor buffer.

Commands:
  hexdump    Styled hex/ASCII dump of a file or stdin
  transcode  Re-encode text between charsets (IANA names)
  inspect    Buffer statistics for a file or stdin

Examples:
  # Dump a file
  databuf hexdump data.bin

  # Convert a latin-1 file to UTF-8
  databuf transcode --from iso-8859-1 --to utf-8 legacy.txt

  # Show buffer statistics as JSON
  databuf inspect --format json data.bin`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// IsVerbose reports whether the global verbose flag is set.
func IsVerbose() bool {
	return verbose
}
