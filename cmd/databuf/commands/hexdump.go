package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/edgebyte/databuf/pkg/cli"
	"github.com/edgebyte/databuf/pkg/databuf"
)

var (
	hexWidth int
	hexPlain bool
)

var hexdumpCmd = &cobra.Command{
	Use:   "hexdump [file]",
	Short: "Styled hex/ASCII dump of a file or stdin",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if hexWidth < 1 || hexWidth > 64 {
			return fmt.Errorf("invalid line width %d (1-64)", hexWidth)
		}
		data, _, err := readInput(args)
		if err != nil {
			return err
		}

		styles := cli.NewStyles(cli.DefaultTheme)
		if hexPlain {
			styles = cli.Styles{}
		}

		// One dump line per view: the factory's chunk size is the line
		// width.
		fac := &databuf.Alloc{ChunkSize: hexWidth}
		buf := fac.Wrap(data)
		defer buf.Release()

		it := buf.ReadableByteViews()
		defer it.Close()

		offset := 0
		for {
			view, err := it.Next()
			if err == databuf.ErrIteratorDone {
				break
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderHexLine(offset, view, hexWidth, styles))
			offset += len(view)
		}
		return nil
	},
}

// renderHexLine formats one dump line: offset, hex columns, ASCII column.
func renderHexLine(offset int, p []byte, width int, s cli.Styles) string {
	var b strings.Builder

	b.WriteString(s.Offset.Render(fmt.Sprintf("%08x", offset)))
	b.WriteString("  ")

	for i := 0; i < width; i++ {
		if i > 0 && i%8 == 0 {
			b.WriteString(" ")
		}
		if i < len(p) {
			b.WriteString(s.Hex.Render(fmt.Sprintf("%02x", p[i])))
			b.WriteString(" ")
		} else {
			b.WriteString("   ")
		}
	}

	b.WriteString(" ")
	b.WriteString(s.Dim.Render("|"))
	for _, c := range p {
		if c >= 0x20 && c < 0x7F {
			b.WriteString(s.Printable.Render(string(c)))
		} else {
			b.WriteString(s.Dim.Render("."))
		}
	}
	b.WriteString(s.Dim.Render("|"))

	return b.String()
}

func init() {
	hexdumpCmd.Flags().IntVarP(&hexWidth, "width", "w", 16, "bytes per line")
	hexdumpCmd.Flags().BoolVar(&hexPlain, "plain", false, "disable colors")
	rootCmd.AddCommand(hexdumpCmd)
}
