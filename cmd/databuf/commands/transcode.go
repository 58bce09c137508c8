package commands

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/edgebyte/databuf/pkg/cli"
	"github.com/edgebyte/databuf/pkg/databuf"
)

var (
	transcodeFrom string
	transcodeTo   string
	transcodeOut  string
)

var transcodeCmd = &cobra.Command{
	Use:   "transcode [file]",
	Short: "Re-encode text between charsets",
	Long: `Decode the input with the source charset and re-encode it with the
target charset. Charsets are IANA names (utf-8, iso-8859-1, windows-1252,
utf-16le, shift_jis, ...). Undecodable bytes and unmappable characters are
substituted with the charset's replacement character.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := databuf.LookupCharset(transcodeFrom)
		if err != nil {
			return err
		}
		to, err := databuf.LookupCharset(transcodeTo)
		if err != nil {
			return err
		}

		data, name, err := readInput(args)
		if err != nil {
			return err
		}
		in := databuf.Wrap(data)
		defer in.Release()

		text, err := in.String(from)
		if err != nil {
			return err
		}

		out := databuf.New(len(text))
		w := out.TextWriter(to)
		if _, err := w.WriteString(text); err != nil {
			return err
		}
		if err := w.Close(); err != nil {
			return err
		}

		cli.PrintVerbose(IsVerbose(), "%s: %s -> %s (%s in, %s out)",
			name, from.Name(), to.Name(),
			cli.FormatBytesInt(in.ReadableByteCount()), cli.FormatBytesInt(out.ReadableByteCount()))

		var dst io.Writer = os.Stdout
		if transcodeOut != "" {
			f, err := os.Create(transcodeOut)
			if err != nil {
				return err
			}
			defer f.Close()
			dst = f
		}
		r := out.Reader(true)
		defer r.Close()
		_, err = io.Copy(dst, r)
		return err
	},
}

func init() {
	transcodeCmd.Flags().StringVar(&transcodeFrom, "from", "utf-8", "source charset")
	transcodeCmd.Flags().StringVar(&transcodeTo, "to", "utf-8", "target charset")
	transcodeCmd.Flags().StringVarP(&transcodeOut, "output", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(transcodeCmd)
}
