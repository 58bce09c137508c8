package commands

import (
	"github.com/spf13/cobra"

	"github.com/edgebyte/databuf/pkg/cli"
	"github.com/edgebyte/databuf/pkg/databuf"
)

var (
	inspectFormat string
	inspectChunk  int
)

// bufferStats is the inspect command's output document.
type bufferStats struct {
	Name          string  `json:"name" yaml:"name"`
	Size          string  `json:"size" yaml:"size"`
	Capacity      int     `json:"capacity" yaml:"capacity"`
	ReadPosition  int     `json:"read_position" yaml:"read_position"`
	WritePosition int     `json:"write_position" yaml:"write_position"`
	Readable      int     `json:"readable" yaml:"readable"`
	Writable      int     `json:"writable" yaml:"writable"`
	Chunks        int     `json:"chunks" yaml:"chunks"`
	Printable     float64 `json:"printable_ratio" yaml:"printable_ratio"`
}

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Buffer statistics for a file or stdin",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fac := &databuf.Alloc{ChunkSize: inspectChunk}
		data, name, err := readInput(args)
		if err != nil {
			return err
		}
		buf := fac.Wrap(data)
		defer buf.Release()

		stats := bufferStats{
			Name:          name,
			Size:          cli.FormatBytesInt(buf.ReadableByteCount()),
			Capacity:      buf.Capacity(),
			ReadPosition:  buf.ReadPosition(),
			WritePosition: buf.WritePosition(),
			Readable:      buf.ReadableByteCount(),
			Writable:      buf.WritableByteCount(),
		}

		it := buf.ReadableByteViews()
		defer it.Close()
		printable := 0
		for {
			view, err := it.Next()
			if err == databuf.ErrIteratorDone {
				break
			}
			if err != nil {
				return err
			}
			stats.Chunks++
			for _, c := range view {
				if c >= 0x20 && c < 0x7F {
					printable++
				}
			}
		}
		if n := buf.ReadableByteCount(); n > 0 {
			stats.Printable = float64(printable) / float64(n)
		}

		return cli.Output(stats, cli.OutputOptions{
			Format: cli.OutputFormat(inspectFormat),
			Writer: cmd.OutOrStdout(),
		})
	},
}

func init() {
	inspectCmd.Flags().StringVarP(&inspectFormat, "format", "f", "yaml", "output format (yaml, json, raw)")
	inspectCmd.Flags().IntVar(&inspectChunk, "chunk", databuf.DefaultChunkSize, "view chunk size")
	rootCmd.AddCommand(inspectCmd)
}
