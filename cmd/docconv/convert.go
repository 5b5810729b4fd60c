package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	docconv "github.com/porticus-lab/go-docconv"
	"github.com/porticus-lab/go-docconv/internal/sniff"
)

func newConvertCmd(a *app) *cobra.Command {
	var (
		to        string
		output    string
		mediaType string
	)
	cmd := &cobra.Command{
		Use:   "convert <file> --to <format>",
		Short: "Convert one file to another format",
		Long: `Convert reads a file, converts it to the requested format and writes the
result into the current directory under a name derived from the input
(note.txt → note.html). Use -o to choose the output path, or -o - for
stdout.

The media type is sniffed from the content, falling back to the file
extension. Use --type to declare it explicitly.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := docconv.ParseFormat(to)
			if err != nil {
				return err
			}
			in := args[0]
			data, err := os.ReadFile(in)
			if err != nil {
				return err
			}
			if mediaType == "" {
				mediaType = sniff.MediaType(in, data)
			}

			d, done, err := a.dispatcher()
			if err != nil {
				return err
			}
			defer done()

			res, err := d.Convert(cmd.Context(), docconv.Document{
				Data:      data,
				MediaType: mediaType,
				FileName:  filepath.Base(in),
			}, target)
			if err != nil {
				return err
			}
			out, err := writeResult(cmd, res, output, in)
			if err != nil {
				return err
			}
			a.logger.Debug("converted", zap.String("input", in), zap.String("media_type", mediaType), zap.String("output", out))
			return nil
		},
	}
	cmd.Flags().StringVarP(&to, "to", "t", "", "target format: "+formatNames())
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path, or - for stdout (default: suggested file name)")
	cmd.Flags().StringVar(&mediaType, "type", "", "declared media type of the input (default: sniffed)")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

// writeResult stores res at output, or under its suggested name when
// output is empty. It refuses to overwrite any of the inputs.
func writeResult(cmd *cobra.Command, res *docconv.Result, output string, inputs ...string) (string, error) {
	if output == "-" {
		_, err := res.WriteTo(cmd.OutOrStdout())
		return "-", err
	}
	if output == "" {
		output = res.FileName()
	}
	if err := checkNotInput(output, inputs); err != nil {
		return "", err
	}
	if err := res.WriteToFile(output, 0o644); err != nil {
		return "", err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s, %d bytes)\n", output, res.MediaType(), res.Len())
	return output, nil
}

func checkNotInput(output string, inputs []string) error {
	outAbs, err := filepath.Abs(output)
	if err != nil {
		return err
	}
	for _, in := range inputs {
		inAbs, err := filepath.Abs(in)
		if err != nil {
			return err
		}
		if inAbs == outAbs {
			return fmt.Errorf("refusing to overwrite input %s; use -o", in)
		}
	}
	return nil
}
