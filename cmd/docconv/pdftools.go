package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	docconv "github.com/porticus-lab/go-docconv"
	"github.com/porticus-lab/go-docconv/internal/sniff"
)

func newMergeCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "merge <file.pdf>... [-o merged.pdf]",
		Short: "Merge PDF files into one document",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			docs := make([]docconv.Document, 0, len(args))
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				docs = append(docs, docconv.Document{
					Data:      data,
					MediaType: sniff.MediaType(path, data),
					FileName:  filepath.Base(path),
				})
			}

			d, done, err := a.dispatcher()
			if err != nil {
				return err
			}
			defer done()

			res, err := d.Merge(cmd.Context(), docs)
			if err != nil {
				return err
			}
			_, err = writeResult(cmd, res, output, args...)
			return err
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path, or - for stdout (default: merged.pdf)")
	return cmd
}

func newTaskListCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   `tasklist "task text" [-o task.pdf]`,
		Short: "Generate a task list PDF",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, done, err := a.dispatcher()
			if err != nil {
				return err
			}
			defer done()

			res, err := d.GenerateTaskList(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			_, err = writeResult(cmd, res, output)
			return err
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path, or - for stdout (default: task.pdf)")
	return cmd
}
