package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	docconv "github.com/porticus-lab/go-docconv"
	"github.com/porticus-lab/go-docconv/internal/server"
	"github.com/porticus-lab/go-docconv/internal/watcher"
)

func formatNames() string {
	var names []string
	for _, f := range docconv.Catalog() {
		names = append(names, f.Name)
	}
	return strings.Join(names, ", ")
}

func newFormatsCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "formats",
		Short: "List the supported target formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(docconv.Catalog())
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tDESCRIPTION\tMEDIA TYPE")
			for _, f := range docconv.Catalog() {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", f.Name, f.DisplayName, f.MediaType)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the catalog as JSON")
	return cmd
}

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the conversion API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			d, done, err := a.dispatcher()
			if err != nil {
				return err
			}
			defer done()

			srv := server.NewServer(d, &a.cfg.Server, a.logger)
			errc := make(chan error, 1)
			go func() { errc <- srv.Start() }()

			select {
			case err := <-errc:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			a.logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Stop(shutdownCtx)
		},
	}
	cmd.Flags().String("host", "", "listen host (default from config: localhost)")
	cmd.Flags().Int("port", 0, "listen port (default from config: 8090)")
	a.bind("server.host", cmd.Flags().Lookup("host"))
	a.bind("server.port", cmd.Flags().Lookup("port"))
	return cmd
}

func newWatchCmd(a *app) *cobra.Command {
	var existing bool
	cmd := &cobra.Command{
		Use:   "watch --in <dir> [--out <dir>] [--to <format>]",
		Short: "Convert files as they appear in a directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wc := a.cfg.Watch
			if wc.Input == "" {
				return errors.New("no input directory; set --in or watch.input")
			}
			target, err := docconv.ParseFormat(wc.Target)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			d, done, err := a.dispatcher()
			if err != nil {
				return err
			}
			defer done()

			w := watcher.New(wc.Input, wc.Output, target, d, watcher.WithLogger(a.logger))
			if err := w.Start(ctx); err != nil {
				return err
			}
			defer w.Stop()
			if existing {
				if err := w.ConvertExisting(ctx); err != nil {
					a.logger.Warn("converting existing files", zap.Error(err))
				}
			}
			<-ctx.Done()
			return nil
		},
	}
	cmd.Flags().String("in", "", "directory to watch")
	cmd.Flags().String("out", "", "directory for converted files (default from config: converted)")
	cmd.Flags().String("to", "", "target format (default from config: pdf)")
	cmd.Flags().BoolVar(&existing, "existing", false, "also convert files already in the input directory")
	a.bind("watch.input", cmd.Flags().Lookup("in"))
	a.bind("watch.output", cmd.Flags().Lookup("out"))
	a.bind("watch.target", cmd.Flags().Lookup("to"))
	return cmd
}

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.cfg.YAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of docconv",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "docconv %s\n", version)
		},
	}
}
