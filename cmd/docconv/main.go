// Command docconv converts documents between formats, merges PDFs,
// serves the conversion API over HTTP and watches folders for new files.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	docconv "github.com/porticus-lab/go-docconv"
	"github.com/porticus-lab/go-docconv/internal/config"
	"github.com/porticus-lab/go-docconv/internal/logging"
)

// version is set at build time via ldflags.
var version = "dev"

// app carries the state shared by all subcommands of one invocation.
type app struct {
	v      *viper.Viper
	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "docconv",
		Short: "Convert documents between formats",
		Long: `docconv converts a single document to pdf, txt, html, png or jpg, with
docx and zip available as labelled stand-ins. It can also merge PDFs,
generate a task list PDF, serve the same operations over HTTP and watch a
folder for files to convert.

Configuration is read from docconv.yaml (current directory or
~/.config/docconv), DOCCONV_* environment variables, a .env file and flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "config file (default: ./docconv.yaml or ~/.config/docconv/docconv.yaml)")
	pf.Bool("debug", false, "enable debug logging")
	pf.String("page-size", config.DefaultPageSize, "page size for generated PDFs: a3, a4, a5, letter, legal")
	pf.String("orientation", config.DefaultOrientation, "page orientation: portrait or landscape")
	pf.String("pdf-text", config.DefaultPDFTextMode, "how text is read from PDF input: heuristic or parsed")
	pf.Bool("chrome", false, "render html→pdf with headless Chrome")
	a.bind("debug", pf.Lookup("debug"))
	a.bind("page.size", pf.Lookup("page-size"))
	a.bind("page.orientation", pf.Lookup("orientation"))
	a.bind("pdf.text_mode", pf.Lookup("pdf-text"))
	a.bind("chrome.enabled", pf.Lookup("chrome"))

	root.AddCommand(
		newConvertCmd(a),
		newMergeCmd(a),
		newTaskListCmd(a),
		newFormatsCmd(),
		newInfoCmd(),
		newExtractCmd(),
		newServeCmd(a),
		newWatchCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func (a *app) init(cmd *cobra.Command) error {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	cfgFile, _ := cmd.Flags().GetString("config")
	if cfgFile != "" {
		a.v.SetConfigFile(cfgFile)
	} else {
		a.v.SetConfigName("docconv")
		a.v.SetConfigType("yaml")
		a.v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			a.v.AddConfigPath(filepath.Join(home, ".config", "docconv"))
		}
	}
	if err := a.v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound || cfgFile != "" {
			return fmt.Errorf("reading config: %w", err)
		}
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := logging.New(cfg.Debug)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	a.logger = logger
	if used := a.v.ConfigFileUsed(); used != "" {
		logger.Debug("using config file", zap.String("path", used))
	}
	return nil
}

// bind ties a flag to a config key. Flag values win over file and
// environment only when the flag is set explicitly.
func (a *app) bind(key string, flag *pflag.Flag) {
	if err := a.v.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}

// dispatcher builds a Dispatcher from the loaded config. The returned
// function releases the Chrome renderer, if one was started.
func (a *app) dispatcher() (*docconv.Dispatcher, func(), error) {
	opts := a.cfg.DispatcherOptions(a.logger)
	if !a.cfg.Chrome.Enabled {
		return docconv.NewDispatcher(opts...), func() {}, nil
	}
	r, err := docconv.NewChromeRenderer(a.cfg.Chrome.Options()...)
	if err != nil {
		return nil, nil, err
	}
	opts = append(opts, docconv.WithHTMLRenderer(r))
	return docconv.NewDispatcher(opts...), func() { r.Close() }, nil
}
