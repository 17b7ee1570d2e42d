package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"

	"github.com/vango-dev/widgetdom/internal/config"
	"github.com/vango-dev/widgetdom/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// globals holds state shared by every subcommand after flag parsing.
type globals struct {
	configDir string
	logLevel  string
	noColor   bool

	cfg    *config.Config
	logger *slog.Logger
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the CLI and returns the process exit code.
func execute(args []string, stdout, stderr io.Writer) int {
	g := &globals{}
	cmd := g.rootCmd(stdout, stderr)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		g.printError(stderr, err)
		return 1
	}
	return 0
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	return (&globals{}).rootCmd(stdout, stderr)
}

func (g *globals) rootCmd(stdout, stderr io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "widgetdom",
		Short: "Inspect and exercise the widget DOM",
		Long: `widgetdom maps a virtual DOM onto native widget trees.

This tool lists registered elements, builds a demo tree with the
bundled widget set, and serves a live inspector for it.

Settings are read from widgetdom.yaml or widgetdom.json in the
config directory. A .env file in the working directory is loaded
first, so YAML settings may reference its variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.setup(stderr)
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.PersistentFlags().StringVarP(&g.configDir, "config", "c", ".", "Directory holding widgetdom.yaml or widgetdom.json")
	rootCmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Override log.level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&g.noColor, "no-color", false, "Disable coloured error output")

	rootCmd.AddCommand(
		tagsCmd(g),
		demoCmd(g),
		serveCmd(g),
		versionCmd(),
	)
	return rootCmd
}

// setup loads the configuration and builds the logger.
func (g *globals) setup(stderr io.Writer) error {
	if g.noColor {
		errors.DisableColors()
	}

	cfg, err := config.LoadOrDefault(g.configDir)
	if err != nil {
		return err
	}
	g.cfg = cfg
	if g.logLevel != "" {
		cfg.Log.Level = g.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	opts := &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}
	var handler slog.Handler
	if cfg.Log.Format == config.FormatJSON {
		handler = slog.NewJSONHandler(stderr, opts)
	} else {
		handler = slog.NewTextHandler(stderr, opts)
	}
	g.logger = slog.New(handler)
	slog.SetDefault(g.logger)

	if path := cfg.Path(); path != "" {
		g.logger.Debug("configuration loaded", "path", path)
	}
	return nil
}

// printError reports a failed command. With log.format=json the error is
// written as one JSON line so log collectors can parse it.
func (g *globals) printError(w io.Writer, err error) {
	if g.cfg != nil && g.cfg.Log.Format == config.FormatJSON {
		errors.PrintErrorJSON(w, err, "W033")
		return
	}
	errors.PrintError(w, err)
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}
