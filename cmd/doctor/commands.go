package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/dgallion1/doctor/internal/config"
	"github.com/dgallion1/doctor/internal/generator"
	"github.com/dgallion1/doctor/internal/parser"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// app carries what every command needs. Tests build one around an
// in-memory filesystem.
type app struct {
	cfg    config.Config
	fs     afero.Fs
	stdout io.Writer
	stderr io.Writer
	log    *slog.Logger

	verbose bool
	quiet   bool
}

var errNotImplemented = errors.New("not implemented")

func newLogger(format string, w io.Writer, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "doctor",
		Short:         "Generate documentation for nodes from doctor config files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := a.cfg.Level()
			switch {
			case a.verbose:
				level = slog.LevelDebug
			case a.quiet:
				level = slog.LevelError
			}
			a.log = newLogger(a.cfg.LogFormat, a.stderr, level)
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log debug output")
	root.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "Only log errors")
	root.MarkFlagsMutuallyExclusive("verbose", "quiet")

	root.AddCommand(newGenCmd(a), newInitCmd(a), newVerifyCmd(a))
	return root
}

// execute runs the command tree for args. A failure is logged once here;
// commands only return it.
func (a *app) execute(ctx context.Context, args []string) error {
	root := newRootCmd(a)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err != nil {
		// Flag errors can fail before the logger is set up.
		if a.log == nil {
			a.log = newLogger(a.cfg.LogFormat, a.stderr, a.cfg.Level())
		}
		a.log.Error("command failed", "error", err)
	}
	return err
}

func typeNames[T ~string](types []T) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return strings.Join(names, "|")
}

func newVerifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "verify [source_dir]",
		Short: "Check node configs against their sources (not implemented)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("verify: %w", errNotImplemented)
		},
	}
}

func newInitCmd(a *app) *cobra.Command {
	var (
		dir   string
		force bool
	)
	cmd := &cobra.Command{
		Use:   "init <node_name>",
		Short: "Create a starter <node_name>.doctor.toml config",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInit(dir, args[0], force)
		},
	}
	cmd.Flags().StringVar(&dir, "dir", ".", "Directory to create the config in")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config")
	return cmd
}

func newGenCmd(a *app) *cobra.Command {
	var f genFlags
	cmd := &cobra.Command{
		Use:   "gen <source_dir>",
		Short: "Generate documentation for every node config under source_dir",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGen(cmd.Context(), args[0], f)
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&f.destDir, "dest-dir", "d", ".", "Directory to place generated docs in")
	flags.BoolVarP(&f.recurse, "recurse", "r", false, "Recursively search directories for more configs")
	flags.BoolVar(&f.readme, "readme", false, "Create an index document that links to the other documents")
	flags.StringVar(&f.docType, "doc-type", string(generator.TypeMarkdown), "Type of document to generate ("+typeNames(generator.Types)+")")
	flags.StringVar(&f.configType, "config-type", string(parser.TypeTOML), "Config format to read ("+typeNames(parser.Types)+")")
	flags.IntVarP(&f.jobs, "jobs", "j", a.cfg.Jobs, "Configs to process at once within a directory")
	flags.BoolVar(&f.keepGoing, "keep-going", a.cfg.KeepGoing, "Skip configs that fail instead of stopping")
	return cmd
}
