// Command docdex generates a Markdown index for a tree of design
// documents. The default invocation scans a directory and rewrites its
// INDEX.md; subcommands audit the tree and serve the index over HTTP.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/docdex/docdex/internal/config"
	"github.com/docdex/docdex/internal/pipeline"
)

// stdout is swapped by tests; everything else goes to stderr.
var stdout io.Writer = os.Stdout

// errReported means the messages are already on stderr and main only
// needs the exit code.
var errReported = errors.New("reported")

func main() {
	root := newRootCmd()
	root.SetArgs(rewriteHelpShorthand(os.Args[1:]))

	if err := root.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docdex <directory>",
		Short: "Generate a Markdown index for a tree of design documents",
		Long: `docdex scans a directory tree for Markdown design documents, classifies
them by their meta/accepted/proposed ancestor directory, extracts title,
owners and draft status from each file's leading lines, and writes a
sorted INDEX.md. The generated file is deterministic, so it can be
committed and diffed.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runIndex,
	}

	// Usage and help belong on stderr; stdout stays clean for command
	// output such as check findings.
	cmd.SetOut(os.Stderr)
	cmd.SetErr(os.Stderr)

	pf := cmd.PersistentFlags()
	pf.StringP("out", "o", "", "output file path (default <directory>/INDEX.md)")
	pf.BoolP("verbose", "v", false, "log per-file skip diagnostics")
	pf.StringArray("exclude", nil, "glob pattern to skip, may be repeated (e.g. '**/archive/**')")
	pf.Int("workers", 4, "parallel parse workers")
	pf.String("config", "", "config file (default <directory>/docdex.yml when present)")

	cmd.AddCommand(newCheckCmd(), newServeCmd(), newVersionCmd())
	return cmd
}

func runIndex(cmd *cobra.Command, args []string) error {
	dir, err := resolveDir(cmd, args)
	if err != nil {
		return err
	}
	cfg, err := resolveConfig(cmd, dir)
	if err != nil {
		return err
	}

	log := newLogger(cmd.ErrOrStderr(), cfg.Verbose)
	pipe := pipeline.New(pipeline.Config{
		Root:     dir,
		Out:      cfg.Out,
		Workers:  cfg.Workers,
		Excludes: cfg.Excludes,
	}, log)

	_, err = pipe.Run(cmd.Context())
	return err
}

// resolveDir validates the positional arguments shared by the root
// command and its subcommands: exactly one existing directory.
func resolveDir(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 {
		return "", errors.New("must specify a directory")
	}
	if len(args) > 1 {
		for _, a := range args[1:] {
			fmt.Fprintf(cmd.ErrOrStderr(), "error: unrecognized argument %s\n", a)
		}
		return "", errReported
	}

	dir := args[0]
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("directory '%s' does not exist", dir)
	}
	return dir, nil
}

// resolveConfig layers settings: defaults, environment, config file,
// then flags. A relative output path from the config file resolves
// against the scanned directory, since that is where the file lives;
// flag and environment paths stay relative to the working directory.
func resolveConfig(cmd *cobra.Command, dir string) (config.Config, error) {
	cfg := config.Load()

	path, _ := cmd.Flags().GetString("config")
	explicit := path != ""
	if !explicit {
		candidate := filepath.Join(dir, config.DefaultFileName)
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
		}
	}
	if path != "" {
		before := cfg.Out
		if err := cfg.ApplyFile(path); err != nil {
			return cfg, err
		}
		if cfg.Out != before && cfg.Out != "" && !filepath.IsAbs(cfg.Out) {
			cfg.Out = filepath.Join(dir, cfg.Out)
		}
	}

	f := cmd.Flags()
	if f.Changed("out") {
		cfg.Out, _ = f.GetString("out")
	}
	if f.Changed("verbose") {
		cfg.Verbose, _ = f.GetBool("verbose")
	}
	if f.Changed("workers") {
		cfg.Workers, _ = f.GetInt("workers")
	}
	if f.Changed("exclude") {
		cfg.Excludes, _ = f.GetStringArray("exclude")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// rewriteHelpShorthand maps the legacy -? help switch onto --help
// before flag parsing sees it.
func rewriteHelpShorthand(args []string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		if a == "-?" {
			a = "--help"
		}
		out[i] = a
	}
	return out
}
