package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docdex/docdex/internal/check"
	"github.com/docdex/docdex/internal/pipeline"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <directory>",
		Short: "Audit a design tree for documents the index would drop",
		Long: `check runs the same scan and classification as the index build but
writes findings instead of an index: documents that would be skipped,
why they are skipped, and structural oddities such as duplicate
top-level headings or front matter that disagrees with the body.

Errors mark documents the index silently drops; warnings are advisory.
The exit code is 1 when any error-level finding exists.`,
		Args: cobra.ArbitraryArgs,
		RunE: runCheck,
	}
	cmd.Flags().Bool("json", false, "emit findings as JSON")
	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	dir, err := resolveDir(cmd, args)
	if err != nil {
		return err
	}
	cfg, err := resolveConfig(cmd, dir)
	if err != nil {
		return err
	}

	log := newLogger(cmd.ErrOrStderr(), cfg.Verbose)
	problems, rep, err := check.Run(cmd.Context(), pipeline.Config{
		Root:     dir,
		Out:      cfg.Out,
		Workers:  cfg.Workers,
		Excludes: cfg.Excludes,
	}, log)
	if err != nil {
		return err
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(struct {
			Scanned  int             `json:"scanned"`
			Indexed  int             `json:"indexed"`
			Problems []check.Problem `json:"problems"`
		}{rep.Scanned, len(rep.Documents), problems}); err != nil {
			return err
		}
	} else {
		for _, p := range problems {
			fmt.Fprintf(stdout, "%s: %s: %s\n", p.Path, p.Severity, p.Message)
		}
		fmt.Fprintf(stdout, "checked %d files: %d indexed, %d findings\n",
			rep.Scanned, len(rep.Documents), len(problems))
	}

	if check.HasErrors(problems) {
		return errReported
	}
	return nil
}
