package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"phpfront/internal/diag"
	"phpfront/internal/driver"
	"phpfront/internal/fix"
)

func newFixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix [flags] <file.php|directory>",
		Short: "Apply suggested fixes to a PHP source file or directory",
		Long:  "Run syntax diagnostics, surface the suggested fixes, and apply them according to the chosen strategy.",
		Args:  cobra.ExactArgs(1),
		RunE:  runFix,
	}
	cmd.Flags().Bool("all", false, "apply every suggested fix")
	cmd.Flags().Bool("once", false, "apply the first suggested fix (default)")
	cmd.Flags().String("id", "", "apply the fix with a specific identifier")
	cmd.Flags().Bool("dry-run", false, "report what would change without writing files")
	cmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	return cmd
}

func readFixOptions(cmd *cobra.Command) (fix.ApplyOptions, error) {
	flags := cmd.Flags()
	applyAll, err := flags.GetBool("all")
	if err != nil {
		return fix.ApplyOptions{}, err
	}
	applyOnce, err := flags.GetBool("once")
	if err != nil {
		return fix.ApplyOptions{}, err
	}
	targetID, err := flags.GetString("id")
	if err != nil {
		return fix.ApplyOptions{}, err
	}

	if targetID != "" && (applyAll || applyOnce) {
		return fix.ApplyOptions{}, fmt.Errorf("--id cannot be combined with --all or --once")
	}
	if applyAll && applyOnce {
		return fix.ApplyOptions{}, fmt.Errorf("--all and --once are mutually exclusive")
	}

	opts := fix.ApplyOptions{Mode: fix.ApplyModeOnce, TargetID: targetID}
	switch {
	case targetID != "":
		opts.Mode = fix.ApplyModeID
	case applyAll:
		opts.Mode = fix.ApplyModeAll
	}
	return opts, nil
}

func runFix(cmd *cobra.Command, args []string) error {
	target := args[0]

	opts, err := readFixOptions(cmd)
	if err != nil {
		return err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	stopProfiling, err := setupProfiling(cmd, s.log)
	if err != nil {
		return err
	}
	defer stopProfiling()

	fs, results, err := driver.Diagnose(cmd.Context(), target, driver.DiagnoseOptions{
		Options: s.opts,
		Stage:   driver.DiagnoseStageSyntax,
	})
	if err != nil {
		return fmt.Errorf("fix: diagnose failed: %w", err)
	}

	var diagnostics []diag.Diagnostic
	for _, r := range results {
		if r.Bag == nil {
			continue
		}
		r.Bag.Sort()
		diagnostics = append(diagnostics, r.Bag.Items()...)
	}

	res, applyErr := fix.Apply(fs, diagnostics, opts)
	if applyErr == nil && !dryRun {
		if err := fix.WriteChanges(fs, res.FileChanges); err != nil {
			return fmt.Errorf("fix: %w", err)
		}
		s.log.Info("fixes written", zap.Int("files", len(res.FileChanges)), zap.Int("fixes", len(res.Applied)))
	}
	return reportFixes(cmd.OutOrStdout(), res, applyErr, dryRun)
}

func reportFixes(w io.Writer, res *fix.ApplyResult, applyErr error, dryRun bool) error {
	if res == nil {
		return applyErr
	}

	if len(res.Applied) > 0 {
		verb := "Applied"
		if dryRun {
			verb = "Would apply"
		}
		fmt.Fprintf(w, "%s %d fix(es):\n", verb, len(res.Applied))
		for _, item := range res.Applied {
			location := item.PrimaryPath
			if location == "" {
				location = "(unknown location)"
			}
			fmt.Fprintf(w, "  %s [%s] %s (%d edits)\n", item.Title, item.ID, location, item.EditCount)
		}
	}

	if len(res.FileChanges) > 0 {
		header := "Updated files:"
		if dryRun {
			header = "Files that would change:"
		}
		fmt.Fprintln(w, header)
		for _, change := range res.FileChanges {
			fmt.Fprintf(w, "  %s (%d edits)\n", change.Path, change.EditCount)
		}
	}

	if len(res.Skipped) > 0 {
		fmt.Fprintln(w, "Skipped fixes:")
		for _, skip := range res.Skipped {
			id := skip.ID
			if id == "" {
				id = "(unnamed)"
			}
			if skip.Title != "" {
				fmt.Fprintf(w, "  %s [%s]: %s\n", skip.Title, id, skip.Reason)
			} else {
				fmt.Fprintf(w, "  [%s]: %s\n", id, skip.Reason)
			}
		}
	}

	if applyErr != nil {
		if errors.Is(applyErr, fix.ErrNoFixes) {
			fmt.Fprintln(w, "No applicable fixes found.")
			return nil
		}
		return applyErr
	}
	return nil
}
