package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"phpfront/internal/diagfmt"
	"phpfront/internal/driver"
	"phpfront/internal/observ"
	"phpfront/internal/source"
)

func newTokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] <file.php|directory>",
		Short: "Tokenize a PHP source file or directory",
		Long:  `Tokenize breaks a PHP source file, or every PHP file in a directory, into its gapless token stream, trivia included`,
		Args:  cobra.ExactArgs(1),
		RunE:  runTokenize,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	cmd.Flags().Bool("trivia", false, "include whitespace and comments in pretty output")
	cmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	return cmd
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	// Получаем флаги
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	withTrivia, err := cmd.Flags().GetBool("trivia")
	if err != nil {
		return fmt.Errorf("failed to get trivia flag: %w", err)
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

	st, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}
	if st.IsDir() {
		return tokenizeDir(cmd, s, filePath, format, withTrivia)
	}

	timer := observ.NewTimer()
	phase := timer.Begin("tokenize")
	result, err := driver.Tokenize(filePath, s.opts)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	timer.End(phase, fmt.Sprintf("tokens=%d", len(result.Tokens)))

	// Выводим диагностику в stderr, если есть
	stderr := cmd.ErrOrStderr()
	if result.Bag.Len() > 0 {
		diagfmt.Pretty(stderr, result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:   s.useColor(stderr),
			Context: 2,
		})
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		err = diagfmt.FormatTokensJSON(out, result.Tokens)
	default:
		err = diagfmt.FormatTokensPretty(out, result.Tokens, result.FileSet, withTrivia)
	}
	if err != nil {
		return err
	}
	if s.timings {
		fmt.Fprint(stderr, timer.Summary())
	}
	return nil
}

func tokenizeDir(cmd *cobra.Command, s *settings, dir, format string, withTrivia bool) error {
	timer := observ.NewTimer()
	phase := timer.Begin("tokenize_dir")
	fs, results, err := driver.TokenizeDir(cmd.Context(), dir, s.opts)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	timer.End(phase, fmt.Sprintf("files=%d", len(results)))

	out, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	prettyOpts := diagfmt.PrettyOpts{Color: s.useColor(stderr), Context: 2}
	for _, r := range results {
		if r.Bag != nil && r.Bag.Len() > 0 {
			diagfmt.Pretty(stderr, r.Bag, fs, prettyOpts)
		}
	}

	switch format {
	case "json":
		output := make(map[string][]diagfmt.TokenOutput, len(results))
		for _, r := range results {
			if r.Tokens == nil {
				continue
			}
			output[fs.Get(r.FileID).FormatPath(source.PathRelative, fs.BaseDir())] = diagfmt.BuildTokensOutput(r.Tokens)
		}
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(output); err != nil {
			return fmt.Errorf("failed to encode token output: %w", err)
		}
	default:
		for i, r := range results {
			if r.Tokens == nil {
				continue
			}
			if i > 0 {
				fmt.Fprintln(out)
			}
			if !s.quiet {
				fmt.Fprintf(out, "== %s ==\n", fs.Get(r.FileID).FormatPath(source.PathRelative, fs.BaseDir()))
			}
			if err := diagfmt.FormatTokensPretty(out, r.Tokens, fs, withTrivia); err != nil {
				return err
			}
		}
	}
	if s.timings {
		fmt.Fprint(stderr, timer.Summary())
	}
	return nil
}
