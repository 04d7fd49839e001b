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

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] <file.php|directory>",
		Short: "Parse a PHP source file or directory and output AST",
		Long:  `Parse analyzes a PHP source file or every PHP file in a directory and outputs their syntax trees`,
		Args:  cobra.ExactArgs(1),
		RunE:  runParse,
	}
	cmd.Flags().String("format", "tree", "output format (tree|json)")
	cmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "tree" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
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

	// Проверяем, файл это или директория
	st, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	out, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	prettyOpts := diagfmt.PrettyOpts{
		Color:   s.useColor(stderr),
		Context: 2,
	}
	timer := observ.NewTimer()

	if !st.IsDir() {
		// Парсинг одного файла
		phase := timer.Begin("parse")
		result, err := driver.Parse(filePath, s.opts)
		if err != nil {
			return fmt.Errorf("parsing failed: %w", err)
		}
		timer.End(phase, fmt.Sprintf("stmts=%d", len(result.Program.Statements)))

		if result.Bag.Len() > 0 {
			diagfmt.Pretty(stderr, result.Bag, result.FileSet, prettyOpts)
		}
		switch format {
		case "json":
			err = diagfmt.FormatASTJSON(out, result.Program)
		default:
			err = diagfmt.FormatASTPretty(out, result.Program, result.FileSet, diagfmt.PathModeAuto)
		}
		if err != nil {
			return err
		}
		if s.timings {
			fmt.Fprint(stderr, timer.Summary())
		}
		return nil
	}

	// Парсинг директории
	phase := timer.Begin("parse_dir")
	fs, _, results, err := driver.ParseDir(cmd.Context(), filePath, s.opts)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	timer.End(phase, fmt.Sprintf("files=%d", len(results)))

	// результаты уже отсортированы по пути
	for _, r := range results {
		if r.Bag != nil && r.Bag.Len() > 0 {
			diagfmt.Pretty(stderr, r.Bag, fs, prettyOpts)
		}
	}

	switch format {
	case "json":
		output := make(map[string]diagfmt.ASTNodeOutput, len(results))
		for _, r := range results {
			if r.Program == nil {
				continue
			}
			output[fs.Get(r.FileID).FormatPath(source.PathRelative, fs.BaseDir())] = diagfmt.BuildASTOutput(r.Program)
		}
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(output); err != nil {
			return fmt.Errorf("failed to encode AST output: %w", err)
		}
	default:
		first := true
		for _, r := range results {
			if r.Program == nil {
				continue
			}
			if !first {
				fmt.Fprintln(out)
			}
			first = false
			if err := diagfmt.FormatASTPretty(out, r.Program, fs, diagfmt.PathModeRelative); err != nil {
				return err
			}
		}
	}

	if s.timings {
		fmt.Fprint(stderr, timer.Summary())
	}
	return nil
}
