package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"phpfront/internal/phpver"
	"phpfront/internal/version"
)

// exitError carries a non-zero exit status without an error message,
// e.g. "diag found errors".
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "phpfront",
		Short:         "PHP frontend: tokenizer, parser and syntax diagnostics",
		Long:          `phpfront lexes and parses PHP 8.x sources into an error-annotated AST and reports syntax and version-compatibility diagnostics`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	// Глобальные флаги
	target := phpver.Latest
	pf := rootCmd.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics per file (0 = unlimited)")
	pf.Var(&target, "php-version", "target PHP version (8.0-8.5 or latest)")
	pf.Bool("short-open-tag", false, "treat '<?' as an opening tag")
	pf.String("config", "", "path to phpfront.toml (default: search upward from the working directory)")
	pf.Bool("verbose", false, "log driver activity to stderr")
	pf.String("cpu-profile", "", "write a CPU profile to this file")
	pf.String("mem-profile", "", "write a heap profile to this file on exit")
	pf.String("runtime-trace", "", "write a runtime execution trace to this file")

	rootCmd.AddCommand(newTokenizeCmd())
	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newDiagCmd())
	rootCmd.AddCommand(newFixCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	os.Exit(exitCode(err, os.Stderr))
}

// exitCode prints err (unless it only carries a status) and maps it to the
// process exit status.
func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	fmt.Fprintf(stderr, "error: %v\n", err)
	return 1
}
