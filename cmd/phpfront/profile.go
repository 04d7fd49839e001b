package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"phpfront/internal/prof"
)

// setupProfiling starts the profilers requested by the persistent
// --cpu-profile, --mem-profile and --runtime-trace flags. The returned
// cleanup is safe to call more than once.
func setupProfiling(cmd *cobra.Command, log *zap.Logger) (func(), error) {
	flags := cmd.Flags()
	var opts prof.Options
	for _, f := range []struct {
		name string
		dst  *string
	}{
		{"cpu-profile", &opts.CPU},
		{"mem-profile", &opts.Mem},
		{"runtime-trace", &opts.Trace},
	} {
		v, err := flags.GetString(f.name)
		if err != nil {
			return nil, fmt.Errorf("failed to get %s flag: %w", f.name, err)
		}
		*f.dst = v
	}
	if !opts.Enabled() {
		return func() {}, nil
	}

	session, err := prof.Start(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to start profiling: %w", err)
	}
	log.Debug("profiling started",
		zap.String("cpu", opts.CPU), zap.String("mem", opts.Mem), zap.String("trace", opts.Trace))
	return func() {
		if err := session.Stop(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "failed to write profiles: %v\n", err)
		}
	}, nil
}
