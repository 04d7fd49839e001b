package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"phpfront/internal/phpver"
	"phpfront/internal/version"
)

type versionPayload struct {
	Tool        string   `json:"tool"`
	Version     string   `json:"version"`
	PHPVersion  string   `json:"php_version"`
	PHPVersions []string `json:"supported_php_versions"`
	GitCommit   string   `json:"git_commit,omitempty"`
	GitMessage  string   `json:"git_message,omitempty"`
	BuildDate   string   `json:"build_date,omitempty"`
}

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show phpfront build information",
		Args:  cobra.NoArgs,
		RunE:  runVersion,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func runVersion(cmd *cobra.Command, _ []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	out := cmd.OutOrStdout()
	switch strings.ToLower(format) {
	case "pretty":
		fmt.Fprint(out, version.Summary(s.useColor(out), s.opts.Version.String()))
		return nil
	case "json":
		return renderVersionJSON(out, s.opts.Version)
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
}

func renderVersionJSON(out io.Writer, target phpver.Version) error {
	payload := versionPayload{
		Tool:       "phpfront",
		Version:    valueOrUnknown(strings.TrimSpace(version.Version)),
		PHPVersion: target.String(),
		GitCommit:  strings.TrimSpace(version.GitCommit),
		GitMessage: strings.TrimSpace(version.GitMessage),
		BuildDate:  strings.TrimSpace(version.BuildDate),
	}
	for _, v := range phpver.All() {
		payload.PHPVersions = append(payload.PHPVersions, v.String())
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func valueOrUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
