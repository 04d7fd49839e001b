package version

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Version information for the phpfront CLI.
// These variables can be overridden at build time via -ldflags.

var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)
)

// Colored renders Version with each numeric component in its own colour.
// Anything that is not MAJOR.MINOR.PATCH[-suffix] is returned unchanged.
func Colored(enabled bool) string {
	core, suffix, _ := strings.Cut(Version, "-")
	parts := strings.Split(core, ".")
	if !enabled || len(parts) != 3 {
		return Version
	}
	out := paint(versionMajorColor, parts[0]) + "." +
		paint(versionMinorColor, parts[1]) + "." +
		paint(versionPatchColor, parts[2])
	if suffix != "" {
		out += "-" + suffix
	}
	return out
}

func paint(c *color.Color, s string) string {
	// копия, чтобы EnableColor не менял общие цвета
	cc := *c
	cc.EnableColor()
	return cc.Sprint(s)
}

// Summary is the multi-line text printed by "phpfront version".
func Summary(colored bool, phpVersion string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "phpfront %s\n", Colored(colored))
	if phpVersion != "" {
		fmt.Fprintf(&b, "target PHP: %s\n", phpVersion)
	}
	if GitCommit != "" {
		fmt.Fprintf(&b, "commit: %s\n", GitCommit)
	}
	if GitMessage != "" {
		fmt.Fprintf(&b, "message: %s\n", GitMessage)
	}
	if BuildDate != "" {
		fmt.Fprintf(&b, "built: %s\n", BuildDate)
	}
	return b.String()
}
