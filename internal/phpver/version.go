// Package phpver models the target PHP version a file is checked against.
// The version never changes how source is parsed; it only decides whether a
// construct gets a compatibility diagnostic.
package phpver

import (
	"fmt"
	"strings"
)

// Version is an ordered PHP release. Later releases compare greater.
type Version uint8

const (
	PHP80 Version = iota + 1
	PHP81
	PHP82
	PHP83
	PHP84
	PHP85

	// Latest accepts every known feature.
	Latest = PHP85
)

var names = map[Version]string{
	PHP80: "8.0",
	PHP81: "8.1",
	PHP82: "8.2",
	PHP83: "8.3",
	PHP84: "8.4",
	PHP85: "8.5",
}

// All lists every known version in ascending order.
func All() []Version {
	return []Version{PHP80, PHP81, PHP82, PHP83, PHP84, PHP85}
}

func (v Version) String() string {
	if s, ok := names[v]; ok {
		return s
	}
	return fmt.Sprintf("Version(%d)", uint8(v))
}

func (v Version) Valid() bool {
	return v >= PHP80 && v <= PHP85
}

// Parse accepts "8.2", "php8.2", "82" or "latest".
func Parse(s string) (Version, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "php")
	if s == "latest" || s == "" {
		return Latest, nil
	}
	for v, name := range names {
		if s == name || s == strings.ReplaceAll(name, ".", "") {
			return v, nil
		}
	}
	return 0, fmt.Errorf("unknown PHP version %q (expected 8.0-8.5 or latest)", s)
}

// Set implements pflag.Value so the version can be bound to a CLI flag.
func (v *Version) Set(s string) error {
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func (v *Version) Type() string { return "version" }

// UnmarshalText lets TOML configs carry versions as strings.
func (v *Version) UnmarshalText(text []byte) error {
	return v.Set(string(text))
}

func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}
