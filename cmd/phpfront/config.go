package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"phpfront/internal/phpver"
)

const configFileName = "phpfront.toml"

type projectConfig struct {
	Parse parseConfig `toml:"parse"`
	Files filesConfig `toml:"files"`
	Cache cacheConfig `toml:"cache"`
}

type parseConfig struct {
	PHPVersion     phpver.Version `toml:"php_version"`
	MaxDiagnostics int            `toml:"max_diagnostics"`
	Jobs           int            `toml:"jobs"`
	ShortOpenTag   bool           `toml:"short_open_tag"`
}

type filesConfig struct {
	Extensions []string `toml:"extensions"`
	Exclude    []string `toml:"exclude"`
}

type cacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// loadedConfig keeps the decode metadata so callers can tell an explicit
// "jobs = 0" from a missing key.
type loadedConfig struct {
	Path   string
	Config projectConfig
	meta   toml.MetaData
}

func (c *loadedConfig) defined(key ...string) bool {
	return c != nil && c.meta.IsDefined(key...)
}

func findConfig(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// resolveConfig loads explicit, or the nearest phpfront.toml above startDir.
// No config file is not an error: the result is nil.
func resolveConfig(explicit, startDir string) (*loadedConfig, error) {
	path := explicit
	if path == "" {
		found, ok, err := findConfig(startDir)
		if err != nil || !ok {
			return nil, err
		}
		path = found
	}
	return loadConfig(path)
}

func loadConfig(path string) (*loadedConfig, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("parse", "max_diagnostics") && cfg.Parse.MaxDiagnostics < 0 {
		return nil, fmt.Errorf("%s: [parse].max_diagnostics must not be negative", path)
	}
	if meta.IsDefined("parse", "jobs") && cfg.Parse.Jobs < 0 {
		return nil, fmt.Errorf("%s: [parse].jobs must not be negative", path)
	}
	for _, ext := range cfg.Files.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return nil, fmt.Errorf("%s: [files].extensions entry %q must start with '.'", path, ext)
		}
	}
	// относительный каталог кеша считается от файла конфигурации
	if dir := cfg.Cache.Dir; dir != "" && !filepath.IsAbs(dir) {
		cfg.Cache.Dir = filepath.Join(filepath.Dir(path), dir)
	}
	return &loadedConfig{Path: path, Config: cfg, meta: meta}, nil
}
