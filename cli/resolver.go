package cli

import (
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/snip/preset"
)

// fileConfig models the YAML configuration file.
//
// The flags mapping provides default values for command-line flags, keyed
// by flag name with either hyphens or underscores:
//
//	editor: nvim
//	flags:
//	  log_level: debug
//	  log_pretty: false
//	presets:
//	  - name: branch
//	    description: current git branch
//	    value: env("GIT_BRANCH")
//
// Command-line flags override config file values.
type fileConfig struct {
	Editor  string              `yaml:"editor,omitempty"`
	Flags   map[string]any      `yaml:"flags,omitempty"`
	Presets []preset.Definition `yaml:"presets,omitempty"`
}

// loadConfig reads the configuration file at path. A missing file is not
// an error and yields the zero configuration.
func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}

		return cfg, err
	}

	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return fileConfig{}, err
	}

	return cfg, nil
}

// resolve is a [kong.ConfigurationLoader] that reads flag defaults from
// the flags mapping of the YAML configuration file.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve, "/path/to/config.yaml")
func resolve(r io.Reader) (kong.Resolver, error) {
	var cfg fileConfig

	err := yaml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		// Empty or malformed file: fall back to flag defaults.
		return flagValues{}, nil
	}

	return flagValues(cfg.Flags), nil
}

// flagValues implements [kong.Resolver] over the config file flags mapping.
type flagValues map[string]any

// Validate implements [kong.Resolver].
func (r flagValues) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (r flagValues) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	// Kong flags use hyphens (e.g., "log-level") but the config file
	// may use underscores. Try both forms.
	for _, name := range []string{
		flag.Name,
		strings.ReplaceAll(flag.Name, "-", "_"),
	} {
		if value, ok := r[name]; ok {
			return flagValue(value), nil
		}
	}

	// Not found: let Kong use defaults.
	return nil, nil //nolint:nilnil
}

// flagValue converts decoded YAML scalars to the string form Kong parses.
func flagValue(value any) any {
	switch v := value.(type) {
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return value
	}
}
