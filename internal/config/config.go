package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/eugenenazirov/squadconv/internal/stack"
)

// DefaultSource is the base name of the mandatory settings source.
const DefaultSource = "default"

var (
	// ErrSourceNotFound indicates no settings file with a supported extension exists.
	ErrSourceNotFound = errors.New("settings source not found")
	// ErrMissingSetting indicates a required key is absent after merging all sources.
	ErrMissingSetting = errors.New("required setting missing")
)

// requiredKeys must be present in the merged key space.
var requiredKeys = []string{
	"logging.log_dir",
	"logging.verbosity",
}

// Settings is the merged runtime configuration for one invocation.
type Settings struct {
	Logging Logging `koanf:"logging"`
}

// Logging configures the log sink.
type Logging struct {
	// LogDir may reference environment variables, see ResolveLogDir.
	LogDir    string `koanf:"log_dir"`
	Verbosity string `koanf:"verbosity"`
}

// source ties a supported file extension to its koanf parser.
type source struct {
	ext    string
	parser koanf.Parser
}

// sources are probed in order; the first existing file wins.
var sources = []source{
	{ext: ".yaml", parser: yaml.Parser()},
	{ext: ".yml", parser: yaml.Parser()},
	{ext: ".json", parser: json.Parser()},
}

// Load reads the default source from dir and, when tag is set, merges the
// source named after the stack on top of it. Keys from the stack source win.
// A missing stack source is skipped; a malformed one is an error.
func Load(dir string, tag *stack.Stack) (Settings, error) {
	k := koanf.New(".")

	if err := loadSource(k, dir, DefaultSource); err != nil {
		return Settings{}, fmt.Errorf("cannot read default settings from dir %q: %w", dir, err)
	}

	if tag != nil {
		err := loadSource(k, dir, tag.String())
		if err != nil && !errors.Is(err, ErrSourceNotFound) {
			return Settings{}, fmt.Errorf("cannot read stack %q settings from dir %q: %w", tag.String(), dir, err)
		}
	}

	for _, key := range requiredKeys {
		if !k.Exists(key) {
			return Settings{}, fmt.Errorf("cannot deserialize settings: %w: %s", ErrMissingSetting, key)
		}
	}

	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		return Settings{}, fmt.Errorf("cannot deserialize settings: %w", err)
	}

	return s, nil
}

// loadSource merges the first existing dir/name.<ext> into k.
func loadSource(k *koanf.Koanf, dir, name string) error {
	path, parser, err := findSource(dir, name)
	if err != nil {
		return err
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func findSource(dir, name string) (string, koanf.Parser, error) {
	for _, src := range sources {
		path := filepath.Join(dir, name+src.ext)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, src.parser, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", nil, fmt.Errorf("stat %s: %w", path, err)
		}
	}
	return "", nil, fmt.Errorf("%w: %s", ErrSourceNotFound, filepath.Join(dir, name))
}
