package adapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tailscale/hujson"

	m "github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/model"
)

// ConfigFileName is the project config file looked up in the working directory.
const ConfigFileName = ".slpaa.json"

// Output modes.
const (
	OutputAuto   = "auto"
	OutputSimple = "simple"
	OutputTUI    = "tui"
)

var (
	// ErrConfigFileNotFound is returned when an explicit config file is missing.
	ErrConfigFileNotFound = errors.New("config file not found")
	// ErrConfigInvalid wraps every parse or validation failure.
	ErrConfigInvalid = errors.New("invalid config")
)

// Config holds all configuration options.
type Config struct {
	// MatchDegree overrides the match degree of every search model. Empty
	// keeps each model's own.
	MatchDegree   m.MatchDegree
	EntryIDDigits int
	Output        string
	// Corpora are the default corpus files. Relative entries are resolved
	// against the directory of the config file that lists them.
	Corpora []string
}

// ConfigSources tracks which config files were loaded.
type ConfigSources struct {
	Global  string
	Project string
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		EntryIDDigits: 4,
		Output:        OutputAuto,
	}
}

// LoadConfigInput selects where configuration is read from.
type LoadConfigInput struct {
	WorkDir    string
	ConfigPath string
	Env        []string
}

// fileConfig distinguishes absent keys from zero values.
type fileConfig struct {
	MatchDegree   *string  `json:"match_degree,omitempty"`
	EntryIDDigits *int     `json:"entry_id_digits,omitempty"`
	Output        *string  `json:"output,omitempty"`
	Corpora       []string `json:"corpora,omitempty"`
}

// LoadConfig layers, lowest first: defaults, the global user config, the
// project config (or the explicit ConfigPath instead).
func LoadConfig(in LoadConfigInput) (Config, ConfigSources, error) {
	cfg := DefaultConfig()

	var sources ConfigSources

	if path := globalConfigPath(in.Env); path != "" {
		fc, loaded, err := loadConfigFile(path, false)
		if err != nil {
			return Config{}, ConfigSources{}, err
		}

		if loaded {
			sources.Global = path
			cfg = mergeConfig(cfg, fc, filepath.Dir(path))
		}
	}

	path, mustExist := filepath.Join(in.WorkDir, ConfigFileName), false
	if in.ConfigPath != "" {
		path, mustExist = in.ConfigPath, true
		if !filepath.IsAbs(path) {
			path = filepath.Join(in.WorkDir, path)
		}
	}

	fc, loaded, err := loadConfigFile(path, mustExist)
	if err != nil {
		return Config{}, ConfigSources{}, err
	}

	if loaded {
		sources.Project = path
		cfg = mergeConfig(cfg, fc, filepath.Dir(path))
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, ConfigSources{}, fmt.Errorf("%w: %w", ErrConfigInvalid, err)
	}

	return cfg, sources, nil
}

// globalConfigPath is $XDG_CONFIG_HOME/slpaa/config.json, falling back to
// $HOME/.config/slpaa/config.json. A nil env reads the process environment.
func globalConfigPath(env []string) string {
	lookup := os.Getenv
	if env != nil {
		lookup = func(key string) string {
			for _, e := range env {
				if after, ok := strings.CutPrefix(e, key+"="); ok {
					return after
				}
			}

			return ""
		}
	}

	if xdg := lookup("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "slpaa", "config.json")
	}

	if home := lookup("HOME"); home != "" {
		return filepath.Join(home, ".config", "slpaa", "config.json")
	}

	return ""
}

func loadConfigFile(path string, mustExist bool) (fileConfig, bool, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is user-controlled
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if mustExist {
				return fileConfig{}, false, fmt.Errorf("%w: %s", ErrConfigFileNotFound, path)
			}

			return fileConfig{}, false, nil
		}

		return fileConfig{}, false, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	fc, err := parseConfig(data)
	if err != nil {
		return fileConfig{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, err)
	}

	return fc, true, nil
}

func parseConfig(data []byte) (fileConfig, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return fileConfig{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var fc fileConfig
	if err := json.Unmarshal(standardized, &fc); err != nil {
		return fileConfig{}, fmt.Errorf("invalid JSON: %w", err)
	}

	return fc, nil
}

func mergeConfig(base Config, overlay fileConfig, dir string) Config {
	if overlay.MatchDegree != nil {
		base.MatchDegree = m.MatchDegree(strings.ToLower(*overlay.MatchDegree))
	}

	if overlay.EntryIDDigits != nil {
		base.EntryIDDigits = *overlay.EntryIDDigits
	}

	if overlay.Output != nil {
		base.Output = *overlay.Output
	}

	if overlay.Corpora != nil {
		base.Corpora = make([]string, 0, len(overlay.Corpora))

		for _, p := range overlay.Corpora {
			if !filepath.IsAbs(p) {
				p = filepath.Join(dir, p)
			}

			base.Corpora = append(base.Corpora, p)
		}
	}

	return base
}

func validateConfig(cfg Config) error {
	if cfg.MatchDegree != "" {
		if _, err := m.ParseMatchDegree(string(cfg.MatchDegree)); err != nil {
			return err
		}
	}

	if cfg.EntryIDDigits < 0 {
		return fmt.Errorf("entry_id_digits must not be negative, got %d", cfg.EntryIDDigits)
	}

	switch cfg.Output {
	case OutputAuto, OutputSimple, OutputTUI:
	default:
		return fmt.Errorf("output must be %q, %q or %q, got %q", OutputAuto, OutputSimple, OutputTUI, cfg.Output)
	}

	return nil
}

// FormatConfig returns the config as indented JSON.
func FormatConfig(cfg Config) (string, error) {
	data, err := json.MarshalIndent(struct {
		MatchDegree   m.MatchDegree `json:"match_degree"`
		EntryIDDigits int           `json:"entry_id_digits"`
		Output        string        `json:"output"`
		Corpora       []string      `json:"corpora"`
	}{cfg.MatchDegree, cfg.EntryIDDigits, cfg.Output, cfg.Corpora}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to format config: %w", err)
	}

	return string(data), nil
}
