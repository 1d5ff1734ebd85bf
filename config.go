package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds user preferences, read once at start up.
type Config struct {
	Precision          int     `yaml:"precision"`           // maximum fraction digits printed; negative for shortest exact form
	ShowStackLevel     bool    `yaml:"show_stack_level"`    // number each printed stack entry, 1 being the top
	Monochrome         bool    `yaml:"monochrome"`          // disable color even on a terminal
	ConversionConstant float64 `yaml:"conversion_constant"` // factor applied by a_b
	TipPercentage      float64 `yaml:"tip_percentage"`      // fraction applied by tip and tip+
	ShowWarnings       bool    `yaml:"show_warnings"`
	Locale             string  `yaml:"locale"` // BCP 47 tag used to format numbers
	DigitGrouping      bool    `yaml:"digit_grouping"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Precision:          12,
		ShowStackLevel:     true,
		ConversionConstant: 1,
		TipPercentage:      0.15,
		ShowWarnings:       true,
		Locale:             "en-US",
	}
}

// DefaultConfigPath returns $HOME/.comp.yaml, or just .comp.yaml if no home
// directory is known.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".comp.yaml"
	}
	return filepath.Join(home, ".comp.yaml")
}

// LoadConfig reads the configuration at path. Fields missing from the file
// keep their defaults, as does everything when no file exists. A file that
// cannot be parsed yields the defaults along with an error describing it.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	} else if err != nil {
		return cfg, fmt.Errorf("unable to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("corrupt config %v, using defaults: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating or replacing the file.
func (cfg *Config) Save(path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("unable to write config: %w", err)
	}
	return nil
}
