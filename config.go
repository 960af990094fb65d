package urbanwater

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the run configuration document.
type Config struct {
	LayoutFile  string  `yaml:"layout_file"`  // cell topology and parameter table
	ClimateFile string  `yaml:"climate_file"` // date,precipitation,evaporation[,demand]
	OutDir      string  `yaml:"out_dir"`
	ChkptFile   string  `yaml:"checkpoint_file"`
	ChkptEvery  int     `yaml:"checkpoint_every"` // steps between checkpoints; zero disables
	StepDays    float64 `yaml:"timestep_days"`
	Start       string  `yaml:"start"` // yyyy-mm-dd simulation window, optional
	End         string  `yaml:"end"`
	Parallel    bool    `yaml:"parallel"`
	Monitors    []int   `yaml:"monitors"` // cell IDs to write .mon series
}

// DefaultConfig returns a daily serial run with no file output.
func DefaultConfig() *Config {
	return &Config{StepDays: 1.}
}

// LoadConfig reads a yaml run configuration.
func LoadConfig(fp string) (*Config, error) {
	b, err := os.ReadFile(fp)
	if err != nil {
		return nil, &ConfigurationError{Field: "file", Msg: err.Error()}
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, &ConfigurationError{Field: "yaml", Msg: err.Error()}
	}
	if err := cfg.check(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) check() error {
	if cfg.StepDays <= 0. {
		return &ConfigurationError{Field: "timestep_days", Msg: fmt.Sprintf("%g", cfg.StepDays)}
	}
	if cfg.ChkptEvery < 0 {
		return &ConfigurationError{Field: "checkpoint_every", Msg: fmt.Sprintf("%d", cfg.ChkptEvery)}
	}
	for _, s := range []string{cfg.Start, cfg.End} {
		if len(s) > 0 {
			if _, err := time.Parse("2006-01-02", s); err != nil {
				return &ConfigurationError{Field: "window", Msg: err.Error()}
			}
		}
	}
	return nil
}

// Window parses the optional simulation window.
func (cfg *Config) Window() (dtb, dte time.Time, ok bool) {
	if len(cfg.Start) == 0 || len(cfg.End) == 0 {
		return
	}
	dtb, _ = time.Parse("2006-01-02", cfg.Start)
	dte, _ = time.Parse("2006-01-02", cfg.End)
	ok = true
	return
}
