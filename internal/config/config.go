package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fxreport-dev/fxreport/internal/model"
)

// Config represents the top-level fxreport.yaml configuration.
type Config struct {
	Currencies []model.CurrencyCode `yaml:"currencies"`
	Inputs     InputsConfig         `yaml:"inputs"`
	Report     ReportConfig         `yaml:"report"`
	RunLog     RunLogConfig         `yaml:"run_log"`
}

// InputsConfig locates the two ECB CSV exports.
type InputsConfig struct {
	Daily      string `yaml:"daily"`
	Historical string `yaml:"historical"`
	// Delimiter pins the field delimiter ("," or ";").
	// Empty means sniff it from the header line.
	Delimiter string `yaml:"delimiter,omitempty"`
}

// ReportConfig controls the rendered output.
type ReportConfig struct {
	Title         string `yaml:"title"`
	HTMLPath      string `yaml:"html_path"`
	XLSXPath      string `yaml:"xlsx_path,omitempty"` // empty = no workbook
	DecimalPlaces int    `yaml:"decimal_places"`
}

// RunLogConfig controls the per-run audit log.
type RunLogConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir,omitempty"`
}

// Load reads an fxreport.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config matching the published ECB feed layout.
func Default() *Config {
	return &Config{
		Currencies: model.DefaultCurrencies(),
		Inputs: InputsConfig{
			Daily:      "eurofxref.csv",
			Historical: "eurofxref-hist.csv",
		},
		Report: ReportConfig{
			Title:         "Exchange Rates Report",
			HTMLPath:      "exchange_rates.html",
			DecimalPlaces: 4,
		},
		RunLog: RunLogConfig{
			Enabled: false,
			Dir:     "logs",
		},
	}
}

func (c *Config) validate() error {
	switch c.Inputs.Delimiter {
	case "", ",", ";":
	default:
		return fmt.Errorf("unsupported delimiter %q", c.Inputs.Delimiter)
	}
	if c.Report.DecimalPlaces < 0 {
		return fmt.Errorf("decimal_places must be >= 0, got %d", c.Report.DecimalPlaces)
	}
	return nil
}
