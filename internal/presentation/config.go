package presentation

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed ui.yaml
var defaultUI []byte

// Config holds every user-facing text of the dashboard.
// The yaml/json keys match the ui.json layout consumed by the frontend.
type Config struct {
	Header struct {
		Title    string `yaml:"title" json:"title"`
		Subtitle string `yaml:"subtitle" json:"subtitle"`
	} `yaml:"header" json:"header"`

	Tabs map[string]struct {
		Label string `yaml:"label" json:"label"`
	} `yaml:"tabs" json:"tabs"`

	Search struct {
		Placeholder      string `yaml:"placeholder" json:"placeholder"`
		ButtonText       string `yaml:"buttonText" json:"buttonText"`
		ResultsText      string `yaml:"resultsText" json:"resultsText"`
		ClearFiltersText string `yaml:"clearFiltersText" json:"clearFiltersText"`
	} `yaml:"search" json:"search"`

	Filters struct {
		Labels  map[string]string `yaml:"labels" json:"labels"`
		Options map[string]string `yaml:"options" json:"options"`
	} `yaml:"filters" json:"filters"`

	Table struct {
		Headers    map[string]string `yaml:"headers" json:"headers"`
		Actions    map[string]string `yaml:"actions" json:"actions"`
		TypeLabels map[string]string `yaml:"typeLabels" json:"typeLabels"`
		SHAPrefix  string            `yaml:"shaPrefix" json:"shaPrefix"`
	} `yaml:"table" json:"table"`

	EmptyState EmptyState `yaml:"emptyState" json:"emptyState"`
}

// EmptyState is shown when a query matches nothing.
type EmptyState struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg, err := parse(defaultUI)
	if err != nil {
		// embedded at build time, covered by tests
		panic(fmt.Sprintf("invalid embedded ui config: %v", err))
	}
	return cfg
}

// LoadFile reads a configuration file on top of the defaults: keys missing
// from the file keep their built-in value.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ui config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse ui config: %w", err)
	}
	return cfg, nil
}

func parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
