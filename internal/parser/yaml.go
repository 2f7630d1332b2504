package parser

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// yamlConfig mirrors the HCL layout. The palette stays a raw node so that
// entry order survives decoding.
type yamlConfig struct {
	Meta    Meta              `yaml:"meta"`
	Metric  string            `yaml:"metric"`
	Palette yaml.Node         `yaml:"palette"`
	Source  []string          `yaml:"source"`
	Invert  map[string]string `yaml:"invert"`
}

func parseYAML(src []byte) (*ParseResult, error) {
	var cfg yamlConfig
	if err := yaml.Unmarshal(src, &cfg); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	if cfg.Palette.Kind == 0 {
		return nil, fmt.Errorf("no palette block found")
	}
	if cfg.Palette.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parsing palette: line %d: expected a mapping of name to color", cfg.Palette.Line)
	}

	entries := make([]Entry, 0, len(cfg.Palette.Content)/2)
	for i := 0; i+1 < len(cfg.Palette.Content); i += 2 {
		key, val := cfg.Palette.Content[i], cfg.Palette.Content[i+1]
		if val.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("parsing palette: line %d: palette.%s must be a color string", val.Line, key.Value)
		}
		c, err := parseColor(val.Value)
		if err != nil {
			return nil, fmt.Errorf("parsing palette: palette.%s: %w", key.Value, err)
		}
		entries = append(entries, Entry{Name: key.Value, Color: c})
	}

	result := &ParseResult{
		Meta:    cfg.Meta,
		Palette: entries,
		Metric:  cfg.Metric,
		Source:  cfg.Source,
		Invert:  cfg.Invert,
	}
	if err := validate(result); err != nil {
		return nil, err
	}
	return result, nil
}
