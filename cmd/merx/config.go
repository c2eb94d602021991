package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// config holds the CLI-only preferences merx reads from .merxrc.yaml.
// None of these fields are core-semantic; the interpreter itself never
// sees this file.
type config struct {
	Color  bool   `yaml:"color"`
	Prompt string `yaml:"prompt"`
}

func defaultConfig() config {
	return config{Color: true, Prompt: "merx> "}
}

// loadConfig reads merx's YAML config from path, or from .merxrc.yaml in
// the working directory if path is empty. Its absence is not an error;
// a missing or malformed file simply falls back to defaultConfig.
func loadConfig(path string) config {
	if path == "" {
		path = ".merxrc.yaml"
	}
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return defaultConfig()
	}
	return cfg
}
