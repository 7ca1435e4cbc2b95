package main

import (
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Config represents the lapcut configuration file
// (~/.config/lapcut/config.yaml). File values apply only where the
// corresponding CLI flag was not explicitly set.
type Config struct {
	TelemetryDir  string `yaml:"telemetry_dir"`
	OutputDir     string `yaml:"output_dir"`
	ServerAddress string `yaml:"server_address"`
	LogLevel      string `yaml:"log_level"`
	LogFormat     string `yaml:"log_format"`
	MarkerUnit    string `yaml:"marker_unit"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "lapcut", "config.yaml")
}

// applyCommonConfig fills logging and marker-unit settings from the
// config file when the flags were left at their defaults.
func applyCommonConfig(c *cli.Command, cfg Config) {
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}
	if cfg.MarkerUnit != "" && !c.IsSet("unit") {
		markerUnit = cfg.MarkerUnit
	}
}

func applyExtractConfig(c *cli.Command, cfg Config, outDir *string) {
	applyCommonConfig(c, cfg)
	if cfg.OutputDir != "" && !c.IsSet("out") {
		*outDir = cfg.OutputDir
	}
}

func applyServeConfig(c *cli.Command, cfg Config, addr, outDir *string) {
	applyCommonConfig(c, cfg)
	if cfg.ServerAddress != "" && !c.IsSet("addr") {
		*addr = cfg.ServerAddress
	}
	if cfg.OutputDir != "" && !c.IsSet("out") {
		*outDir = cfg.OutputDir
	}
}

// LoadConfig reads the config file. Returns a zero Config if the file
// doesn't exist or cannot be parsed.
func LoadConfig() Config {
	path := configPath()
	if path == "" {
		return Config{}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}
	}
	return cfg
}
