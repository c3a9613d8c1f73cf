package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration.
type Config struct {
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Paths   PathsConfig   `yaml:"paths" envconfig:"PATHS"`
	Feed    FeedConfig    `yaml:"feed" envconfig:"FEED"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Format   string `yaml:"format" envconfig:"FORMAT"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// PathsConfig contains file system paths configuration. Relative paths are
// resolved against the executable directory, never the working directory.
type PathsConfig struct {
	BaseDir string `yaml:"base_dir" envconfig:"BASE_DIR"`
	DataDir string `yaml:"data_dir" envconfig:"DATA_DIR"`
}

// FeedConfig contains feed-processing configuration.
type FeedConfig struct {
	// PropertiesFile points at the contract reference-data file (.xlsx or
	// .csv). Relative paths resolve against the data directory.
	PropertiesFile string `yaml:"properties_file" envconfig:"PROPERTIES_FILE"`

	// Symbols optionally restricts processing to the listed canonical
	// roots; empty means every known contract.
	Symbols []string `yaml:"symbols" envconfig:"SYMBOLS"`
}

// defaultConfig is the baseline every load starts from.
func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/processor.log",
		},
		Paths: PathsConfig{
			DataDir: "data",
		},
		Feed: FeedConfig{
			PropertiesFile: "futures-properties.csv",
		},
	}
}

// Load loads configuration in three layers: built-in defaults, then the
// optional YAML config file, then FMD_-prefixed environment variables. Later
// layers win.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := configFilePath(); path != "" {
		if _, err := os.Stat(path); err == nil {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	if err := envconfig.Process("FMD", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// configFilePath picks the YAML config file: FMD_CONFIG_FILE when set,
// otherwise config.yaml next to the executable.
func configFilePath() string {
	if path := os.Getenv("FMD_CONFIG_FILE"); path != "" {
		return path
	}
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	return filepath.Join(filepath.Dir(exe), "config.yaml")
}

func (c *Config) validate() error {
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid logging level %q", c.Logging.Level)
	}

	switch strings.ToLower(c.Logging.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("invalid logging format %q", c.Logging.Format)
	}

	switch strings.ToLower(c.Logging.Output) {
	case "console", "file", "both":
	default:
		return fmt.Errorf("invalid logging output %q", c.Logging.Output)
	}

	return nil
}
