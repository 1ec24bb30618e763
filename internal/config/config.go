package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config is the server configuration. It is loaded once at startup and
// read-only afterwards.
type Config struct {
	// FilesBasePath is the directory relative file_path arguments are
	// resolved under. Absolute paths bypass it.
	FilesBasePath string `yaml:"files_base_path"`

	// LogLevel is the logrus level name (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`

	// LogFile receives log output when serving the stdio transport,
	// which must keep stdout/stderr clean for the protocol stream.
	LogFile string `yaml:"log_file"`
}

// Load reads the configuration file and applies environment overrides.
// A missing config file is not an error; defaults apply.
func Load() (*Config, error) {
	cfg := defaults()

	path := configPath()
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	// Env overrides win over file values
	if v := os.Getenv("EXCEL_FILES_PATH"); v != "" {
		cfg.FilesBasePath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	return cfg, nil
}

func defaults() *Config {
	homeDir, _ := os.UserHomeDir()
	base := filepath.Join(homeDir, ".mcp-excel-reader")
	return &Config{
		FilesBasePath: filepath.Join(base, "files"),
		LogLevel:      "warn",
		LogFile:       filepath.Join(base, "logs", "mcp-excel-reader.log"),
	}
}

func configPath() string {
	if custom := os.Getenv("MCP_EXCEL_READER_CONFIG"); custom != "" {
		return custom
	}
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".mcp-excel-reader", "config.yaml")
}

// Level parses the configured log level, defaulting to warn for empty
// or invalid values.
func (c *Config) Level() logrus.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "panic":
		return logrus.PanicLevel
	default:
		return logrus.WarnLevel
	}
}
