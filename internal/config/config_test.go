package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("MCP_EXCEL_READER_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("EXCEL_FILES_PATH", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Contains(t, cfg.FilesBasePath, ".mcp-excel-reader")
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Contains(t, cfg.LogFile, "mcp-excel-reader.log")
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "files_base_path: /srv/excel\nlog_level: debug\nlog_file: /var/log/excel-reader.log\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	t.Setenv("MCP_EXCEL_READER_CONFIG", path)
	t.Setenv("EXCEL_FILES_PATH", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/excel", cfg.FilesBasePath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/var/log/excel-reader.log", cfg.LogFile)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("files_base_path: /srv/excel\nlog_level: debug\n"), 0600))

	t.Setenv("MCP_EXCEL_READER_CONFIG", path)
	t.Setenv("EXCEL_FILES_PATH", "/data/sheets")
	t.Setenv("LOG_LEVEL", "error")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/data/sheets", cfg.FilesBasePath)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: [unclosed"), 0600))

	t.Setenv("MCP_EXCEL_READER_CONFIG", path)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestLevel(t *testing.T) {
	tests := []struct {
		value string
		want  logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"info", logrus.InfoLevel},
		{"warn", logrus.WarnLevel},
		{"WARNING", logrus.WarnLevel},
		{"Error", logrus.ErrorLevel},
		{"fatal", logrus.FatalLevel},
		{"panic", logrus.PanicLevel},
		{"", logrus.WarnLevel},
		{"bogus", logrus.WarnLevel},
		{"  info  ", logrus.InfoLevel},
	}

	for _, tt := range tests {
		cfg := &Config{LogLevel: tt.value}
		assert.Equal(t, tt.want, cfg.Level(), "level %q", tt.value)
	}
}
