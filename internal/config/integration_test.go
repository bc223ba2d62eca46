package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobalConfig(t *testing.T) {
	ResetGlobalConfigForTest()
	t.Cleanup(ResetGlobalConfigForTest)

	cfg := GetGlobalConfig()
	assert.NotNil(t, cfg)
	assert.Equal(t, SourceMemory, cfg.Source.Kind)

	cfg2 := GetGlobalConfig()
	assert.Same(t, cfg, cfg2)

	ResetGlobalConfigForTest()
	cfg3 := GetGlobalConfig()
	assert.NotSame(t, cfg, cfg3)
}

func TestConfigGetters(t *testing.T) {
	ResetGlobalConfigForTest()
	t.Cleanup(ResetGlobalConfigForTest)

	cfg := New()
	cfg.Logging.Level = "debug"
	cfg.Logging.File = "/tmp/accountdesk.log"
	SetGlobalConfig(cfg)

	assert.Equal(t, "debug", GetLogLevel())
	lc := GetLoggingConfig().ToLoggingConfig()
	assert.Equal(t, "file", lc.Output)
	assert.Equal(t, "/tmp/accountdesk.log", lc.File)
}

func TestGetConfigDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv(EnvHome, home)

	dir, err := GetConfigDir()
	require.NoError(t, err)
	assert.Equal(t, home, dir)

	path, err := DefaultConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ConfigFileName), path)
}

func TestEnsureConfigDir(t *testing.T) {
	home := filepath.Join(t.TempDir(), "nested")
	t.Setenv(EnvHome, home)

	require.NoError(t, EnsureConfigDir())

	info, err := os.Stat(home)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestEnsureLogDir(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "app.log")

	require.NoError(t, EnsureLogDir(logFile))
	_, err := os.Stat(filepath.Dir(logFile))
	assert.NoError(t, err)

	assert.NoError(t, EnsureLogDir(""))
}
