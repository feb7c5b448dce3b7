package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(body), 0644))
	return dir
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := writeConfig(t, `{
		"input_path": "data/apps.csv",
		"junk_threshold": 100,
		"top_n": 3,
		"chart_dir": "charts",
		"refresh_interval": "30m"
	}`)

	cfg, err := loadConfig(dir, "config.json")
	require.NoError(t, err)

	assert.Equal(t, "data/apps.csv", cfg.InputPath)
	assert.Equal(t, 100.0, cfg.JunkThreshold)
	assert.Equal(t, 3, cfg.TopN)
	assert.Equal(t, "charts", cfg.ChartDir)
	assert.Equal(t, Duration(30*time.Minute), cfg.RefreshInterval)
	// 未配置的字段保持默认值
	assert.Equal(t, []string{"Last_Updated", "Android_Ver"}, cfg.DropColumns)
	assert.Equal(t, 10, cfg.TopGrossingN)
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := loadConfig(t.TempDir(), "config.json")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadConfigMalformed(t *testing.T) {
	dir := writeConfig(t, `{"input_path": `)
	_, err := loadConfig(dir, "config.json")
	assert.Error(t, err)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv(EnvInputPath, "override.csv")
	cfg, err := loadConfig(t.TempDir(), "config.json")
	require.NoError(t, err)
	assert.Equal(t, "override.csv", cfg.InputPath)
}

func TestLoadEnvConfigDir(t *testing.T) {
	t.Setenv(EnvConfigDir, "/etc/apps")
	assert.Equal(t, "/etc/apps", LoadEnv("./config"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero threshold", func(c *Config) { c.JunkThreshold = 0 }},
		{"negative top n", func(c *Config) { c.TopN = -1 }},
		{"negative genres", func(c *Config) { c.TopGenresN = -2 }},
		{"empty input", func(c *Config) { c.InputPath = "" }},
		{"negative interval", func(c *Config) { c.RefreshInterval = Duration(-time.Second) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
	assert.NoError(t, Default().Validate())
}

func TestDurationJSON(t *testing.T) {
	d := Duration(90 * time.Second)
	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"1m30s"`, string(data))

	var back Duration
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, d, back)

	assert.Error(t, json.Unmarshal([]byte(`"soon"`), &back))
}
