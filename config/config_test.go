package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
codecov:
  service: gitlab
  owner: kiraware
  timeout: 10s
output:
  page_size: 50
filter:
  presets:
    mine: 'owner == "kiraware"'
logging:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://api.codecov.io", cfg.Codecov.URL)
	assert.Equal(t, "gitlab", cfg.Codecov.Service)
	assert.Equal(t, "kiraware", cfg.Codecov.Owner)
	assert.Equal(t, 10*time.Second, cfg.Codecov.Timeout)
	assert.Equal(t, 50, cfg.Output.PageSize)
	assert.Equal(t, `owner == "kiraware"`, cfg.Filter.Presets["mine"])
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadTokenFromEnv(t *testing.T) {
	path := writeConfig(t, "config.toml", "[codecov]\nowner = \"kiraware\"\n")

	t.Setenv(TokenEnv, "from-env")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Codecov.Token)

	t.Setenv("CODECOVCTL_CODECOV_TOKEN", "prefixed")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "prefixed", cfg.Codecov.Token)
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeConfig(t, "config.json", `{"codecov": {"owner": "file-owner"}}`)

	t.Setenv("CODECOVCTL_CODECOV_OWNER", "env-owner")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-owner", cfg.Codecov.Owner)
}

func validConfig() *Config {
	return &Config{
		Codecov: CodecovConfig{URL: "https://api.codecov.io", Service: "github", Timeout: time.Second},
		Output:  OutputConfig{PageSize: 25, WarnBelow: 60, GoodAbove: 80},
		Filter:  FilterConfig{Presets: map[string]string{"active": "active"}},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{
			name:    "bad url",
			mutate:  func(c *Config) { c.Codecov.URL = "not a url" },
			wantErr: "url",
		},
		{
			name:    "unknown service",
			mutate:  func(c *Config) { c.Codecov.Service = "sourceforge" },
			wantErr: "service",
		},
		{
			name:   "self hosted service",
			mutate: func(c *Config) { c.Codecov.Service = "gitlab_enterprise" },
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.Codecov.Timeout = -time.Second },
			wantErr: "timeout",
		},
		{
			name:    "zero page size",
			mutate:  func(c *Config) { c.Output.PageSize = 0 },
			wantErr: "page_size",
		},
		{
			name:    "thresholds inverted",
			mutate:  func(c *Config) { c.Output.WarnBelow = 90 },
			wantErr: "good_above",
		},
		{
			name:    "empty preset",
			mutate:  func(c *Config) { c.Filter.Presets["empty"] = "" },
			wantErr: "presets",
		},
		{
			name:    "invalid level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: "level",
		},
		{
			name:    "invalid format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	require.NoError(t, WriteDefault(path, false))
	assert.Error(t, WriteDefault(path, false))
	require.NoError(t, WriteDefault(path, true))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.Codecov.Timeout)
	assert.Equal(t, "github", cfg.Codecov.Service)
	assert.Contains(t, cfg.Filter.Presets, "active")
}
