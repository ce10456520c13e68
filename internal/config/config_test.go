package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, ":3000", cfg.Addr())
	assert.Equal(t, "X-Webhook-Signature", cfg.SignatureHeader)
	assert.Equal(t, 100, cfg.HistoryCapacity)
	assert.Empty(t, cfg.WebhookSecret, "signature enforcement is off by default")
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shipbell.yaml")
	body := []byte("port: 8080\nwebhook_secret: s3cret\nhistory_capacity: 50\n")
	require.NoError(t, os.WriteFile(path, body, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "s3cret", cfg.WebhookSecret)
	assert.Equal(t, 50, cfg.HistoryCapacity)
	// Untouched keys keep defaults.
	assert.Equal(t, "X-Webhook-Signature", cfg.SignatureHeader)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shipbell.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 8080\n"), 0o600))

	t.Setenv("PORT", "9090")
	t.Setenv("WEBHOOK_SECRET", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, "from-env", cfg.WebhookSecret)
}

func TestListenTakesPrecedenceOverPort(t *testing.T) {
	t.Setenv("LISTEN", "127.0.0.1:4000")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:4000", cfg.Addr())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(c *Config) {}},
		{name: "port out of range", mutate: func(c *Config) { c.Port = 70000 }, wantErr: true},
		{name: "listen rescues bad port", mutate: func(c *Config) { c.Port = 0; c.Listen = ":3000" }},
		{name: "empty signature header", mutate: func(c *Config) { c.SignatureHeader = "" }, wantErr: true},
		{name: "non-positive capacity", mutate: func(c *Config) { c.HistoryCapacity = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
