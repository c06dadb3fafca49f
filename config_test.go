package gxbridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, KeepClient, cfg.Policy())
	assert.Equal(t, ":9999", cfg.ListenAddress())

	cfg.KeepClient = false
	assert.Equal(t, ReplaceClient, cfg.Policy())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"port", func(c *Config) { c.Port = 70000 }},
		{"primary", func(c *Config) { c.PrimarySize = 1 }},
		{"staging", func(c *Config) { c.StagingSize = 0 }},
		{"send", func(c *Config) { c.SendSize = 0 }},
		{"receive", func(c *Config) { c.ReceiveSize = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestAdmissionPolicyParse(t *testing.T) {
	for value, want := range map[string]AdmissionPolicy{
		"Keep":          KeepClient,
		"keepclient":    KeepClient,
		" replace ":     ReplaceClient,
		"ReplaceClient": ReplaceClient,
	} {
		got, err := AdmissionPolicyParse(value)
		require.NoError(t, err, value)
		assert.Equal(t, want, got, value)
	}
	_, err := AdmissionPolicyParse("both")
	assert.Error(t, err)
	assert.Equal(t, "Replace", ReplaceClient.String())
}
