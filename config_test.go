// FILE: oxidecomputer/slog-dtrace/config_test.go
package dtrace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, "usdt", cfg.Provider)
	assert.Equal(t, "slog", cfg.Name)
	assert.Equal(t, int64(64), cfg.MaxPayloadKB)
}

func TestConfigClone(t *testing.T) {
	cfg1 := DefaultConfig()
	cfg1.Provider = "memory"
	cfg1.Name = "custom"

	cfg2 := cfg1.Clone()

	// Verify deep copy
	assert.Equal(t, cfg1.Provider, cfg2.Provider)
	assert.Equal(t, cfg1.Name, cfg2.Name)

	// Modify original
	cfg1.Name = "changed"

	// Verify clone unchanged
	assert.Equal(t, "custom", cfg2.Name)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantError string
	}{
		{
			name:      "valid config",
			modify:    func(c *Config) {},
			wantError: "",
		},
		{
			name:      "empty provider",
			modify:    func(c *Config) { c.Provider = "  " },
			wantError: "provider cannot be empty",
		},
		{
			name:      "empty name",
			modify:    func(c *Config) { c.Name = "" },
			wantError: "provider name cannot be empty",
		},
		{
			name:      "uppercase name",
			modify:    func(c *Config) { c.Name = "MyProbes" },
			wantError: "invalid provider name",
		},
		{
			name:      "dashed name",
			modify:    func(c *Config) { c.Name = "my-probes" },
			wantError: "invalid provider name",
		},
		{
			name:      "zero payload size",
			modify:    func(c *Config) { c.MaxPayloadKB = 0 },
			wantError: "max_payload_kb must be positive",
		},
		{
			name:      "negative payload size",
			modify:    func(c *Config) { c.MaxPayloadKB = -1 },
			wantError: "max_payload_kb must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)

			err := cfg.validate()
			if tt.wantError == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
			}
		})
	}
}

func TestNewConfigFromDefaults(t *testing.T) {
	cfg, err := NewConfigFromDefaults(map[string]any{
		"provider":       "memory",
		"name":           "app_probes",
		"max_payload_kb": 128,
	})
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Provider)
	assert.Equal(t, "app_probes", cfg.Name)
	assert.Equal(t, int64(128), cfg.MaxPayloadKB)
}

func TestNewConfigFromDefaultsUnknownKey(t *testing.T) {
	_, err := NewConfigFromDefaults(map[string]any{"no_such_key": 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown config key")
}

func TestNewConfigFromDefaultsBadType(t *testing.T) {
	_, err := NewConfigFromDefaults(map[string]any{"name": 42})
	require.Error(t, err)
}

func TestNewConfigFromDefaultsValidates(t *testing.T) {
	_, err := NewConfigFromDefaults(map[string]any{"max_payload_kb": -3})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_payload_kb")
}
