package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
database:
  driver: sqlite
  database: ":memory:"
ledger:
  owner: "0xF39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
  service: "0x5fbdb2315678afecb367f032d93f642f64180aa3"
  beneficiary: "0x90f79bf6eb2c4f870365e785982e1f101e93b906"
subscription:
  refund:
    mode: prorata
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_FileAndDefaults(t *testing.T) {
	cfg, err := Load("", writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "prorata", cfg.Subscription.Refund.Mode)
	assert.Equal(t, 28*24*time.Hour, cfg.RefundPeriod())
	assert.False(t, cfg.Subscription.StrictAvailability)
	assert.Equal(t, "subledger:events", cfg.Redis.Channel)
	assert.Equal(t, 5*time.Minute, cfg.Cache.MaxStatusTTL)

	owner, service, beneficiary := cfg.Identities()
	assert.Equal(t, "0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266", owner.String())
	assert.False(t, service.IsZero())
	assert.False(t, beneficiary.IsZero())

	assert.Same(t, cfg, Get())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SUBLEDGER_SUBSCRIPTION_STRICT_AVAILABILITY", "true")
	t.Setenv("SUBLEDGER_SERVER_PORT", "9090")

	cfg, err := Load("release", writeConfig(t, sampleConfig))
	require.NoError(t, err)
	assert.True(t, cfg.Subscription.StrictAvailability)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing identities", body: "database:\n  driver: sqlite\n"},
		{name: "bad driver", body: strings.Replace(sampleConfig, "driver: sqlite", "driver: oracle", 1)},
		{name: "bad refund mode", body: `
database:
  driver: sqlite
ledger:
  owner: "0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266"
  service: "0x5fbdb2315678afecb367f032d93f642f64180aa3"
  beneficiary: "0x90f79bf6eb2c4f870365e785982e1f101e93b906"
subscription:
  refund:
    mode: partial
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load("", writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load("", filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
