package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledger/internal/record"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "ledger.dat", cfg.DataFile)
	assert.Equal(t, record.DefaultLimits(), cfg.Limits)
	assert.Equal(t, int32(1_000_000_000), cfg.Bank.Balance)
	assert.NoError(t, cfg.Validate())
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"LEDGER_DATA_FILE", "LEDGER_LOG_LEVEL", "LEDGER_LOG_ENCODING"} {
		t.Setenv(k, "")
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestConfig_SaveLoad(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "conf", "ledger.yaml")
	cfg := DefaultConfig()
	cfg.DataFile = "/var/lib/ledger/accounts.dat"
	cfg.Limits.MaxTransfer = 5000
	cfg.Seed = []AccountFixture{{Name: "Jan", Surname: "Nowak", Balance: 1000, InterestRate: 0.1}}

	require.NoError(t, cfg.Save(path))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "ledger.yaml")
	yml := `
limits:
  max_deposit: 500
seed:
  - name: Jan
    national_id: "80010100001"
    balance: 1000
    interest_rate: 0.1
  - name: Janusz
    balance: 500
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int32(500), cfg.Limits.MaxDeposit)
	assert.Equal(t, record.DefaultLimits().MaxBorrow, cfg.Limits.MaxBorrow)
	assert.Equal(t, "Bank", cfg.Bank.Name)

	bank, seed := cfg.Fixture()
	assert.Equal(t, int32(1_000_000_000), bank.Balance)
	require.Len(t, seed, 2)
	assert.Equal(t, "80010100001", seed[0].NationalID)
	assert.Equal(t, float32(0.1), seed[0].InterestRate)
	assert.Equal(t, "Janusz", seed[1].Name)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.yaml")
	require.NoError(t, os.WriteFile(path, []byte("limits: [1, 2"), 0o644))
	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("LEDGER_DATA_FILE", "/tmp/env.dat")
	t.Setenv("LEDGER_LOG_LEVEL", "DEBUG")
	t.Setenv("LEDGER_LOG_ENCODING", "json")

	cfg := DefaultConfig()
	cfg.applyEnvOverrides()

	assert.Equal(t, "/tmp/env.dat", cfg.DataFile)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Encoding)
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataFile = " "
	cfg.Limits.MaxDeposit = 0
	cfg.Logging.Level = "loud"
	cfg.Logging.Encoding = "xml"

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "data_file is required")
	assert.ErrorContains(t, err, "max_deposit")
	assert.ErrorContains(t, err, "logging.level")
	assert.ErrorContains(t, err, "logging.encoding")
}
