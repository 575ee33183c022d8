package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default("First Civic")
	cfg.Ledger.Path = "data/accounts.yaml"
	cfg.Defaults.LoanTermMonths = 180
	cfg.Git.AutoCommit = true

	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestDefaults(t *testing.T) {
	cfg := Default("First Civic")

	assert.Equal(t, "First Civic", cfg.Bank.Name)
	assert.Equal(t, "ledger.yaml", cfg.Ledger.Path)
	assert.Equal(t, "0.02", cfg.Defaults.SavingsRate)
	assert.Equal(t, "0", cfg.Defaults.OverdraftLimit)
	assert.Equal(t, 360, cfg.Defaults.LoanTermMonths)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.False(t, cfg.Git.AutoCommit)
	assert.Equal(t, "Teller", cfg.Git.AuthorName)
	assert.Equal(t, "teller@localhost", cfg.Git.AuthorEmail)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("bank:\n  name: Tiny Bank\nlogging:\n  level: debug\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Tiny Bank", cfg.Bank.Name)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "ledger.yaml", cfg.Ledger.Path)
	assert.Equal(t, 360, cfg.Defaults.LoanTermMonths)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("bank: [unterminated\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestYAMLFormat(t *testing.T) {
	cfg := Default("First Civic")
	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, cfg)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "name: First Civic")
	assert.Contains(t, contents, "path: ledger.yaml")
	assert.Contains(t, contents, `savings_rate: "0.02"`)
	assert.Contains(t, contents, "loan_term_months: 360")
	assert.Contains(t, contents, "auto_commit: false")
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("TELLER_LEDGER_PATH", "/srv/teller/ledger.yaml")
	t.Setenv("TELLER_LOG_LEVEL", "warn")
	t.Setenv("TELLER_DEFAULT_LOAN_TERM_MONTHS", "240")
	t.Setenv("TELLER_GIT_AUTO_COMMIT", "true")

	cfg := Default("First Civic")
	require.NoError(t, ApplyEnv(cfg))

	assert.Equal(t, "/srv/teller/ledger.yaml", cfg.Ledger.Path)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, 240, cfg.Defaults.LoanTermMonths)
	assert.True(t, cfg.Git.AutoCommit)

	// Unset variables leave values alone.
	assert.Equal(t, "First Civic", cfg.Bank.Name)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestApplyEnvInvalid(t *testing.T) {
	t.Setenv("TELLER_DEFAULT_LOAN_TERM_MONTHS", "forever")

	err := ApplyEnv(Default(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing environment")
}

func TestDefaultsValues(t *testing.T) {
	d := Default("").Defaults

	rate, err := d.SavingsRateValue()
	require.NoError(t, err)
	assert.Equal(t, "0.02", rate.String())

	limit, err := d.OverdraftLimitValue()
	require.NoError(t, err)
	assert.True(t, limit.IsZero())

	d.SavingsRate = "two percent"
	_, err = d.SavingsRateValue()
	assert.Error(t, err)
}
