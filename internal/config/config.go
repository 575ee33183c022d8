package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v10"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// FileName is the config file written by "teller init".
const FileName = "teller.yaml"

// EnvPrefix is prepended to every environment override, e.g. TELLER_LEDGER_PATH.
const EnvPrefix = "TELLER_"

// Config represents the top-level teller.yaml configuration.
type Config struct {
	Bank     BankConfig     `yaml:"bank"`
	Ledger   LedgerConfig   `yaml:"ledger"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Logging  LoggingConfig  `yaml:"logging"`
	Git      GitConfig      `yaml:"git"`
}

// BankConfig names the bank shown in command output.
type BankConfig struct {
	Name string `yaml:"name" env:"BANK_NAME"`
}

// LedgerConfig locates the account ledger.
type LedgerConfig struct {
	Path string `yaml:"path" env:"LEDGER_PATH"` // relative to the data directory
}

// DefaultsConfig supplies values for "teller open" flags left unset.
// Decimals are kept as strings so the file shows them exactly.
type DefaultsConfig struct {
	SavingsRate    string `yaml:"savings_rate"     env:"DEFAULT_SAVINGS_RATE"`
	OverdraftLimit string `yaml:"overdraft_limit"  env:"DEFAULT_OVERDRAFT_LIMIT"`
	LoanTermMonths int    `yaml:"loan_term_months" env:"DEFAULT_LOAN_TERM_MONTHS"`
}

// LoggingConfig controls the zerolog logger.
type LoggingConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"`  // debug, info, warn, error
	Format string `yaml:"format" env:"LOG_FORMAT"` // json, console
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"  env:"GIT_AUTO_COMMIT"`
	AuthorName  string `yaml:"author_name"  env:"GIT_AUTHOR_NAME"`
	AuthorEmail string `yaml:"author_email" env:"GIT_AUTHOR_EMAIL"`
}

// Load reads a teller.yaml file from disk. Fields missing from the file
// keep their Default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default("")
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// ApplyEnv overrides cfg with any TELLER_* environment variables that are set.
func ApplyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parsing environment: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new ledger.
func Default(bankName string) *Config {
	return &Config{
		Bank: BankConfig{
			Name: bankName,
		},
		Ledger: LedgerConfig{
			Path: "ledger.yaml",
		},
		Defaults: DefaultsConfig{
			SavingsRate:    "0.02",
			OverdraftLimit: "0",
			LoanTermMonths: 360,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Git: GitConfig{
			AutoCommit:  false,
			AuthorName:  "Teller",
			AuthorEmail: "teller@localhost",
		},
	}
}

// SavingsRateValue parses the default savings interest rate.
func (d DefaultsConfig) SavingsRateValue() (decimal.Decimal, error) {
	return parseDecimal("savings_rate", d.SavingsRate)
}

// OverdraftLimitValue parses the default checking overdraft limit.
func (d DefaultsConfig) OverdraftLimitValue() (decimal.Decimal, error) {
	return parseDecimal("overdraft_limit", d.OverdraftLimit)
}

func parseDecimal(field, s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing defaults.%s %q: %w", field, s, err)
	}
	return v, nil
}
