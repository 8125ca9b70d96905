// internal/config/config.go
//
// 帳本設定：YAML 檔為基礎，LEDGER_* 環境變數可覆寫部分欄位。
// 設定檔不存在時直接使用預設值。

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"ledger/internal/record"
)

// DefaultPath 為未指定 --config 時讀取的設定檔。
const DefaultPath = "ledger.yaml"

// Config 為帳本的完整設定。
type Config struct {
	// 定長記錄資料檔
	DataFile string `yaml:"data_file"`

	// 單筆操作上限；帳戶與貸款上限由此推得
	Limits record.Limits `yaml:"limits"`

	// reset 寫入的內容：slot 1 銀行帳戶與其後依序追加的種子帳戶
	Bank AccountFixture   `yaml:"bank"`
	Seed []AccountFixture `yaml:"seed"`

	Logging LoggingConfig `yaml:"logging"`
}

// AccountFixture 描述 reset 時寫入的一個帳戶。
type AccountFixture struct {
	Name         string  `yaml:"name"`
	Surname      string  `yaml:"surname"`
	Address      string  `yaml:"address"`
	NationalID   string  `yaml:"national_id"`
	Balance      int32   `yaml:"balance"`
	Loan         int32   `yaml:"loan"`
	InterestRate float32 `yaml:"interest_rate"`
}

// Account 轉成記錄；帳號留給儲存層分配。
func (f AccountFixture) Account() record.Account {
	return record.Account{
		Name:         f.Name,
		Surname:      f.Surname,
		Address:      f.Address,
		NationalID:   f.NationalID,
		Balance:      f.Balance,
		Loan:         f.Loan,
		InterestRate: f.InterestRate,
	}
}

// LoggingConfig 為日誌設定。
type LoggingConfig struct {
	Level    string `yaml:"level"`    // debug, info, warn, error
	Encoding string `yaml:"encoding"` // console, json
}

// DefaultConfig 回傳預設設定。
func DefaultConfig() *Config {
	return &Config{
		DataFile: "ledger.dat",
		Limits:   record.DefaultLimits(),
		Bank: AccountFixture{
			Name:    "Bank",
			Balance: 1_000_000_000,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Encoding: "console",
		},
	}
}

// Load 讀取 YAML 設定檔，再套用環境變數覆寫。
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// 設定檔不存在：使用預設值
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save 將設定寫成 YAML 檔，必要時建立目錄。
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides 以 LEDGER_* 環境變數覆寫檔案內容。
func (c *Config) applyEnvOverrides() {
	if v := strings.TrimSpace(os.Getenv("LEDGER_DATA_FILE")); v != "" {
		c.DataFile = v
	}
	if v := strings.TrimSpace(os.Getenv("LEDGER_LOG_LEVEL")); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv("LEDGER_LOG_ENCODING")); v != "" {
		c.Logging.Encoding = strings.ToLower(v)
	}
}

// Validate 檢查設定是否可用，所有問題以 errors.Join 一併回傳。
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.DataFile) == "" {
		errs = append(errs, errors.New("data_file is required"))
	}
	if err := c.Limits.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("limits: %w", err))
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("logging.level: unknown level %q", c.Logging.Level))
	}
	switch c.Logging.Encoding {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.encoding: unknown encoding %q", c.Logging.Encoding))
	}
	return errors.Join(errs...)
}

// Fixture 回傳 reset 用的銀行帳戶與種子帳戶。
func (c *Config) Fixture() (record.Account, []record.Account) {
	seed := make([]record.Account, 0, len(c.Seed))
	for _, f := range c.Seed {
		seed = append(seed, f.Account())
	}
	return c.Bank.Account(), seed
}
