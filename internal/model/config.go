package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// AccountConfig holds the connection settings for one mail account.
// The password is never stored here; it lives in the system keyring,
// keyed by the account address.
type AccountConfig struct {
	// Address is the mailbox address, also used as the keyring key.
	Address string `mapstructure:"address" yaml:"address"`

	// IMAPHost and IMAPPort locate the mail-retrieval server.
	IMAPHost string `mapstructure:"imap_host" yaml:"imap_host"`
	IMAPPort string `mapstructure:"imap_port" yaml:"imap_port"`

	// SMTPHost and SMTPPort locate the mail-submission server.
	SMTPHost string `mapstructure:"smtp_host" yaml:"smtp_host"`
	SMTPPort string `mapstructure:"smtp_port" yaml:"smtp_port"`

	// TLS selects implicit TLS; when false both protocols upgrade via
	// STARTTLS instead.
	TLS bool `mapstructure:"tls" yaml:"tls"`
}

// AutoCheckConfig holds the background fetch+classify settings.
type AutoCheckConfig struct {
	// IntervalMin is the cycle interval in minutes; values below 1
	// fall back to the default of 5.
	IntervalMin int `mapstructure:"interval_min" yaml:"interval_min"`

	// FetchLimit is how many recent messages an unattended cycle pulls.
	FetchLimit int `mapstructure:"fetch_limit" yaml:"fetch_limit"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Account    AccountConfig   `mapstructure:"account" yaml:"account"`
	FetchLimit int             `mapstructure:"fetch_limit" yaml:"fetch_limit"`
	LogDir     string          `mapstructure:"log_dir" yaml:"log_dir"`
	AttachDir  string          `mapstructure:"attach_dir" yaml:"attach_dir"`
	DBPath     string          `mapstructure:"db_path" yaml:"db_path"`
	AutoCheck  AutoCheckConfig `mapstructure:"auto_check" yaml:"auto_check"`
	Display    DisplayConfig   `mapstructure:"display" yaml:"display"`
}

// DefaultConfigPath returns the default path for the configuration
// file, located at ~/.config/mailassistant/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "mailassistant", "config.yaml")
}

// defaultDataDir returns the base directory for logs, attachments and
// the profile database.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "mailassistant")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	data := defaultDataDir()
	return &AppConfig{
		Account: AccountConfig{
			IMAPPort: "993",
			SMTPPort: "465",
			TLS:      true,
		},
		FetchLimit: 20,
		LogDir:     filepath.Join(data, "logs"),
		AttachDir:  filepath.Join(data, "attachments"),
		DBPath:     filepath.Join(data, "accounts.db"),
		AutoCheck: AutoCheckConfig{
			IntervalMin: 5,
			FetchLimit:  10,
		},
		Display: DisplayConfig{
			Theme: "default",
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using
// Viper. If the file does not exist, it returns a default
// configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	data := defaultDataDir()
	v.SetDefault("account.imap_port", "993")
	v.SetDefault("account.smtp_port", "465")
	v.SetDefault("account.tls", true)
	v.SetDefault("fetch_limit", 20)
	v.SetDefault("log_dir", filepath.Join(data, "logs"))
	v.SetDefault("attach_dir", filepath.Join(data, "attachments"))
	v.SetDefault("db_path", filepath.Join(data, "accounts.db"))
	v.SetDefault("auto_check.interval_min", 5)
	v.SetDefault("auto_check.fetch_limit", 10)
	v.SetDefault("display.theme", "default")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.FetchLimit < 1 {
		cfg.FetchLimit = 20
	}
	if cfg.AutoCheck.IntervalMin < 1 {
		cfg.AutoCheck.IntervalMin = 5
	}
	if cfg.AutoCheck.FetchLimit < 1 {
		cfg.AutoCheck.FetchLimit = 10
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("account", cfg.Account)
	v.Set("fetch_limit", cfg.FetchLimit)
	v.Set("log_dir", cfg.LogDir)
	v.Set("attach_dir", cfg.AttachDir)
	v.Set("db_path", cfg.DBPath)
	v.Set("auto_check", cfg.AutoCheck)
	v.Set("display", cfg.Display)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
