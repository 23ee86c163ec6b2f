package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"
)

// Config contains all configuration parameters for the application.
// Note: passwords are never part of the config, they are prompted at runtime
type Config struct {
	ListenAddr   string `envconfig:"LISTEN_ADDR" default:"127.0.0.1:8080"`
	BackupPath   string `envconfig:"KUKAI_BACKUP_PATH"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`
	MaxBodyBytes int64  `envconfig:"MAX_BODY_BYTES" default:"1048576"`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
func Init() error {
	c, err := Load()
	if err != nil {
		return err
	}
	cfg = c
	return nil
}

// Load reads configuration from environment variables without touching the global instance.
func Load() (*Config, error) {
	c := &Config{}
	if err := envconfig.Process("", c); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if c.MaxBodyBytes <= 0 {
		return nil, errors.New("MAX_BODY_BYTES must be positive")
	}
	return c, nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// GetListenAddr returns HTTP listen address from configuration
func GetListenAddr() string {
	return Get().ListenAddr
}

// GetBackupPath returns path to the Kukai backup file from configuration
func GetBackupPath() string {
	return Get().BackupPath
}

// GetLogLevel returns log level from configuration
func GetLogLevel() string {
	return Get().LogLevel
}

// GetMaxBodyBytes returns request body limit from configuration
func GetMaxBodyBytes() int64 {
	return Get().MaxBodyBytes
}

// PromptForPassword prompts the user for the backup password in the terminal.
// The password is read without echoing (hidden input).
// Caller must zero the returned slice after use for security.
func PromptForPassword() ([]byte, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errors.New("stdin is not a terminal: run the app interactively to enter password")
	}
	fmt.Fprint(os.Stderr, "Enter backup password: ")
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("password cannot be empty")
	}

	password := make([]byte, len(raw))
	copy(password, raw)
	clear(raw)
	return password, nil
}
