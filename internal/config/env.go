package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"
)

// Config contains all configuration parameters for the application.
// Note: Password is prompted at runtime and stored in memory - use GetKeystorePasswordBytes()
type Config struct {
	Port            string        `envconfig:"PORT" default:"8080"`
	KeystoreDir     string        `envconfig:"KEYSTORE_DIR" default:".stylish"`
	BoardSize       int           `envconfig:"BOARD_SIZE" default:"7"`
	ConfirmTimeout  time.Duration `envconfig:"CONFIRM_TIMEOUT" default:"0s"`
	APIURL          string        `envconfig:"API_URL"`
	LeaderboardSize uint32        `envconfig:"LEADERBOARD_SIZE" default:"10"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	Chain
}

// Chain describes the network and the game contract.
type Chain struct {
	RPCURL          string `envconfig:"RPC_URL" default:"https://testnet-rpc.superposition.so/"`
	ChainID         int64  `envconfig:"CHAIN_ID" default:"98985"`
	ContractAddress string `envconfig:"CONTRACT_ADDRESS" default:"0x7d3ed693f76e1495d4206a1e6ef303891c7d652d"`
	CurrencySymbol  string `envconfig:"CURRENCY_SYMBOL" default:"SPN"`
	Name            string `envconfig:"NETWORK_NAME" default:"Superposition Testnet"`
}

const envPrefix = "STYLISH"

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
	if err := envconfig.Process(envPrefix, c); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if c.BoardSize <= 0 {
		return nil, fmt.Errorf("board size must be positive, got %d", c.BoardSize)
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

// GetPort returns port from configuration
func GetPort() string {
	return Get().Port
}

// GetKeystoreDir returns the directory holding the secure storage files
func GetKeystoreDir() string {
	return Get().KeystoreDir
}

// GetChain returns network and contract configuration
func GetChain() Chain {
	return Get().Chain
}

// SlogLevel maps the configured level name onto slog.
func (c *Config) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

var passwordBytes []byte

// PromptForPassword prompts the user for the keystore password in the terminal.
// The password is read without echoing (hidden input) and stored in memory.
// Call this at startup before the wallet is initialized.
func PromptForPassword(prompt string) error {
	raw, err := ReadPassword(prompt)
	if err != nil {
		return err
	}
	passwordBytes = raw
	return nil
}

// ReadPassword reads one hidden line from the terminal. Caller must zero the result.
func ReadPassword(prompt string) ([]byte, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errors.New("stdin is not a terminal: run the app interactively to enter password")
	}
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("password cannot be empty")
	}

	out := make([]byte, len(raw))
	copy(out, raw)
	clear(raw)
	return out, nil
}

// GetKeystorePasswordBytes returns the password stored in memory (from PromptForPassword).
// Returns an error if the password was not set.
// Caller must zero the returned slice after use for security.
func GetKeystorePasswordBytes() ([]byte, error) {
	if len(passwordBytes) == 0 {
		return nil, errors.New("password not set: call PromptForPassword at startup")
	}
	out := make([]byte, len(passwordBytes))
	copy(out, passwordBytes)
	return out, nil
}
