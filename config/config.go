// Package config handles klingnet-keygen configuration.
//
// Settings are layered: built-in defaults, then the optional keygen.conf
// file, then command-line flags. Secrets (mnemonics, passphrases) are never
// read from configuration.
package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/Klingon-tech/klingnet-keygen/internal/wallet"
)

// NetworkType identifies mainnet or testnet.
type NetworkType string

const (
	Mainnet NetworkType = "mainnet"
	Testnet NetworkType = "testnet"
)

// Config holds the tool's runtime configuration.
type Config struct {
	Network NetworkType `conf:"network"`
	DataDir string      `conf:"datadir"`

	Entropy EntropyConfig
	Derive  DeriveConfig
	Log     LogConfig
}

// EntropyConfig controls mnemonic generation.
type EntropyConfig struct {
	Bits int `conf:"entropy.bits"` // 128..256, multiple of 32
}

// DeriveConfig controls key derivation.
type DeriveConfig struct {
	Path    string `conf:"derive.path"`
	Count   int    `conf:"derive.count"`   // addresses listed by range commands
	Workers int    `conf:"derive.workers"` // 0 = one per CPU
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `conf:"log.level"`
	File  string `conf:"log.file"`
	JSON  bool   `conf:"log.json"`
}

// WalletNetwork returns the version bytes for the configured network.
func (c *Config) WalletNetwork() wallet.Network {
	if c.Network == Testnet {
		return wallet.Testnet
	}
	return wallet.Mainnet
}

// DefaultDataDir returns the platform-specific default data directory.
//
//	Linux:   ~/.klingnet-keygen
//	macOS:   ~/Library/Application Support/KlingnetKeygen
//	Windows: %APPDATA%\KlingnetKeygen
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".klingnet-keygen"
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "KlingnetKeygen")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData != "" {
			return filepath.Join(appData, "KlingnetKeygen")
		}
		return filepath.Join(home, "AppData", "Roaming", "KlingnetKeygen")
	default:
		return filepath.Join(home, ".klingnet-keygen")
	}
}

// ConfigFile returns the config file path.
func (c *Config) ConfigFile() string {
	return filepath.Join(c.DataDir, "keygen.conf")
}
