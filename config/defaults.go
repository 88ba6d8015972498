package config

import "github.com/Klingon-tech/klingnet-keygen/internal/wallet"

// Default range sizes.
const (
	DefaultCount = 10
	MaxCount     = 10000
	MaxWorkers   = 256
)

// DefaultMainnet returns the default configuration for mainnet.
func DefaultMainnet() *Config {
	return &Config{
		Network: Mainnet,
		DataDir: DefaultDataDir(),
		Entropy: EntropyConfig{
			Bits: wallet.DefaultEntropyBits,
		},
		Derive: DeriveConfig{
			Path:  wallet.DefaultPath,
			Count: DefaultCount,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// DefaultTestnet returns the default configuration for testnet.
func DefaultTestnet() *Config {
	cfg := DefaultMainnet()
	cfg.Network = Testnet
	return cfg
}

// Default returns the default configuration for the given network.
func Default(network NetworkType) *Config {
	switch network {
	case Testnet:
		return DefaultTestnet()
	default:
		return DefaultMainnet()
	}
}
