package config

import (
	"fmt"

	"github.com/Klingon-tech/klingnet-keygen/internal/log"
	"github.com/Klingon-tech/klingnet-keygen/internal/wallet"
)

// Validate checks the configuration for obvious operator mistakes.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if cfg.Network != Mainnet && cfg.Network != Testnet {
		return fmt.Errorf("network must be %q or %q", Mainnet, Testnet)
	}

	bits := cfg.Entropy.Bits
	if bits < wallet.MinEntropyBits || bits > wallet.MaxEntropyBits || bits%32 != 0 {
		return fmt.Errorf("entropy.bits must be a multiple of 32 in [%d, %d], got %d",
			wallet.MinEntropyBits, wallet.MaxEntropyBits, bits)
	}

	if _, _, err := wallet.ParsePath(cfg.Derive.Path); err != nil {
		return fmt.Errorf("derive.path: %w", err)
	}
	if cfg.Derive.Count < 1 || cfg.Derive.Count > MaxCount {
		return fmt.Errorf("derive.count must be in range [1, %d]", MaxCount)
	}
	if cfg.Derive.Workers < 0 || cfg.Derive.Workers > MaxWorkers {
		return fmt.Errorf("derive.workers must be in range [0, %d]", MaxWorkers)
	}

	if !log.ValidLevel(cfg.Log.Level) {
		return fmt.Errorf("log.level must be debug, info, warn or error")
	}
	return nil
}
