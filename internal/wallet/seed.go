package wallet

import (
	"crypto/sha512"
	"fmt"

	"github.com/Klingon-tech/klingnet-keygen/internal/log"
	"github.com/Klingon-tech/klingnet-keygen/pkg/crypto"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/text/unicode/norm"
)

const (
	// SeedSize is the length of a derived seed in bytes (512 bits).
	SeedSize = 64

	// SeedIterations is the PBKDF2 round count fixed by BIP-39.
	SeedIterations = 2048

	seedSaltPrefix = "mnemonic"
)

// SeedFromMnemonic derives a 512-bit seed from a mnemonic and optional passphrase
// using PBKDF2-SHA512 as specified in BIP-39. The mnemonic must be valid.
func SeedFromMnemonic(mnemonic, passphrase string) ([]byte, error) {
	entropy, err := MnemonicToEntropy(mnemonic)
	if err != nil {
		return nil, fmt.Errorf("invalid mnemonic: %w", err)
	}
	crypto.Zero(entropy)
	return SeedFromMnemonicUnchecked(mnemonic, passphrase), nil
}

// SeedFromMnemonicUnchecked stretches any sentence into a seed without
// checking it against the word list. Both inputs are NFKD-normalized.
func SeedFromMnemonicUnchecked(mnemonic, passphrase string) []byte {
	defer log.Benchmark(&log.Wallet, "pbkdf2")()

	password := norm.NFKD.Bytes([]byte(mnemonic))
	salt := norm.NFKD.Bytes([]byte(seedSaltPrefix + passphrase))
	seed := pbkdf2.Key(password, salt, SeedIterations, SeedSize, sha512.New)
	crypto.Zero(password)
	crypto.Zero(salt)
	return seed
}
