package wallet

import (
	"errors"

	"github.com/Klingon-tech/klingnet-keygen/pkg/crypto"
)

// Mnemonic errors.
var (
	ErrInvalidEntropyLength = errors.New("invalid entropy length")
	ErrInvalidWordCount     = errors.New("invalid mnemonic word count")
	ErrUnknownWord          = errors.New("unknown mnemonic word")
	ErrInvalidChecksum      = errors.New("invalid mnemonic checksum")
)

// Key tree errors.
var (
	ErrInvalidSeed         = errors.New("invalid seed")
	ErrDerivationExhausted = errors.New("no valid child key within retry limit")
	ErrHardenedFromPublic  = errors.New("hardened derivation requires a private key")
	ErrDepthOverflow       = errors.New("maximum derivation depth reached")
	ErrInvalidPath         = errors.New("invalid derivation path")
	ErrInvalidExtendedKey  = errors.New("invalid extended key")

	// ErrPointAtInfinity is returned when public derivation keeps landing on
	// the point at infinity or an out-of-range tweak.
	ErrPointAtInfinity = crypto.ErrPointAtInfinity
)
