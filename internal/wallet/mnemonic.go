// Package wallet implements HD wallet functionality: BIP-39 mnemonics and
// seeds, and the BIP-32 key tree.
package wallet

import (
	"fmt"
	"strings"

	"github.com/Klingon-tech/klingnet-keygen/pkg/crypto"
	"github.com/tyler-smith/go-bip39"
)

// Entropy sizes in bits.
const (
	DefaultEntropyBits = 128
	MinEntropyBits     = 128
	MaxEntropyBits     = 256
)

const bitsPerWord = 11

// GenerateMnemonic creates a new mnemonic from bits of random entropy.
// bits must be a multiple of 32 between 128 and 256.
func GenerateMnemonic(bits int) (string, error) {
	if err := checkEntropyBits(bits); err != nil {
		return "", err
	}
	entropy, err := bip39.NewEntropy(bits)
	if err != nil {
		return "", fmt.Errorf("generate entropy: %w", err)
	}
	defer crypto.Zero(entropy)

	mnemonic, err := NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("generate mnemonic: %w", err)
	}
	return mnemonic, nil
}

// NewMnemonic encodes entropy as a space-separated mnemonic sentence.
// The entropy is followed by the first len(entropy)*8/32 bits of its
// SHA-256 digest and the result is read as 11-bit word indices.
func NewMnemonic(entropy []byte) (string, error) {
	if err := checkEntropyBits(len(entropy) * 8); err != nil {
		return "", err
	}

	// At most 8 checksum bits, so one digest byte is enough.
	sum := crypto.Hash(entropy)
	data := make([]byte, len(entropy)+1)
	copy(data, entropy)
	data[len(entropy)] = sum[0]
	defer crypto.Zero(data)

	totalBits := len(entropy)*8 + len(entropy)*8/32
	words := make([]string, totalBits/bitsPerWord)
	for i := range words {
		words[i], _ = English.Word(readBits(data, i*bitsPerWord))
	}
	return strings.Join(words, " "), nil
}

// MnemonicToEntropy decodes a mnemonic back to its entropy, verifying the
// word count, every word and the checksum. Words may be separated by any
// whitespace.
func MnemonicToEntropy(mnemonic string) ([]byte, error) {
	words := strings.Fields(mnemonic)
	n := len(words)
	if n < 12 || n > 24 || n%3 != 0 {
		return nil, fmt.Errorf("%w: %d words: %w", ErrInvalidWordCount, n, ErrInvalidEntropyLength)
	}

	totalBits := n * bitsPerWord
	entBits := totalBits * 32 / 33
	csBits := totalBits - entBits

	data := make([]byte, (totalBits+7)/8)
	defer crypto.Zero(data)
	for i, w := range words {
		idx, ok := English.Index(w)
		if !ok {
			return nil, fmt.Errorf("%w %q at position %d", ErrUnknownWord, w, i+1)
		}
		writeBits(data, i*bitsPerWord, idx)
	}

	entropy := make([]byte, entBits/8)
	copy(entropy, data)

	sum := crypto.Hash(entropy)
	want := sum[0] >> (8 - csBits)
	got := data[entBits/8] >> (8 - csBits)
	if got != want {
		crypto.Zero(entropy)
		return nil, ErrInvalidChecksum
	}
	return entropy, nil
}

// ValidateMnemonic checks if a mnemonic is valid per BIP-39
// (correct word count, valid words, valid checksum).
func ValidateMnemonic(mnemonic string) bool {
	entropy, err := MnemonicToEntropy(mnemonic)
	if err != nil {
		return false
	}
	crypto.Zero(entropy)
	return true
}

func checkEntropyBits(bits int) error {
	if bits < MinEntropyBits || bits > MaxEntropyBits || bits%32 != 0 {
		return fmt.Errorf("%w: %d bits", ErrInvalidEntropyLength, bits)
	}
	return nil
}

// readBits returns the 11-bit big-endian value starting at bit offset.
func readBits(data []byte, offset int) int {
	v := 0
	for b := offset; b < offset+bitsPerWord; b++ {
		bit := (data[b/8] >> (7 - uint(b%8))) & 1
		v = v<<1 | int(bit)
	}
	return v
}

// writeBits stores the low 11 bits of v at bit offset, MSB first.
func writeBits(data []byte, offset, v int) {
	for i := 0; i < bitsPerWord; i++ {
		if v>>(bitsPerWord-1-i)&1 == 1 {
			b := offset + i
			data[b/8] |= 1 << (7 - uint(b%8))
		}
	}
}
