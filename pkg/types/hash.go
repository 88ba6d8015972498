// Package types defines the primitive value types shared by the key tree
// and the address encoder.
package types

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// HashSize is the length of a SHA-256 digest in bytes.
const HashSize = 32

// Hash160Size is the length of a RIPEMD-160(SHA-256(x)) digest in bytes.
const Hash160Size = 20

// Hash represents a 256-bit hash value.
type Hash [HashSize]byte

// Hash160 represents a 160-bit public key hash.
type Hash160 [Hash160Size]byte

// String returns the hex-encoded hash.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// String returns the hex-encoded hash.
func (h Hash160) String() string {
	return hex.EncodeToString(h[:])
}

// MarshalJSON encodes the hash as a hex string.
func (h Hash160) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

// UnmarshalJSON decodes a hex string into a hash.
func (h *Hash160) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*h = Hash160{}
		return nil
	}
	parsed, err := HexToHash160(s)
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// HexToHash160 converts a hex string to a Hash160.
// Returns an error if the string is not exactly 40 hex characters.
func HexToHash160(s string) (Hash160, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Hash160{}, fmt.Errorf("invalid hex: %w", err)
	}
	if len(b) != Hash160Size {
		return Hash160{}, fmt.Errorf("hash160 must be %d bytes, got %d", Hash160Size, len(b))
	}
	var h Hash160
	copy(h[:], b)
	return h, nil
}
