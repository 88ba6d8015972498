package types

import (
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // hash160 is defined over RIPEMD-160.
)

// PubKeySize is the length of a compressed secp256k1 public key.
const PubKeySize = 33

// Address version bytes (network identifiers).
const (
	MainnetVersion byte = 0x00
	TestnetVersion byte = 0x6f
)

// AddressPayloadSize is version(1) + hash160(20).
const AddressPayloadSize = 1 + Hash160Size

// ErrInvalidPubKey is returned when a public key is not a 33-byte
// compressed secp256k1 point encoding.
var ErrInvalidPubKey = errors.New("invalid compressed public key")

// Address is a versioned public key hash, rendered as Base58Check.
type Address struct {
	Version byte
	Hash    Hash160
}

// NewAddress builds an address from a version byte and public key hash.
func NewAddress(version byte, hash Hash160) Address {
	return Address{Version: version, Hash: hash}
}

// AddressFromPubKey hashes a compressed public key into an address.
func AddressFromPubKey(pubKey []byte, version byte) (Address, error) {
	if err := checkPubKey(pubKey); err != nil {
		return Address{}, err
	}
	return NewAddress(version, HashPubKey(pubKey)), nil
}

// HashPubKey returns RIPEMD-160(SHA-256(data)).
func HashPubKey(data []byte) Hash160 {
	sha := sha256.Sum256(data)
	r := ripemd160.New()
	r.Write(sha[:])
	var h Hash160
	copy(h[:], r.Sum(nil))
	return h
}

// String returns the Base58Check encoding of version || hash160.
func (a Address) String() string {
	return CheckEncode(a.Version, a.Hash[:])
}

// MarshalJSON encodes the address as a Base58Check string.
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON decodes a Base58Check string into an address.
func (a *Address) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*a = Address{}
		return nil
	}
	parsed, err := ParseAddress(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// EncodeAddress computes the Base58Check address of a compressed public key.
func EncodeAddress(pubKey []byte, version byte) (string, error) {
	addr, err := AddressFromPubKey(pubKey, version)
	if err != nil {
		return "", err
	}
	return addr.String(), nil
}

// DecodeAddress is the inverse of EncodeAddress: it returns the version
// byte and the public key hash.
func DecodeAddress(s string) (byte, Hash160, error) {
	addr, err := ParseAddress(s)
	if err != nil {
		return 0, Hash160{}, err
	}
	return addr.Version, addr.Hash, nil
}

// ParseAddress parses a Base58Check address string.
func ParseAddress(s string) (Address, error) {
	if s == "" {
		return Address{}, fmt.Errorf("empty address")
	}
	version, payload, err := CheckDecode(s)
	if err != nil {
		return Address{}, fmt.Errorf("decode address %q: %w", s, err)
	}
	if len(payload) != Hash160Size {
		return Address{}, fmt.Errorf("decode address %q: %w: payload must be %d bytes, got %d",
			s, ErrInvalidFormat, Hash160Size, len(payload))
	}
	var a Address
	a.Version = version
	copy(a.Hash[:], payload)
	return a, nil
}

func checkPubKey(pubKey []byte) error {
	if len(pubKey) != PubKeySize {
		return fmt.Errorf("%w: must be %d bytes, got %d", ErrInvalidPubKey, PubKeySize, len(pubKey))
	}
	if pubKey[0] != 0x02 && pubKey[0] != 0x03 {
		return fmt.Errorf("%w: bad prefix 0x%02x", ErrInvalidPubKey, pubKey[0])
	}
	return nil
}
