package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/base58"
)

// Base58 alphabet used for encoding (Bitcoin ordering).
const base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// Base58 errors.
var (
	ErrInvalidCharacter = errors.New("base58: invalid character")
	ErrChecksumMismatch = errors.New("base58: checksum mismatch")
	ErrInvalidFormat    = errors.New("base58: invalid format")
)

// Base58Encode encodes data in Base58. Every leading zero byte becomes a
// leading '1'.
func Base58Encode(data []byte) string {
	return base58.Encode(data)
}

// Base58Decode decodes a Base58 string. Every leading '1' becomes a
// leading zero byte.
func Base58Decode(s string) ([]byte, error) {
	if err := checkAlphabet(s); err != nil {
		return nil, err
	}
	return base58.Decode(s), nil
}

// checkAlphabet reports the first byte of s outside the Base58 alphabet.
// base58.Decode signals bad input only with an empty result.
func checkAlphabet(s string) error {
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(base58Alphabet, s[i]) < 0 {
			return fmt.Errorf("%w %q at offset %d", ErrInvalidCharacter, s[i], i)
		}
	}
	return nil
}

// CheckEncode encodes version || payload || checksum in Base58.
func CheckEncode(version byte, payload []byte) string {
	return base58.CheckEncode(payload, version)
}

// CheckEncodeRaw appends a double SHA-256 checksum to data and encodes the
// result in Base58. Used for multi-byte version prefixes (extended keys);
// the first byte of data plays the part of the version byte.
func CheckEncodeRaw(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	return base58.CheckEncode(data[1:], data[0])
}

// CheckDecode decodes a Base58Check string produced by CheckEncode.
func CheckDecode(s string) (version byte, payload []byte, err error) {
	if err := checkAlphabet(s); err != nil {
		return 0, nil, err
	}
	payload, version, err = base58.CheckDecode(s)
	switch {
	case errors.Is(err, base58.ErrChecksum):
		return 0, nil, ErrChecksumMismatch
	case errors.Is(err, base58.ErrInvalidFormat):
		return 0, nil, fmt.Errorf("%w: shorter than version and checksum", ErrInvalidFormat)
	case err != nil:
		return 0, nil, err
	}
	return version, payload, nil
}

// CheckDecodeRaw decodes a Base58Check string and returns the data with
// the checksum removed.
func CheckDecodeRaw(s string) ([]byte, error) {
	version, payload, err := CheckDecode(s)
	if err != nil {
		return nil, err
	}
	return append([]byte{version}, payload...), nil
}
