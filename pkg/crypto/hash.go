// Package crypto provides the hash and secp256k1 primitives used by the key
// tree.
package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"

	"github.com/Klingon-tech/klingnet-keygen/pkg/types"
)

// Hash computes a SHA-256 hash of the input data.
func Hash(data []byte) types.Hash {
	return sha256.Sum256(data)
}

// Hash160 computes RIPEMD-160(SHA-256(data)).
func Hash160(data []byte) types.Hash160 {
	return types.HashPubKey(data)
}

// HMACSHA512 computes HMAC-SHA512(key, data). The caller owns the result
// and should Zero it once the halves have been consumed.
func HMACSHA512(key, data []byte) []byte {
	mac := hmac.New(sha512.New, key)
	mac.Write(data)
	return mac.Sum(nil)
}

// Zero overwrites b with zeros.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
