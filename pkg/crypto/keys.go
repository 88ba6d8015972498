package crypto

import (
	"errors"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Key and tweak errors.
var (
	// ErrInvalidPrivateKey means a scalar is zero or not below the curve order.
	ErrInvalidPrivateKey = errors.New("private key out of range")
	// ErrInvalidPublicKey means bytes do not encode a point on the curve.
	ErrInvalidPublicKey = errors.New("invalid public key")
	// ErrInvalidTweak means a tweak is not below the curve order.
	ErrInvalidTweak = errors.New("tweak out of range")
	// ErrZeroScalar means a tweaked private key came out as zero.
	ErrZeroScalar = errors.New("tweaked private key is zero")
	// ErrPointAtInfinity means a tweaked public key is the point at infinity.
	ErrPointAtInfinity = errors.New("tweaked public key is the point at infinity")
)

// PrivateKey wraps a secp256k1 private scalar.
type PrivateKey struct {
	key *secp256k1.PrivateKey
}

// PrivateKeyFromBytes creates a PrivateKey from a 32-byte big-endian
// scalar. The scalar must be in [1, n-1].
func PrivateKeyFromBytes(b []byte) (*PrivateKey, error) {
	if len(b) != 32 {
		return nil, fmt.Errorf("private key must be 32 bytes, got %d", len(b))
	}
	var k secp256k1.ModNScalar
	if overflow := k.SetByteSlice(b); overflow || k.IsZero() {
		k.Zero()
		return nil, ErrInvalidPrivateKey
	}
	key := secp256k1.NewPrivateKey(&k)
	k.Zero()
	return &PrivateKey{key: key}, nil
}

// PublicKey returns the compressed 33-byte public key.
func (pk *PrivateKey) PublicKey() []byte {
	return pk.key.PubKey().SerializeCompressed()
}

// Serialize returns the 32-byte private key scalar.
func (pk *PrivateKey) Serialize() []byte {
	return pk.key.Serialize()
}

// Zero securely zeroes the private key memory.
func (pk *PrivateKey) Zero() {
	pk.key.Zero()
}

// TweakAdd returns a new key (tweak + k) mod n. The receiver is not
// modified. It fails with ErrInvalidTweak when tweak >= n and with
// ErrZeroScalar when the sum is zero.
func (pk *PrivateKey) TweakAdd(tweak []byte) (*PrivateKey, error) {
	if len(tweak) != 32 {
		return nil, fmt.Errorf("tweak must be 32 bytes, got %d", len(tweak))
	}
	var sum secp256k1.ModNScalar
	if overflow := sum.SetByteSlice(tweak); overflow {
		sum.Zero()
		return nil, ErrInvalidTweak
	}
	sum.Add(&pk.key.Key)
	if sum.IsZero() {
		return nil, ErrZeroScalar
	}
	key := secp256k1.NewPrivateKey(&sum)
	sum.Zero()
	return &PrivateKey{key: key}, nil
}

// ValidatePublicKey checks that b is a compressed encoding of a point on
// the curve.
func ValidatePublicKey(b []byte) error {
	if len(b) != secp256k1.PubKeyBytesLenCompressed {
		return fmt.Errorf("%w: must be %d bytes, got %d", ErrInvalidPublicKey,
			secp256k1.PubKeyBytesLenCompressed, len(b))
	}
	if _, err := secp256k1.ParsePubKey(b); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	return nil
}

// TweakAddPublic returns the compressed encoding of tweak*G + P. It fails
// with ErrInvalidTweak when tweak >= n and with ErrPointAtInfinity when the
// sum is the point at infinity.
func TweakAddPublic(pubKey, tweak []byte) ([]byte, error) {
	if len(tweak) != 32 {
		return nil, fmt.Errorf("tweak must be 32 bytes, got %d", len(tweak))
	}
	parent, err := secp256k1.ParsePubKey(pubKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}

	var il secp256k1.ModNScalar
	if overflow := il.SetByteSlice(tweak); overflow {
		il.Zero()
		return nil, ErrInvalidTweak
	}

	var tweakPoint, parentPoint, sum secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&il, &tweakPoint)
	il.Zero()
	parent.AsJacobian(&parentPoint)
	secp256k1.AddNonConst(&tweakPoint, &parentPoint, &sum)
	if (sum.X.IsZero() && sum.Y.IsZero()) || sum.Z.IsZero() {
		return nil, ErrPointAtInfinity
	}
	sum.ToAffine()
	return secp256k1.NewPublicKey(&sum.X, &sum.Y).SerializeCompressed(), nil
}
