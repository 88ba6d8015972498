package wallet

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/Klingon-tech/klingnet-keygen/internal/log"
	"github.com/Klingon-tech/klingnet-keygen/pkg/crypto"
	"github.com/Klingon-tech/klingnet-keygen/pkg/types"
)

const (
	// HardenedOffset is added to an index to request hardened derivation.
	HardenedOffset uint32 = 0x80000000

	// MaxDepth is the deepest node a key tree can hold.
	MaxDepth = 255

	// MaxDerivationRetries bounds how many consecutive indices DeriveChild
	// tries when a child key is invalid.
	MaxDerivationRetries = 16

	// Seed length bounds for NewMasterKey.
	MinSeedSize = 16
	MaxSeedSize = 64
)

var masterKeySalt = []byte("Bitcoin seed")

// hmacSHA512 is replaced in tests to force invalid child keys.
var hmacSHA512 = crypto.HMACSHA512

// HDKey represents a hierarchical deterministic key (BIP-32).
// An HDKey is never modified after construction except by Zero.
type HDKey struct {
	chainCode [32]byte
	priv      *crypto.PrivateKey // nil for public-only keys
	pub       []byte             // compressed, always set
	depth     uint8
	index     uint32
	parentFP  [4]byte
}

// NewMasterKey creates a master HD key from a 16 to 64 byte seed.
func NewMasterKey(seed []byte) (*HDKey, error) {
	if len(seed) < MinSeedSize || len(seed) > MaxSeedSize {
		return nil, fmt.Errorf("%w: must be %d to %d bytes, got %d",
			ErrInvalidSeed, MinSeedSize, MaxSeedSize, len(seed))
	}

	i := hmacSHA512(masterKeySalt, seed)
	defer crypto.Zero(i)

	priv, err := crypto.PrivateKeyFromBytes(i[:32])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSeed, err)
	}
	k := &HDKey{priv: priv, pub: priv.PublicKey()}
	copy(k.chainCode[:], i[32:])

	log.KeyTree.Debug().
		Hex("fingerprint", k.fingerprint()).
		Msg("master key created")
	return k, nil
}

// DeriveChild derives a child key at the given index.
// For hardened derivation, add HardenedOffset to the index.
//
// When the index yields an invalid key the next index is tried, up to
// MaxDerivationRetries times, without leaving the index's half of the
// index space. The returned key's Index reports the index actually used.
func (k *HDKey) DeriveChild(index uint32) (*HDKey, error) {
	if k.depth == MaxDepth {
		return nil, fmt.Errorf("derive child %s: %w", formatIndex(index), ErrDepthOverflow)
	}
	hardened := index >= HardenedOffset
	if hardened && k.priv == nil {
		return nil, fmt.Errorf("derive child %s: %w", formatIndex(index), ErrHardenedFromPublic)
	}

	for attempt := uint32(0); attempt < MaxDerivationRetries; attempt++ {
		i := index + attempt
		if i < index || (i >= HardenedOffset) != hardened {
			break
		}
		child, err := k.deriveAt(i)
		if err == nil {
			log.KeyTree.Debug().
				Uint8("depth", child.depth).
				Str("index", formatIndex(i)).
				Hex("parent_fp", child.parentFP[:]).
				Msg("derived child key")
			return child, nil
		}
		if !errors.Is(err, crypto.ErrInvalidTweak) &&
			!errors.Is(err, crypto.ErrZeroScalar) &&
			!errors.Is(err, crypto.ErrPointAtInfinity) {
			return nil, fmt.Errorf("derive child %s: %w", formatIndex(i), err)
		}
		log.KeyTree.Warn().
			Str("index", formatIndex(i)).
			Err(err).
			Msg("invalid child key, trying next index")
	}

	if k.priv != nil {
		return nil, fmt.Errorf("derive child %s: %w", formatIndex(index), ErrDerivationExhausted)
	}
	return nil, fmt.Errorf("derive child %s: %w", formatIndex(index), ErrPointAtInfinity)
}

// deriveAt runs one CKDpriv or CKDpub step for exactly index i.
func (k *HDKey) deriveAt(i uint32) (*HDKey, error) {
	data := make([]byte, 37)
	defer crypto.Zero(data)
	if i >= HardenedOffset {
		priv := k.priv.Serialize()
		copy(data[1:33], priv)
		crypto.Zero(priv)
	} else {
		copy(data, k.pub)
	}
	binary.BigEndian.PutUint32(data[33:], i)

	sum := hmacSHA512(k.chainCode[:], data)
	defer crypto.Zero(sum)
	il, ir := sum[:32], sum[32:]

	child := &HDKey{depth: k.depth + 1, index: i}
	copy(child.parentFP[:], k.fingerprint())
	copy(child.chainCode[:], ir)

	if k.priv != nil {
		priv, err := k.priv.TweakAdd(il)
		if err != nil {
			return nil, err
		}
		child.priv = priv
		child.pub = priv.PublicKey()
		return child, nil
	}

	pub, err := crypto.TweakAddPublic(k.pub, il)
	if err != nil {
		return nil, err
	}
	child.pub = pub
	return child, nil
}

// PrivateKeyBytes returns the raw 32-byte private key.
// Returns nil if this is a public-only key.
func (k *HDKey) PrivateKeyBytes() []byte {
	if k.priv == nil {
		return nil
	}
	return k.priv.Serialize()
}

// PublicKeyBytes returns the compressed 33-byte public key.
func (k *HDKey) PublicKeyBytes() []byte {
	return append([]byte(nil), k.pub...)
}

// ChainCode returns a copy of the 32-byte chain code.
func (k *HDKey) ChainCode() []byte {
	return append([]byte(nil), k.chainCode[:]...)
}

// Address returns the Base58Check address of this key's public key.
func (k *HDKey) Address(version byte) types.Address {
	return types.NewAddress(version, crypto.Hash160(k.pub))
}

// IsPrivate returns true if this key contains a private key.
func (k *HDKey) IsPrivate() bool {
	return k.priv != nil
}

// Depth returns the derivation depth (0 for master).
func (k *HDKey) Depth() uint8 {
	return k.depth
}

// Index returns the child index, including the hardened bit.
func (k *HDKey) Index() uint32 {
	return k.index
}

// ParentFingerprint returns the fingerprint of the parent key (zero for master).
func (k *HDKey) ParentFingerprint() [4]byte {
	return k.parentFP
}

// Fingerprint returns the first 4 bytes of HASH160(public key).
func (k *HDKey) Fingerprint() [4]byte {
	var fp [4]byte
	copy(fp[:], k.fingerprint())
	return fp
}

func (k *HDKey) fingerprint() []byte {
	h := crypto.Hash160(k.pub)
	return h[:4]
}

// Neuter returns a public-key-only copy (for watch-only wallets).
func (k *HDKey) Neuter() *HDKey {
	if k.priv == nil {
		return k
	}
	return &HDKey{
		chainCode: k.chainCode,
		pub:       k.PublicKeyBytes(),
		depth:     k.depth,
		index:     k.index,
		parentFP:  k.parentFP,
	}
}

// Zero wipes the private key and chain code held by this key.
// The key must not be used afterwards.
func (k *HDKey) Zero() {
	if k.priv != nil {
		k.priv.Zero()
	}
	crypto.Zero(k.chainCode[:])
}

func formatIndex(i uint32) string {
	if i >= HardenedOffset {
		return fmt.Sprintf("%d'", i-HardenedOffset)
	}
	return fmt.Sprintf("%d", i)
}
