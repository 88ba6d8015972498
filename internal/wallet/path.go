package wallet

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// BIP-44 derivation path constants.
// Full path: m/44'/CoinType'/account'/change/index
const (
	// PurposeBIP44 is the BIP-44 purpose field (hardened).
	PurposeBIP44 = HardenedOffset + 44

	// CoinTypeBitcoin is the SLIP-44 coin type for Bitcoin (hardened).
	CoinTypeBitcoin = HardenedOffset + 0

	// ChangeExternal is for receiving addresses.
	ChangeExternal = 0

	// ChangeInternal is for change addresses.
	ChangeInternal = 1
)

// DefaultPath is the first receiving address of the first account.
const DefaultPath = "m/44'/0'/0'/0/0"

// Path is a parsed derivation path. Hardened indices include HardenedOffset.
type Path []uint32

// String formats the path with a private root marker and ' for hardened
// segments.
func (p Path) String() string {
	var b strings.Builder
	b.WriteString("m")
	for _, i := range p {
		b.WriteByte('/')
		b.WriteString(formatIndex(i))
	}
	return b.String()
}

// ParsePath parses a derivation path such as "m/44'/0'/0'/0/7" or "M/0/1".
// It reports whether the path starts at a public root (M). Each segment is
// a decimal index below 2^31, optionally suffixed by ', h or H for hardened.
func ParsePath(path string) (Path, bool, error) {
	segs := strings.Split(path, "/")

	var public bool
	switch segs[0] {
	case "m":
	case "M":
		public = true
	default:
		return nil, false, fmt.Errorf("%w: %q must start with m or M", ErrInvalidPath, path)
	}

	p := make(Path, 0, len(segs)-1)
	for n, seg := range segs[1:] {
		idx, err := parseSegment(seg)
		if err != nil {
			return nil, false, fmt.Errorf("%w: %q segment %d: %v", ErrInvalidPath, path, n+1, err)
		}
		if public && idx >= HardenedOffset {
			return nil, false, fmt.Errorf("%w: %q segment %d: %w", ErrInvalidPath, path, n+1, ErrHardenedFromPublic)
		}
		p = append(p, idx)
	}
	return p, public, nil
}

func parseSegment(seg string) (uint32, error) {
	if seg == "" {
		return 0, errors.New("empty segment")
	}
	var hardened bool
	switch seg[len(seg)-1] {
	case '\'', 'h', 'H':
		hardened = true
		seg = seg[:len(seg)-1]
	}
	if seg == "" || seg[0] < '0' || seg[0] > '9' {
		return 0, fmt.Errorf("bad index %q", seg)
	}
	v, err := strconv.ParseUint(seg, 10, 32)
	if err != nil || uint32(v) >= HardenedOffset {
		return 0, fmt.Errorf("index %q out of range", seg)
	}
	if hardened {
		return uint32(v) + HardenedOffset, nil
	}
	return uint32(v), nil
}

// DerivePath derives the key at path starting from root. A path starting
// with m requires a private root; M derives from the root's public key.
// A bare m or M returns the root itself (neutered for M).
func DerivePath(root *HDKey, path string) (*HDKey, error) {
	indices, public, err := ParsePath(path)
	if err != nil {
		return nil, err
	}

	node := root
	if public {
		node = root.Neuter()
	} else if !root.IsPrivate() {
		return nil, fmt.Errorf("%w: %q requires a private root key", ErrInvalidPath, path)
	}

	child, err := node.DeriveIndices(indices...)
	if err != nil {
		if errors.Is(err, ErrHardenedFromPublic) {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidPath, path, err)
		}
		return nil, fmt.Errorf("derive %s: %w", path, err)
	}
	return child, nil
}

// DeriveIndices derives a key along a sequence of indices.
func (k *HDKey) DeriveIndices(indices ...uint32) (*HDKey, error) {
	current := k
	for _, idx := range indices {
		child, err := current.DeriveChild(idx)
		if err != nil {
			return nil, err
		}
		current = child
	}
	return current, nil
}

// DeriveAddress derives the key at m/44'/0'/account'/change/index.
func (k *HDKey) DeriveAddress(account, change, index uint32) (*HDKey, error) {
	if account >= HardenedOffset || change >= HardenedOffset || index >= HardenedOffset {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPath, BIP44Path(account, change, index))
	}
	return k.DeriveIndices(
		PurposeBIP44,
		CoinTypeBitcoin,
		HardenedOffset+account,
		change,
		index,
	)
}

// BIP44Path formats the BIP-44 path for an account, change chain and index.
func BIP44Path(account, change, index uint32) string {
	return fmt.Sprintf("m/44'/0'/%d'/%d/%d", account, change, index)
}
