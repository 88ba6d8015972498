package wallet

import (
	"encoding/binary"
	"fmt"

	"github.com/Klingon-tech/klingnet-keygen/pkg/crypto"
	"github.com/Klingon-tech/klingnet-keygen/pkg/types"
)

// ExtendedKeySize is the length of a serialized extended key before
// Base58Check encoding.
const ExtendedKeySize = 78

// String returns the mainnet extended key (xprv or xpub).
func (k *HDKey) String() string {
	return k.Serialize(Mainnet)
}

// Serialize encodes the key as a Base58Check extended key for net:
// version(4) || depth(1) || parent fingerprint(4) || index(4) ||
// chain code(32) || key(33).
func (k *HDKey) Serialize(net Network) string {
	buf := make([]byte, 0, ExtendedKeySize)
	defer func() { crypto.Zero(buf[:cap(buf)]) }()

	if k.priv != nil {
		buf = append(buf, net.PrivateVersion[:]...)
	} else {
		buf = append(buf, net.PublicVersion[:]...)
	}
	buf = append(buf, k.depth)
	buf = append(buf, k.parentFP[:]...)
	buf = binary.BigEndian.AppendUint32(buf, k.index)
	buf = append(buf, k.chainCode[:]...)
	if k.priv != nil {
		priv := k.priv.Serialize()
		buf = append(buf, 0x00)
		buf = append(buf, priv...)
		crypto.Zero(priv)
	} else {
		buf = append(buf, k.pub...)
	}
	return types.CheckEncodeRaw(buf)
}

// ParseExtendedKey decodes an xprv, xpub, tprv or tpub string and reports
// the network it belongs to.
func ParseExtendedKey(s string) (*HDKey, Network, error) {
	data, err := types.CheckDecodeRaw(s)
	if err != nil {
		return nil, Network{}, fmt.Errorf("decode extended key: %w", err)
	}
	defer crypto.Zero(data)
	if len(data) != ExtendedKeySize {
		return nil, Network{}, fmt.Errorf("%w: length %d, want %d",
			ErrInvalidExtendedKey, len(data), ExtendedKeySize)
	}

	var version [4]byte
	copy(version[:], data[:4])
	net, private, ok := networkByVersion(version)
	if !ok {
		return nil, Network{}, fmt.Errorf("%w: unknown version %x", ErrInvalidExtendedKey, version)
	}

	k := &HDKey{
		depth: data[4],
		index: binary.BigEndian.Uint32(data[9:13]),
	}
	copy(k.parentFP[:], data[5:9])
	copy(k.chainCode[:], data[13:45])
	if k.depth == 0 && (k.parentFP != [4]byte{} || k.index != 0) {
		return nil, Network{}, fmt.Errorf("%w: master key with parent fingerprint or index", ErrInvalidExtendedKey)
	}

	keyData := data[45:]
	if private {
		if keyData[0] != 0x00 {
			return nil, Network{}, fmt.Errorf("%w: private key prefix %#x", ErrInvalidExtendedKey, keyData[0])
		}
		priv, err := crypto.PrivateKeyFromBytes(keyData[1:])
		if err != nil {
			return nil, Network{}, fmt.Errorf("%w: %v", ErrInvalidExtendedKey, err)
		}
		k.priv = priv
		k.pub = priv.PublicKey()
	} else {
		if err := crypto.ValidatePublicKey(keyData); err != nil {
			return nil, Network{}, fmt.Errorf("%w: %v", ErrInvalidExtendedKey, err)
		}
		k.pub = append([]byte(nil), keyData...)
	}
	return k, net, nil
}
