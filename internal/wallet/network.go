package wallet

import "fmt"

// Network holds the version bytes used when encoding addresses and
// extended keys.
type Network struct {
	Name           string
	AddressVersion byte
	PrivateVersion [4]byte
	PublicVersion  [4]byte
}

// Supported networks.
var (
	Mainnet = Network{
		Name:           "mainnet",
		AddressVersion: 0x00,
		PrivateVersion: [4]byte{0x04, 0x88, 0xad, 0xe4}, // xprv
		PublicVersion:  [4]byte{0x04, 0x88, 0xb2, 0x1e}, // xpub
	}
	Testnet = Network{
		Name:           "testnet",
		AddressVersion: 0x6f,
		PrivateVersion: [4]byte{0x04, 0x35, 0x83, 0x94}, // tprv
		PublicVersion:  [4]byte{0x04, 0x35, 0x87, 0xcf}, // tpub
	}
)

var networks = []Network{Mainnet, Testnet}

// NetworkByName looks up a network by its name.
func NetworkByName(name string) (Network, error) {
	for _, n := range networks {
		if n.Name == name {
			return n, nil
		}
	}
	return Network{}, fmt.Errorf("unknown network %q (expected mainnet or testnet)", name)
}

// networkByVersion finds the network owning an extended key version and
// reports whether the version is a private one.
func networkByVersion(v [4]byte) (Network, bool, bool) {
	for _, n := range networks {
		switch v {
		case n.PrivateVersion:
			return n, true, true
		case n.PublicVersion:
			return n, false, true
		}
	}
	return Network{}, false, false
}
