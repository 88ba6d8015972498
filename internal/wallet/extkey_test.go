package wallet

import (
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/Klingon-tech/klingnet-keygen/pkg/types"
)

// BIP-32 test vector 1.
var extKeyVector1 = []struct {
	path string
	xprv string
	xpub string
}{
	{
		"m",
		"xprv9s21ZrQH143K3QTDL4LXw2F7HEK3wJUD2nW2nRk4stbPy6cq3jPPqjiChkVvvNKmPGJxWUtg6LnF5kejMRNNU3TGtRBeJgk33yuGBxrMPHi",
		"xpub661MyMwAqRbcFtXgS5sYJABqqG9YLmC4Q1Rdap9gSE8NqtwybGhePY2gZ29ESFjqJoCu1Rupje8YtGqsefD265TMg7usUDFdp6W1EGMcet8",
	},
	{
		"m/0H",
		"xprv9uHRZZhk6KAJC1avXpDAp4MDc3sQKNxDiPvvkX8Br5ngLNv1TxvUxt4cV1rGL5hj6KCesnDYUhd7oWgT11eZG7XnxHrnYeSvkzY7d2bhkJ7",
		"xpub68Gmy5EdvgibQVfPdqkBBCHxA5htiqg55crXYuXoQRKfDBFA1WEjWgP6LHhwBZeNK1VTsfTFUHCdrfp1bgwQ9xv5ski8PX9rL2dZXvgGDnw",
	},
	{
		"m/0H/1",
		"xprv9wTYmMFdV23N2TdNG573QoEsfRrWKQgWeibmLntzniatZvR9BmLnvSxqu53Kw1UmYPxLgboyZQaXwTCg8MSY3H2EU4pWcQDnRnrVA1xe8fs",
		"xpub6ASuArnXKPbfEwhqN6e3mwBcDTgzisQN1wXN9BJcM47sSikHjJf3UFHKkNAWbWMiGj7Wf5uMash7SyYq527Hqck2AxYysAA7xmALppuCkwQ",
	},
	{
		"m/0H/1/2H",
		"xprv9z4pot5VBttmtdRTWfWQmoH1taj2axGVzFqSb8C9xaxKymcFzXBDptWmT7FwuEzG3ryjH4ktypQSAewRiNMjANTtpgP4mLTj34bhnZX7UiM",
		"xpub6D4BDPcP2GT577Vvch3R8wDkScZWzQzMMUm3PWbmWvVJrZwQY4VUNgqFJPMM3No2dFDFGTsxxpG5uJh7n7epu4trkrX7x7DogT5Uv6fcLW5",
	},
	{
		"m/0H/1/2H/2",
		"xprvA2JDeKCSNNZky6uBCviVfJSKyQ1mDYahRjijr5idH2WwLsEd4Hsb2Tyh8RfQMuPh7f7RtyzTtdrbdqqsunu5Mm3wDvUAKRHSC34sJ7in334",
		"xpub6FHa3pjLCk84BayeJxFW2SP4XRrFd1JYnxeLeU8EqN3vDfZmbqBqaGJAyiLjTAwm6ZLRQUMv1ZACTj37sR62cfN7fe5JnJ7dh8zL4fiyLHV",
	},
	{
		"m/0H/1/2H/2/1000000000",
		"xprvA41z7zogVVwxVSgdKUHDy1SKmdb533PjDz7J6N6mV6uS3ze1ai8FHa8kmHScGpWmj4WggLyQjgPie1rFSruoUihUZREPSL39UNdE3BBDu76",
		"xpub6H1LXWLaKsWFhvm6RVpEL9P4KfRZSW7abD2ttkWP3SSQvnyA8FSVqNTEcYFgJS2UaFcxupHiYkro49S8yGasTvXEYBVPamhGW6cFJodrTHy",
	},
}

func vector1Master(t *testing.T) *HDKey {
	t.Helper()
	master, err := NewMasterKey(mustHex(t, "000102030405060708090a0b0c0d0e0f"))
	if err != nil {
		t.Fatalf("NewMasterKey() error: %v", err)
	}
	return master
}

func TestSerialize_Vector1(t *testing.T) {
	master := vector1Master(t)

	for _, v := range extKeyVector1 {
		t.Run(v.path, func(t *testing.T) {
			key, err := DerivePath(master, v.path)
			if err != nil {
				t.Fatalf("DerivePath() error: %v", err)
			}
			if got := key.String(); got != v.xprv {
				t.Errorf("xprv = %s, want %s", got, v.xprv)
			}
			if got := key.Neuter().String(); got != v.xpub {
				t.Errorf("xpub = %s, want %s", got, v.xpub)
			}
		})
	}
}

func TestSerialize_Vector1PublicDerivation(t *testing.T) {
	// m/0H/1/2H is the deepest hardened node; its public children can be
	// derived from the xpub alone.
	parent, _, err := ParseExtendedKey(extKeyVector1[3].xpub)
	if err != nil {
		t.Fatalf("ParseExtendedKey() error: %v", err)
	}
	child, err := DerivePath(parent, "M/2/1000000000")
	if err != nil {
		t.Fatalf("DerivePath() error: %v", err)
	}
	if got, want := child.String(), extKeyVector1[5].xpub; got != want {
		t.Errorf("xpub = %s, want %s", got, want)
	}
}

func TestFingerprint_Vector1(t *testing.T) {
	master := vector1Master(t)
	fp := master.Fingerprint()
	if got := hex.EncodeToString(fp[:]); got != "3442193e" {
		t.Errorf("Fingerprint() = %s, want 3442193e", got)
	}
}

func TestParseExtendedKey_RoundTrip(t *testing.T) {
	for _, v := range extKeyVector1 {
		for _, s := range []string{v.xprv, v.xpub} {
			key, net, err := ParseExtendedKey(s)
			if err != nil {
				t.Fatalf("ParseExtendedKey(%s) error: %v", s, err)
			}
			if net.Name != Mainnet.Name {
				t.Errorf("network = %s, want mainnet", net.Name)
			}
			if key.IsPrivate() != strings.HasPrefix(s, "xprv") {
				t.Errorf("%s: IsPrivate() = %v", s, key.IsPrivate())
			}
			if got := key.String(); got != s {
				t.Errorf("re-serialized = %s, want %s", got, s)
			}
		}
	}
}

func TestSerialize_Testnet(t *testing.T) {
	master := vector1Master(t)

	tprv := master.Serialize(Testnet)
	tpub := master.Neuter().Serialize(Testnet)
	if !strings.HasPrefix(tprv, "tprv") {
		t.Errorf("testnet private key %s should start with tprv", tprv)
	}
	if !strings.HasPrefix(tpub, "tpub") {
		t.Errorf("testnet public key %s should start with tpub", tpub)
	}

	key, net, err := ParseExtendedKey(tprv)
	if err != nil {
		t.Fatalf("ParseExtendedKey() error: %v", err)
	}
	if net.Name != Testnet.Name {
		t.Errorf("network = %s, want testnet", net.Name)
	}
	if key.String() != master.String() {
		t.Error("testnet round trip changed the key")
	}
}

func TestParseExtendedKey_Errors(t *testing.T) {
	master := vector1Master(t)
	valid := master.String()

	// payload builds a raw 78-byte extended key from the master and lets
	// the caller corrupt it.
	payload := func(mutate func([]byte)) string {
		raw, err := types.CheckDecodeRaw(valid)
		if err != nil {
			t.Fatalf("CheckDecodeRaw() error: %v", err)
		}
		mutate(raw)
		return types.CheckEncodeRaw(raw)
	}

	corrupted := []byte(valid)
	if corrupted[20] == 'a' {
		corrupted[20] = 'b'
	} else {
		corrupted[20] = 'a'
	}

	tests := []struct {
		name string
		in   string
		want error
	}{
		{"bad checksum", string(corrupted), types.ErrChecksumMismatch},
		{"bad character", valid[:10] + "0" + valid[11:], types.ErrInvalidCharacter},
		{"too short", types.CheckEncodeRaw(make([]byte, 77)), ErrInvalidExtendedKey},
		{"unknown version", payload(func(b []byte) { b[0] = 0x01 }), ErrInvalidExtendedKey},
		{"master with index", payload(func(b []byte) { b[12] = 1 }), ErrInvalidExtendedKey},
		{"master with fingerprint", payload(func(b []byte) { b[5] = 1 }), ErrInvalidExtendedKey},
		{"private key prefix", payload(func(b []byte) { b[45] = 0x01 }), ErrInvalidExtendedKey},
		{"private key zero", payload(func(b []byte) {
			for i := 46; i < 78; i++ {
				b[i] = 0
			}
		}), ErrInvalidExtendedKey},
		{"public key off curve", types.CheckEncodeRaw(func() []byte {
			raw, _ := types.CheckDecodeRaw(master.Neuter().String())
			raw[45] = 0x05
			return raw
		}()), ErrInvalidExtendedKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseExtendedKey(tt.in)
			if !errors.Is(err, tt.want) {
				t.Errorf("ParseExtendedKey() error = %v, want %v", err, tt.want)
			}
		})
	}
}
