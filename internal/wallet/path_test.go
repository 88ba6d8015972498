package wallet

import (
	"bytes"
	"errors"
	"testing"
)

func TestParsePath(t *testing.T) {
	h := HardenedOffset
	tests := []struct {
		path   string
		want   Path
		public bool
	}{
		{"m", Path{}, false},
		{"M", Path{}, true},
		{"m/0", Path{0}, false},
		{"m/0'", Path{h}, false},
		{"m/0h", Path{h}, false},
		{"m/0H", Path{h}, false},
		{"m/44'/0'/0'/0/0", Path{h + 44, h, h, 0, 0}, false},
		{"m/2147483647'/2147483647", Path{h + 2147483647, 2147483647}, false},
		{"M/0/1/2", Path{0, 1, 2}, true},
		{"m/007", Path{7}, false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, public, err := ParsePath(tt.path)
			if err != nil {
				t.Fatalf("ParsePath() error: %v", err)
			}
			if public != tt.public {
				t.Errorf("public = %v, want %v", public, tt.public)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ParsePath() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("segment %d = %d, want %d", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParsePath_Invalid(t *testing.T) {
	tests := []string{
		"",
		"/",
		"x/0",
		"m0",
		"44'/0'",
		"m/",
		"M/",
		"m//0",
		"m/0/",
		"m/'",
		"m/h",
		"m/-1",
		"m/+1",
		"m/ 1",
		"m/1''",
		"m/1a",
		"m/0x10",
		"m/2147483648",
		"m/2147483648'",
		"m/4294967296",
		"M/0'",
		"M/0/1h",
	}

	for _, path := range tests {
		t.Run(path, func(t *testing.T) {
			if _, _, err := ParsePath(path); !errors.Is(err, ErrInvalidPath) {
				t.Errorf("ParsePath(%q) error = %v, want ErrInvalidPath", path, err)
			}
		})
	}
}

func TestParsePath_HardenedPublicSegment(t *testing.T) {
	_, _, err := ParsePath("M/1/2'")
	if !errors.Is(err, ErrInvalidPath) || !errors.Is(err, ErrHardenedFromPublic) {
		t.Errorf("error = %v, want ErrInvalidPath wrapping ErrHardenedFromPublic", err)
	}
}

func TestPath_String(t *testing.T) {
	p, _, err := ParsePath("m/44h/0H/0'/1/5")
	if err != nil {
		t.Fatalf("ParsePath() error: %v", err)
	}
	if got, want := p.String(), "m/44'/0'/0'/1/5"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got := (Path{}).String(); got != "m" {
		t.Errorf("empty path String() = %q, want m", got)
	}
}

func TestDerivePath(t *testing.T) {
	master := testMaster(t)

	// Derive step by step
	c1, _ := master.DeriveChild(PurposeBIP44)
	c2, _ := c1.DeriveChild(CoinTypeBitcoin)

	// Derive in one call
	combined, err := DerivePath(master, "m/44'/0'")
	if err != nil {
		t.Fatalf("DerivePath() error: %v", err)
	}
	if !bytes.Equal(c2.PrivateKeyBytes(), combined.PrivateKeyBytes()) {
		t.Error("DerivePath should equal sequential DeriveChild")
	}

	indices, err := master.DeriveIndices(PurposeBIP44, CoinTypeBitcoin)
	if err != nil {
		t.Fatalf("DeriveIndices() error: %v", err)
	}
	if !bytes.Equal(indices.PrivateKeyBytes(), combined.PrivateKeyBytes()) {
		t.Error("DeriveIndices should equal DerivePath")
	}
}

func TestDerivePath_Associative(t *testing.T) {
	master := testMaster(t)

	whole, err := DerivePath(master, "m/0/1")
	if err != nil {
		t.Fatalf("DerivePath(m/0/1) error: %v", err)
	}
	first, err := DerivePath(master, "m/0")
	if err != nil {
		t.Fatalf("DerivePath(m/0) error: %v", err)
	}
	second, err := first.DeriveChild(1)
	if err != nil {
		t.Fatalf("DeriveChild(1) error: %v", err)
	}
	if whole.String() != second.String() {
		t.Error("m/0/1 should equal m/0 followed by child 1")
	}
}

func TestDerivePath_HardenedMarkersEquivalent(t *testing.T) {
	master := testMaster(t)

	var want string
	for _, path := range []string{"m/1'/2'", "m/1h/2h", "m/1H/2'"} {
		k, err := DerivePath(master, path)
		if err != nil {
			t.Fatalf("DerivePath(%q) error: %v", path, err)
		}
		if want == "" {
			want = k.String()
		} else if k.String() != want {
			t.Errorf("DerivePath(%q) differs from m/1'/2'", path)
		}
	}
}

func TestDerivePath_Roots(t *testing.T) {
	master := testMaster(t)

	root, err := DerivePath(master, "m")
	if err != nil {
		t.Fatalf("DerivePath(m) error: %v", err)
	}
	if root != master {
		t.Error("DerivePath(m) should return the root")
	}

	pubRoot, err := DerivePath(master, "M")
	if err != nil {
		t.Fatalf("DerivePath(M) error: %v", err)
	}
	if pubRoot.IsPrivate() {
		t.Error("DerivePath(M) should return a public key")
	}
	if !bytes.Equal(pubRoot.PublicKeyBytes(), master.PublicKeyBytes()) {
		t.Error("DerivePath(M) should keep the root public key")
	}
}

func TestDerivePath_PublicChain(t *testing.T) {
	master := testMaster(t)

	priv, err := DerivePath(master, "m/3/4")
	if err != nil {
		t.Fatalf("DerivePath(m/3/4) error: %v", err)
	}
	pub, err := DerivePath(master, "M/3/4")
	if err != nil {
		t.Fatalf("DerivePath(M/3/4) error: %v", err)
	}
	if pub.IsPrivate() {
		t.Error("M path should yield a public key")
	}
	if !bytes.Equal(priv.PublicKeyBytes(), pub.PublicKeyBytes()) {
		t.Error("M/3/4 should have the public key of m/3/4")
	}

	fromPub, err := DerivePath(master.Neuter(), "M/3/4")
	if err != nil {
		t.Fatalf("DerivePath(xpub, M/3/4) error: %v", err)
	}
	if fromPub.String() != pub.String() {
		t.Error("M/3/4 from a public root should match")
	}
}

func TestDerivePath_Errors(t *testing.T) {
	master := testMaster(t)
	pub := master.Neuter()

	tests := []struct {
		name string
		root *HDKey
		path string
		want []error
	}{
		{"private marker on public root", pub, "m/0", []error{ErrInvalidPath}},
		{"hardened on public chain", pub, "M/0'", []error{ErrInvalidPath, ErrHardenedFromPublic}},
		{"bad syntax", master, "m/abc", []error{ErrInvalidPath}},
		{"empty body", master, "m/", []error{ErrInvalidPath}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DerivePath(tt.root, tt.path)
			for _, want := range tt.want {
				if !errors.Is(err, want) {
					t.Errorf("DerivePath(%q) error = %v, want %v", tt.path, err, want)
				}
			}
		})
	}
}

func TestBIP44Path(t *testing.T) {
	if got, want := BIP44Path(0, ChangeExternal, 0), DefaultPath; got != want {
		t.Errorf("BIP44Path(0, 0, 0) = %q, want %q", got, want)
	}
	if got, want := BIP44Path(3, ChangeInternal, 17), "m/44'/0'/3'/1/17"; got != want {
		t.Errorf("BIP44Path(3, 1, 17) = %q, want %q", got, want)
	}
}
