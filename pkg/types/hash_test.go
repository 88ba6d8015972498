package types

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestHash_String(t *testing.T) {
	var h Hash
	s := h.String()
	if s != strings.Repeat("0", 64) {
		t.Errorf("zero hash String() = %s, want all zeros", s)
	}

	h[0] = 0xab
	h[31] = 0xcd
	s = h.String()
	if !strings.HasPrefix(s, "ab") || !strings.HasSuffix(s, "cd") {
		t.Errorf("String() = %s, want ab...cd", s)
	}
}

func TestHexToHash160(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid", input: "751e76e8199196d454941c45d1b3a323f1433bd6"},
		{name: "all zeros", input: strings.Repeat("0", 40)},
		{name: "too short", input: "abcd", wantErr: true},
		{name: "too long", input: strings.Repeat("a", 42), wantErr: true},
		{name: "invalid hex", input: strings.Repeat("z", 40), wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := HexToHash160(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("HexToHash160(%q) should have returned error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("HexToHash160(%q) unexpected error: %v", tt.input, err)
			}
			if h.String() != tt.input {
				t.Errorf("roundtrip: got %s, want %s", h, tt.input)
			}
		})
	}
}

func TestHash160_JSON(t *testing.T) {
	h := Hash160{0xde, 0xad, 0xbe, 0xef}
	data, err := json.Marshal(h)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	var decoded Hash160
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if decoded != h {
		t.Errorf("roundtrip mismatch: got %s, want %s", decoded, h)
	}
}
