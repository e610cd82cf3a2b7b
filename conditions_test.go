package tempo

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestConditionParse(t *testing.T) {
	cases := map[string]struct {
		condition Condition
		wantExt   string
		wantTyp   string
		wantData  []byte
		wantErr   bool
	}{
		"valid condition": {
			condition: NewCondition("sigs", "ed25519", []byte{1, 2, 3}),
			wantExt:   "sigs",
			wantTyp:   "ed25519",
			wantData:  []byte{1, 2, 3},
		},
		"binary data with a newline": {
			condition: NewCondition("sigs", "ed25519", []byte{0x20, 0x0a, 0x20}),
			wantExt:   "sigs",
			wantTyp:   "ed25519",
			wantData:  []byte{0x20, 0x0a, 0x20},
		},
		"missing data": {
			condition: Condition("sigs/ed25519/"),
			wantErr:   true,
		},
		"not enough sections": {
			condition: Condition("sigs/foobar"),
			wantErr:   true,
		},
		"garbage": {
			condition: Condition{0xff, 0x01},
			wantErr:   true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ext, typ, data, err := tc.condition.Parse()
			if tc.wantErr {
				if err == nil {
					t.Fatal("want an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parse: %+v", err)
			}
			if ext != tc.wantExt || typ != tc.wantTyp || !bytes.Equal(data, tc.wantData) {
				t.Fatalf("unexpected chunks: %q %q %v", ext, typ, data)
			}
		})
	}
}

func TestConditionAddress(t *testing.T) {
	a := NewCondition("sigs", "ed25519", []byte("foo")).Address()
	b := NewCondition("sigs", "ed25519", []byte("bar")).Address()

	if err := a.Validate(); err != nil {
		t.Fatalf("address is invalid: %+v", err)
	}
	if len(a) != AddressLength {
		t.Fatalf("address has %d bytes", len(a))
	}
	if a.Equals(b) {
		t.Fatal("different conditions must produce different addresses")
	}
	if !a.Equals(NewCondition("sigs", "ed25519", []byte("foo")).Address()) {
		t.Fatal("address derivation must be deterministic")
	}
}

func TestAddressUnmarshalJSON(t *testing.T) {
	fooAddr := NewCondition("sigs", "ed25519", []byte("foo")).Address()
	fooBech, err := fooAddr.Bech32("tempo")
	if err != nil {
		t.Fatalf("bech32: %+v", err)
	}

	cases := map[string]struct {
		json     string
		wantErr  bool
		wantAddr Address
	}{
		"default hex": {
			json:     `"` + fooAddr.String() + `"`,
			wantAddr: fooAddr,
		},
		"hex prefix": {
			json:     `"hex:` + fooAddr.String() + `"`,
			wantAddr: fooAddr,
		},
		"condition prefix": {
			json:     `"cond:sigs/ed25519/666F6F"`,
			wantAddr: fooAddr,
		},
		"bech32 prefix": {
			json:     `"bech32:` + fooBech + `"`,
			wantAddr: fooAddr,
		},
		"empty zeroes the address": {
			json:     `""`,
			wantAddr: nil,
		},
		"wrong size": {
			json:    `"1234"`,
			wantErr: true,
		},
		"unknown format": {
			json:    `"foobar:1234"`,
			wantErr: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var a Address
			err := json.Unmarshal([]byte(tc.json), &a)
			if tc.wantErr {
				if err == nil {
					t.Fatal("want an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unmarshal: %+v", err)
			}
			if !a.Equals(tc.wantAddr) {
				t.Fatalf("want %s, got %s", tc.wantAddr, a)
			}
		})
	}
}
