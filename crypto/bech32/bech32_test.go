package bech32

import (
	"bytes"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	payload := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20}

	enc, err := Encode("tempo", payload)
	if err != nil {
		t.Fatalf("encode: %+v", err)
	}
	hrp, got, err := Decode(string(enc))
	if err != nil {
		t.Fatalf("decode: %+v", err)
	}
	if hrp != "tempo" {
		t.Fatalf("got hrp %q", hrp)
	}
	if !bytes.Equal(payload, got) {
		t.Fatalf("payload mangled: %x", got)
	}
}

func TestDecodeGarbage(t *testing.T) {
	if _, _, err := Decode("this is not bech32"); err == nil {
		t.Fatal("want an error")
	}
	if _, _, err := Decode("tempo1qqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqxxxxxx"); err == nil {
		t.Fatal("checksum must be verified")
	}
}
