package token

import (
	"bytes"
	"testing"
)

func TestPad_AlwaysAddsPadding(t *testing.T) {
	for n := 0; n <= 32; n++ {
		in := bytes.Repeat([]byte{0xAA}, n)
		out := pad(in, 16)
		if len(out)%16 != 0 || len(out) <= n {
			t.Fatalf("len %d: padded to %d", n, len(out))
		}
		back, err := unpad(out, 16)
		if err != nil {
			t.Fatalf("len %d: unpad: %v", n, err)
		}
		if !bytes.Equal(back, in) {
			t.Fatalf("len %d: roundtrip mismatch", n)
		}
	}
}

func TestUnpad_RejectsBadPadding(t *testing.T) {
	block := func(last ...byte) []byte {
		b := bytes.Repeat([]byte{0x01}, 16-len(last))
		return append(b, last...)
	}
	cases := map[string][]byte{
		"empty":        nil,
		"unaligned":    make([]byte, 15),
		"zero":         block(0x00),
		"too large":    block(0x11),
		"inconsistent": block(0x02, 0x03, 0x03),
	}
	for name, in := range cases {
		if _, err := unpad(in, 16); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestUnpad_OnlyTrailingRunCounts(t *testing.T) {
	in := append(bytes.Repeat([]byte{0x01}, 13), 0x03, 0x02, 0x02)
	out, err := unpad(in, 16)
	if err != nil {
		t.Fatalf("unpad: %v", err)
	}
	if len(out) != 14 || out[13] != 0x03 {
		t.Fatalf("got %x", out)
	}
}
