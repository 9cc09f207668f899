package blockcipher

import (
	"bytes"
	"errors"
	"testing"

	"github.com/RowanDark/cryptokit/internal/bindata"
)

func TestPKCS7Pad(t *testing.T) {
	tests := []struct {
		in        string
		blockSize int
		want      string
	}{
		{"YELLOW SUBMARINE", 20, "YELLOW SUBMARINE\x04\x04\x04\x04"},
		{"", 4, "\x04\x04\x04\x04"},
		{"YELLOW SUBMARINE", 16, "YELLOW SUBMARINE" + string(bytes.Repeat([]byte{16}, 16))},
		{"YELLOW SUBMARINE", 8, "YELLOW SUBMARINE" + string(bytes.Repeat([]byte{8}, 8))},
		{"abc", 1, "abc\x01"},
		{"abcde", 4, "abcde\x03\x03\x03"},
	}
	for _, tc := range tests {
		got, err := PKCS7Pad([]byte(tc.in), tc.blockSize)
		if err != nil {
			t.Fatalf("PKCS7Pad(%q, %d): %v", tc.in, tc.blockSize, err)
		}
		if string(got) != tc.want {
			t.Fatalf("PKCS7Pad(%q, %d) = %q, want %q", tc.in, tc.blockSize, got, tc.want)
		}
		back, err := PKCS7Unpad(got, tc.blockSize)
		if err != nil {
			t.Fatalf("PKCS7Unpad(%q): %v", got, err)
		}
		if string(back) != tc.in {
			t.Fatalf("PKCS7Unpad(%q) = %q, want %q", got, back, tc.in)
		}
	}
}

func TestPKCS7PadDoesNotAlias(t *testing.T) {
	in := make([]byte, 3, 16)
	out, err := PKCS7Pad(in, 4)
	if err != nil {
		t.Fatal(err)
	}
	out[0] = 'x'
	if in[0] != 0 || len(in) != 3 {
		t.Fatal("PKCS7Pad wrote into its input")
	}
}

func TestPKCS7BlockSizeRange(t *testing.T) {
	for _, size := range []int{0, -1, 256} {
		if _, err := PKCS7Pad([]byte("x"), size); !errors.Is(err, bindata.ErrValue) {
			t.Fatalf("pad block size %d: expected ErrValue, got %v", size, err)
		}
		if _, err := PKCS7Unpad([]byte("x"), size); !errors.Is(err, bindata.ErrValue) {
			t.Fatalf("unpad block size %d: expected ErrValue, got %v", size, err)
		}
	}
	if _, err := PKCS7Pad(nil, 255); err != nil {
		t.Fatalf("block size 255 should be accepted: %v", err)
	}
}

func TestPKCS7UnpadRejects(t *testing.T) {
	tests := []string{
		"",
		"ICE ICE BABY\x04\x04\x04",
		"ICE ICE BABY\x05\x05\x05\x05",
		"ICE ICE BABY\x01\x02\x03\x04",
		"ICE ICE BABY\x00\x00\x00\x00",
		"ICE ICE BABY\x11\x11\x11\x11",
	}
	for _, in := range tests {
		if _, err := PKCS7Unpad([]byte(in), 16); !errors.Is(err, ErrBadPadding) {
			t.Fatalf("PKCS7Unpad(%q): expected ErrBadPadding, got %v", in, err)
		}
	}
	got, err := PKCS7Unpad([]byte("ICE ICE BABY\x04\x04\x04\x04"), 16)
	if err != nil || string(got) != "ICE ICE BABY" {
		t.Fatalf("unexpected unpad result %q (%v)", got, err)
	}
}

func TestRepeatedBlocks(t *testing.T) {
	a := bytes.Repeat([]byte{'A'}, 16)
	b := bytes.Repeat([]byte{'B'}, 16)
	ct := bytes.Join([][]byte{a, b, a, a, b, []byte("tail")}, nil)
	if got := RepeatedBlocks(ct, 16); got != 3 {
		t.Fatalf("expected 3 repeats, got %d", got)
	}
	if got := RepeatedBlocks(bytes.Join([][]byte{a, b}, nil), 16); got != 0 {
		t.Fatalf("expected no repeats, got %d", got)
	}
	if got := RepeatedBlocks(ct, 0); got != 0 {
		t.Fatalf("expected 0 for zero block size, got %d", got)
	}

	c, err := New([]byte("YELLOW SUBMARINE"), ECB)
	if err != nil {
		t.Fatal(err)
	}
	enc, err := c.Encrypt(bytes.Repeat(a, 4))
	if err != nil {
		t.Fatal(err)
	}
	if got := RepeatedBlocks(enc, BlockSize); got != 3 {
		t.Fatalf("expected ECB to leak 3 repeats, got %d", got)
	}
}
