package bindata

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"math/rand"
	"strings"
	"testing"
)

const (
	mushroomHex    = "49276d206b696c6c696e6720796f757220627261696e206c696b65206120706f69736f6e6f7573206d757368726f6f6d"
	mushroomBase64 = "SSdtIGtpbGxpbmcgeW91ciBicmFpbiBsaWtlIGEgcG9pc29ub3VzIG11c2hyb29t"
	mushroomText   = "I'm killing your brain like a poisonous mushroom"
)

func TestHexToBase64(t *testing.T) {
	d, err := FromHex(mushroomHex)
	if err != nil {
		t.Fatalf("decode hex: %v", err)
	}
	if got := d.Base64(); got != mushroomBase64 {
		t.Fatalf("expected %q, got %q", mushroomBase64, got)
	}
	if !d.Equal(MustBase64(mushroomBase64)) {
		t.Fatal("hex and base64 decodings differ")
	}
	if text, err := d.Text(ASCII); err != nil || text != mushroomText {
		t.Fatalf("text: %q, %v", text, err)
	}
}

func TestBase64Conversion(t *testing.T) {
	tests := []struct {
		binary  []byte
		encoded string
	}{
		{[]byte{}, ""},
		{[]byte{0x00}, "AA=="},
		{[]byte{0x00, 0x00}, "AAA="},
		{[]byte{0x00, 0x00, 0x00}, "AAAA"},
		{[]byte("Hello, World!"), "SGVsbG8sIFdvcmxkIQ=="},
		{[]byte("Test@123!#$"), "VGVzdEAxMjMhIyQ="},
		{[]byte{0xFB, 0xFF}, "+/8="},
		{[]byte(mushroomText), mushroomBase64},
	}
	for _, tt := range tests {
		t.Run(tt.encoded, func(t *testing.T) {
			if got := New(tt.binary).Base64(); got != tt.encoded {
				t.Errorf("encode: expected %q, got %q", tt.encoded, got)
			}
			decoded, err := FromBase64(tt.encoded)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if !decoded.Equal(New(tt.binary)) {
				t.Errorf("decode: expected %x, got %s", tt.binary, decoded)
			}
		})
	}
}

func TestBase64PaddingCount(t *testing.T) {
	for n := 0; n < 12; n++ {
		encoded := New(make([]byte, n)).Base64()
		pads := len(encoded) - len(strings.TrimRight(encoded, "="))
		want := map[int]int{0: 0, 1: 2, 2: 1}[n%3]
		if pads != want {
			t.Errorf("%d bytes: expected %d padding characters, got %d (%q)", n, want, pads, encoded)
		}
		if len(encoded)%4 != 0 {
			t.Errorf("%d bytes: encoded length %d not a multiple of 4", n, len(encoded))
		}
	}
}

func TestBase64Invalid(t *testing.T) {
	var inputs []string
	for _, start := range []int{1, 2, 3} {
		for n := start; n < 33; n += 4 {
			inputs = append(inputs, strings.Repeat("0", n))
		}
	}
	inputs = append(inputs,
		"ThisIsAllValidSoFar?",
		"No Spaces Allowed!",
		"AA=A",
		"A===",
		"====",
		"AA==AAAA",
		"SGVs\nbG8=",
		"SGVsbG8_",
	)
	for _, in := range inputs {
		if _, err := FromBase64(in); !errors.Is(err, ErrFormat) {
			t.Errorf("FromBase64(%q): expected ErrFormat, got %v", in, err)
		}
	}
}

func TestHexConversion(t *testing.T) {
	for _, c := range "0123456789abcdefABCDEF" {
		h := "0" + string(c)
		d, err := FromHex(h)
		if err != nil {
			t.Fatalf("FromHex(%q): %v", h, err)
		}
		if got := d.Hex(); got != strings.ToUpper(h) {
			t.Errorf("expected %q, got %q", strings.ToUpper(h), got)
		}
	}

	upper, err := FromHex(strings.ToUpper(mushroomHex))
	if err != nil {
		t.Fatal(err)
	}
	lower, err := FromHex(mushroomHex)
	if err != nil {
		t.Fatal(err)
	}
	if !upper.Equal(lower) || !upper.Equal(MustText(mushroomText)) {
		t.Fatal("hex decoding depends on case")
	}
	if upper.Hex() != strings.ToUpper(mushroomHex) {
		t.Fatalf("unexpected hex %q", upper.Hex())
	}
}

func TestHexInvalid(t *testing.T) {
	var inputs []string
	for n := 1; n < 33; n += 2 {
		inputs = append(inputs, strings.Repeat("0", n))
	}
	for _, c := range "0123456789abcdefABCDEF" {
		inputs = append(inputs, string(c)+"g")
	}
	inputs = append(inputs, "0x00", "00 11", "zz")
	for _, in := range inputs {
		if _, err := FromHex(in); !errors.Is(err, ErrFormat) {
			t.Errorf("FromHex(%q): expected ErrFormat, got %v", in, err)
		}
	}
}

func TestCodecRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		raw := make([]byte, rng.Intn(100))
		rng.Read(raw)
		d := New(raw)

		if want := strings.ToUpper(hex.EncodeToString(raw)); d.Hex() != want {
			t.Fatalf("hex of %x: expected %q, got %q", raw, want, d.Hex())
		}
		if want := base64.StdEncoding.EncodeToString(raw); d.Base64() != want {
			t.Fatalf("base64 of %x: expected %q, got %q", raw, want, d.Base64())
		}

		fromHex, err := FromHex(d.Hex())
		if err != nil || !fromHex.Equal(d) {
			t.Fatalf("hex round trip of %x: %s, %v", raw, fromHex, err)
		}
		fromBase64, err := FromBase64(d.Base64())
		if err != nil || !fromBase64.Equal(d) {
			t.Fatalf("base64 round trip of %x: %s, %v", raw, fromBase64, err)
		}
	}
}

func TestBase64CanonicalForm(t *testing.T) {
	// Spare bits in the final group are dropped, so re-encoding
	// canonicalizes them.
	d, err := FromBase64("AB==")
	if err != nil {
		t.Fatal(err)
	}
	if got := d.Base64(); got != "AA==" {
		t.Fatalf("expected canonical %q, got %q", "AA==", got)
	}
}

func TestText(t *testing.T) {
	d := MustText("plain text\n")
	got, err := d.Text("")
	if err != nil || got != "plain text\n" {
		t.Fatalf("default encoding: %q, %v", got, err)
	}

	_, err = MustHex("41FF").Text(ASCII)
	if !errors.Is(err, ErrEncoding) {
		t.Fatalf("expected ErrEncoding, got %v", err)
	}

	latin, err := MustHex("41E9").Text(Latin1)
	if err != nil || latin != "Aé" {
		t.Fatalf("latin1: %q, %v", latin, err)
	}

	euro, err := MustHex("80").Text(Windows1252)
	if err != nil || euro != "€" {
		t.Fatalf("windows-1252: %q, %v", euro, err)
	}

	if _, err := d.Text("ebcdic"); !errors.Is(err, ErrValue) {
		t.Fatalf("unknown encoding: expected ErrValue, got %v", err)
	}
}

func TestFromText(t *testing.T) {
	if _, err := FromText("naïve", ASCII); !errors.Is(err, ErrEncoding) {
		t.Fatalf("expected ErrEncoding, got %v", err)
	}
	if _, err := FromText("€", Latin1); !errors.Is(err, ErrEncoding) {
		t.Fatalf("expected ErrEncoding for euro in latin1, got %v", err)
	}

	d, err := FromText("naïve", Latin1)
	if err != nil {
		t.Fatal(err)
	}
	if !d.Equal(MustHex("6E61EF7665")) {
		t.Fatalf("unexpected latin1 bytes %s", d)
	}
	back, err := d.Text(Latin1)
	if err != nil || back != "naïve" {
		t.Fatalf("latin1 round trip: %q, %v", back, err)
	}
}

func TestParseEncoding(t *testing.T) {
	tests := map[string]Encoding{
		"":           ASCII,
		"ASCII":      ASCII,
		"ISO-8859-1": Latin1,
		"cp1252":     Windows1252,
		" IBM437 ":   CP437,
	}
	for name, want := range tests {
		got, err := ParseEncoding(name)
		if err != nil || got != want {
			t.Errorf("ParseEncoding(%q) = %q, %v", name, got, err)
		}
	}
	if _, err := ParseEncoding("utf-8"); !errors.Is(err, ErrValue) {
		t.Errorf("expected ErrValue for utf-8, got %v", err)
	}
}
