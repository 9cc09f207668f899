package cipher

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/RowanDark/cryptokit/internal/bindata"
	"github.com/RowanDark/cryptokit/internal/blockcipher"
)

func TestPKCS7Operations(t *testing.T) {
	out, err := runOp(t, "pkcs7_pad", "YELLOW SUBMARINE", map[string]interface{}{"block_size": 20})
	if err != nil {
		t.Fatalf("pkcs7_pad: %v", err)
	}
	if string(out) != "YELLOW SUBMARINE\x04\x04\x04\x04" {
		t.Fatalf("unexpected padding %q", out)
	}

	out, err = runOp(t, "pkcs7_pad", "YELLOW SUBMARINE", nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 32 || out[31] != 16 {
		t.Fatalf("expected a full block of padding by default, got %q", out)
	}

	back, err := runOp(t, "pkcs7_unpad", string(out), nil)
	if err != nil || string(back) != "YELLOW SUBMARINE" {
		t.Fatalf("pkcs7_unpad = %q, %v", back, err)
	}
	if _, err := runOp(t, "pkcs7_unpad", "ICE ICE BABY\x01\x02\x03\x04", map[string]interface{}{"block_size": 16}); !errors.Is(err, blockcipher.ErrBadPadding) {
		t.Fatalf("expected ErrBadPadding, got %v", err)
	}
	if _, err := runOp(t, "pkcs7_pad", "x", map[string]interface{}{"block_size": 0}); !errors.Is(err, bindata.ErrValue) {
		t.Fatalf("expected ErrValue, got %v", err)
	}
}

func TestAESOperationsRoundTrip(t *testing.T) {
	plaintext := "Play that funky music, white boy"
	for _, mode := range []string{"ECB", "CBC", "CFB", "OFB", "CTR"} {
		t.Run(mode, func(t *testing.T) {
			params := map[string]interface{}{"key": "YELLOW SUBMARINE", "mode": mode}
			ct, err := runOp(t, "aes_encrypt", plaintext, params)
			if err != nil {
				t.Fatalf("aes_encrypt: %v", err)
			}
			pt, err := runOp(t, "aes_decrypt", string(ct), params)
			if err != nil {
				t.Fatalf("aes_decrypt: %v", err)
			}
			if string(pt) != plaintext {
				t.Fatalf("round trip gave %q", pt)
			}
		})
	}
}

func TestAESEncryptPrependsRandomIV(t *testing.T) {
	params := map[string]interface{}{"key_hex": "59454c4c4f57205355424d4152494e45", "mode": "cbc"}
	a, err := runOp(t, "aes_encrypt", "sixteen byte msg", params)
	if err != nil {
		t.Fatal(err)
	}
	b, err := runOp(t, "aes_encrypt", "sixteen byte msg", params)
	if err != nil {
		t.Fatal(err)
	}
	if len(a) != 3*blockcipher.BlockSize {
		t.Fatalf("expected iv + two blocks, got %d bytes", len(a))
	}
	if bytes.Equal(a, b) {
		t.Fatal("two encryptions with random ivs matched")
	}
}

func TestAESFixedIV(t *testing.T) {
	params := map[string]interface{}{
		"key":  "YELLOW SUBMARINE",
		"mode": "CBC",
		"iv":   strings.Repeat("00", blockcipher.BlockSize),
	}
	ct, err := runOp(t, "aes_encrypt", "sixteen byte msg", params)
	if err != nil {
		t.Fatal(err)
	}
	if len(ct) != 2*blockcipher.BlockSize {
		t.Fatalf("expected no iv prefix with a fixed iv, got %d bytes", len(ct))
	}

	c, err := blockcipher.New([]byte("YELLOW SUBMARINE"), blockcipher.CBC, blockcipher.WithIV(make([]byte, blockcipher.BlockSize)))
	if err != nil {
		t.Fatal(err)
	}
	padded, _ := blockcipher.PKCS7Pad([]byte("sixteen byte msg"), blockcipher.BlockSize)
	want, err := c.Encrypt(padded)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(ct, want) {
		t.Fatalf("operation and cipher disagree")
	}
}

func TestAESOperationErrors(t *testing.T) {
	tests := []struct {
		name   string
		op     string
		input  string
		params map[string]interface{}
	}{
		{"missing key", "aes_encrypt", "x", nil},
		{"short key", "aes_encrypt", "x", map[string]interface{}{"key": "short"}},
		{"bad mode", "aes_encrypt", "x", map[string]interface{}{"key": "YELLOW SUBMARINE", "mode": "GCM"}},
		{"bad iv", "aes_encrypt", "x", map[string]interface{}{"key": "YELLOW SUBMARINE", "mode": "CBC", "iv": "00"}},
		{"ecb with iv", "aes_encrypt", "x", map[string]interface{}{"key": "YELLOW SUBMARINE", "iv": strings.Repeat("00", 16)}},
		{"short ciphertext", "aes_decrypt", "tiny", map[string]interface{}{"key": "YELLOW SUBMARINE", "mode": "CTR"}},
		{"unaligned ecb", "aes_decrypt", "seventeen bytes!!", map[string]interface{}{"key": "YELLOW SUBMARINE"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := runOp(t, tt.op, tt.input, tt.params); !errors.Is(err, bindata.ErrValue) {
				t.Fatalf("expected ErrValue, got %v", err)
			}
		})
	}
}

func TestXORBreakSingleOperation(t *testing.T) {
	ct := bindata.MustHex("1b37373331363f78151b7f2b783431333d78397828372d363c78373e783a393b3736").Bytes()
	out, err := runOp(t, "xor_break_single", string(ct), map[string]interface{}{"keyspace": "letters"})
	if err != nil {
		t.Fatalf("xor_break_single: %v", err)
	}
	if string(out) != "Cooking MC's like a pound of bacon" {
		t.Fatalf("unexpected plaintext %q", out)
	}

	if _, err := runOp(t, "xor_break_single", "\xff\xfe", map[string]interface{}{"keyspace": "letters"}); !errors.Is(err, ErrNoPlaintext) {
		t.Fatalf("expected ErrNoPlaintext, got %v", err)
	}
	if _, err := runOp(t, "xor_break_single", "abc", map[string]interface{}{"method": "klingon"}); !errors.Is(err, bindata.ErrValue) {
		t.Fatalf("expected ErrValue for unknown method, got %v", err)
	}
	if _, err := runOp(t, "xor_break_single", "abc", map[string]interface{}{"keyspace": "emoji"}); !errors.Is(err, bindata.ErrValue) {
		t.Fatalf("expected ErrValue for unknown keyspace, got %v", err)
	}
}

func TestXORBreakRepeatingOperation(t *testing.T) {
	plaintext := "It was a bright cold day in April, and the clocks were " +
		"striking thirteen. Winston Smith, his chin nuzzled into his " +
		"breast in an effort to escape the vile wind, slipped quickly " +
		"through the glass doors of Victory Mansions, though not " +
		"quickly enough to prevent a swirl of gritty dust from " +
		"entering along with him. The hallway smelt of boiled cabbage " +
		"and old rag mats. At one end of it a coloured poster, too " +
		"large for indoor display, had been tacked to the wall. It " +
		"depicted simply an enormous face, more than a metre wide: " +
		"the face of a man of about forty-five, with a heavy black " +
		"moustache and ruggedly handsome features."
	ct, err := runOp(t, "xor", plaintext, map[string]interface{}{"key": "Vanilla"})
	if err != nil {
		t.Fatal(err)
	}

	out, err := runOp(t, "xor_break_repeating", string(ct), map[string]interface{}{
		"min_key_length": 2,
		"max_key_length": "10",
	})
	if err != nil {
		t.Fatalf("xor_break_repeating: %v", err)
	}
	if string(out) != plaintext {
		t.Fatalf("unexpected plaintext %q", out)
	}

	if _, err := runOp(t, "xor_break_repeating", string(ct), map[string]interface{}{"min_key_length": 9, "max_key_length": 3}); !errors.Is(err, bindata.ErrValue) {
		t.Fatalf("expected ErrValue for empty range, got %v", err)
	}
}
