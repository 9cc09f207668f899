package cipher

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/RowanDark/cryptokit/internal/bindata"
)

func runOp(t *testing.T, name string, input string, params map[string]interface{}) ([]byte, error) {
	t.Helper()
	op, ok := GetOperation(name)
	if !ok {
		t.Fatalf("operation %s not registered", name)
	}
	return op.Execute(context.Background(), []byte(input), params)
}

func TestCodecOperations(t *testing.T) {
	tests := []struct {
		name     string
		op       string
		input    string
		expected string
	}{
		{"hex encode", "hex_encode", "ICE", "494345"},
		{"hex decode", "hex_decode", "494345", "ICE"},
		{"hex decode trailing newline", "hex_decode", "49 43\n45\n", "ICE"},
		{"base64 encode", "base64_encode", "hello", "aGVsbG8="},
		{"base64 decode", "base64_decode", "aGVsbG8=", "hello"},
		{"base64 decode wrapped", "base64_decode", "aGVs\nbG8=\n", "hello"},
		{
			name:     "hex to base64",
			op:       "hex_to_base64",
			input:    "49276d206b696c6c696e6720796f757220627261696e206c696b65206120706f69736f6e6f7573206d757368726f6f6d",
			expected: "SSdtIGtpbGxpbmcgeW91ciBicmFpbiBsaWtlIGEgcG9pc29ub3VzIG11c2hyb29t",
		},
		{"base64 to hex", "base64_to_hex", "SSdt", "49276D"},
		{"empty hex encode", "hex_encode", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := runOp(t, tt.op, tt.input, nil)
			if err != nil {
				t.Fatalf("%s failed: %v", tt.op, err)
			}
			if string(result) != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, string(result))
			}
		})
	}
}

func TestCodecOperationErrors(t *testing.T) {
	tests := []struct {
		op    string
		input string
	}{
		{"hex_decode", "abc"},
		{"hex_decode", "0x41"},
		{"base64_decode", "aGVsbG8"},
		{"base64_decode", "aG=sbG8="},
		{"hex_to_base64", "zz"},
		{"base64_to_hex", "A==="},
	}
	for _, tt := range tests {
		t.Run(tt.op+" "+tt.input, func(t *testing.T) {
			_, err := runOp(t, tt.op, tt.input, nil)
			if !errors.Is(err, bindata.ErrFormat) {
				t.Fatalf("expected ErrFormat, got %v", err)
			}
		})
	}
}

func TestXOROperation(t *testing.T) {
	plaintext := "Burning 'em, if you ain't quick and nimble\nI go crazy when I hear a cymbal"
	want := "0b3637272a2b2e63622c2e69692a23693a2a3c6324202d623d63343c2a26226324272765272" +
		"a282b2f20430a652e2c652a3124333a653e2b2027630c692b20283165286326302e27282f"

	out, err := runOp(t, "xor", plaintext, map[string]interface{}{"key": "ICE"})
	if err != nil {
		t.Fatalf("xor: %v", err)
	}
	if got := bindata.New(out).Hex(); got != bindata.MustHex(want).Hex() {
		t.Fatalf("unexpected ciphertext %s", got)
	}

	back, err := runOp(t, "xor", string(out), map[string]interface{}{"key_hex": "494345"})
	if err != nil {
		t.Fatalf("xor with key_hex: %v", err)
	}
	if string(back) != plaintext {
		t.Fatalf("xor did not invert: %q", back)
	}

	if _, err := runOp(t, "xor", "data", nil); !errors.Is(err, bindata.ErrValue) {
		t.Fatalf("expected ErrValue for missing key, got %v", err)
	}
	if _, err := runOp(t, "xor", "data", map[string]interface{}{"key": ""}); !errors.Is(err, bindata.ErrEmptyKey) {
		t.Fatalf("expected ErrEmptyKey, got %v", err)
	}
	if _, err := runOp(t, "xor", "data", map[string]interface{}{"key_hex": "4"}); !errors.Is(err, bindata.ErrFormat) {
		t.Fatalf("expected ErrFormat for bad key_hex, got %v", err)
	}
}

func TestIntParam(t *testing.T) {
	tests := []struct {
		value interface{}
		want  int
		ok    bool
	}{
		{nil, 16, true},
		{8, 8, true},
		{int64(4), 4, true},
		{uint64(3), 3, true},
		{float64(20), 20, true},
		{" 12 ", 12, true},
		{1.5, 0, false},
		{"twelve", 0, false},
		{[]int{1}, 0, false},
		{int64(-5), -5, true},
		{uint64(math.MaxUint64), 0, false},
		{float64(math.MaxInt), 0, false},
		{1e300, 0, false},
		{-1e300, 0, false},
		{math.NaN(), 0, false},
	}
	for _, tt := range tests {
		params := map[string]interface{}{}
		if tt.value != nil {
			params["block_size"] = tt.value
		}
		got, err := intParam(params, "block_size", 16)
		if tt.ok && (err != nil || got != tt.want) {
			t.Errorf("intParam(%#v) = %d, %v; want %d", tt.value, got, err, tt.want)
		}
		if !tt.ok && !errors.Is(err, bindata.ErrValue) && !errors.Is(err, bindata.ErrType) {
			t.Errorf("intParam(%#v) = %d, %v; expected a classed error", tt.value, got, err)
		}
	}
}
