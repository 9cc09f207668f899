package cipher

import (
	"context"
	"errors"
	"fmt"

	"github.com/RowanDark/cryptokit/internal/bindata"
	"github.com/RowanDark/cryptokit/internal/blockcipher"
	"github.com/RowanDark/cryptokit/internal/breaker"
	"github.com/RowanDark/cryptokit/internal/scoring"
)

// ErrNoPlaintext is returned by the break operations when no candidate key
// yields text.
var ErrNoPlaintext = errors.New("no candidate key produced readable plaintext")

const (
	defaultMinKeyLength = 2
	defaultMaxKeyLength = 40
)

// Padding Operations

// PKCS7PadOp appends PKCS#7 padding for "block_size" (default 16)
type PKCS7PadOp struct {
	BaseOperation
}

func (op *PKCS7PadOp) Execute(ctx context.Context, input []byte, params map[string]interface{}) ([]byte, error) {
	size, err := intParam(params, "block_size", blockcipher.BlockSize)
	if err != nil {
		return nil, err
	}
	return blockcipher.PKCS7Pad(input, size)
}

// PKCS7UnpadOp validates and strips PKCS#7 padding
type PKCS7UnpadOp struct {
	BaseOperation
}

func (op *PKCS7UnpadOp) Execute(ctx context.Context, input []byte, params map[string]interface{}) ([]byte, error) {
	size, err := intParam(params, "block_size", blockcipher.BlockSize)
	if err != nil {
		return nil, err
	}
	return blockcipher.PKCS7Unpad(input, size)
}

// AES Operations

// AESEncryptOp encrypts with AES. Parameters: "key" (text) or "key_hex",
// "mode" (default ECB) and optional "iv" (hex). Without an iv a random one
// is generated and prepended to the output. ECB and CBC input is PKCS#7
// padded.
type AESEncryptOp struct {
	BaseOperation
}

func (op *AESEncryptOp) Execute(ctx context.Context, input []byte, params map[string]interface{}) ([]byte, error) {
	mode, key, iv, err := aesParams(params)
	if err != nil {
		return nil, err
	}
	var opts []blockcipher.Option
	if iv != nil {
		opts = append(opts, blockcipher.WithIV(iv))
	}
	c, err := blockcipher.New(key, mode, opts...)
	if err != nil {
		return nil, err
	}

	plaintext := input
	if needsPadding(mode) {
		if plaintext, err = blockcipher.PKCS7Pad(input, blockcipher.BlockSize); err != nil {
			return nil, err
		}
	}
	ct, err := c.Encrypt(plaintext)
	if err != nil {
		return nil, fmt.Errorf("aes encrypt failed: %w", err)
	}
	if mode != blockcipher.ECB && iv == nil {
		return append(c.IV(), ct...), nil
	}
	return ct, nil
}

// AESDecryptOp reverses AESEncryptOp. Without an "iv" parameter the first
// block of input is taken as the IV.
type AESDecryptOp struct {
	BaseOperation
}

func (op *AESDecryptOp) Execute(ctx context.Context, input []byte, params map[string]interface{}) ([]byte, error) {
	mode, key, iv, err := aesParams(params)
	if err != nil {
		return nil, err
	}
	ct := input
	if mode != blockcipher.ECB && iv == nil {
		if len(input) < blockcipher.BlockSize {
			return nil, fmt.Errorf("%w: ciphertext shorter than the iv", bindata.ErrValue)
		}
		iv, ct = input[:blockcipher.BlockSize], input[blockcipher.BlockSize:]
	}
	var opts []blockcipher.Option
	if iv != nil {
		opts = append(opts, blockcipher.WithIV(iv))
	}
	c, err := blockcipher.New(key, mode, opts...)
	if err != nil {
		return nil, err
	}
	pt, err := c.Decrypt(ct)
	if err != nil {
		return nil, fmt.Errorf("aes decrypt failed: %w", err)
	}
	if needsPadding(mode) {
		return blockcipher.PKCS7Unpad(pt, blockcipher.BlockSize)
	}
	return pt, nil
}

func needsPadding(mode blockcipher.Mode) bool {
	return mode == blockcipher.ECB || mode == blockcipher.CBC
}

func aesParams(params map[string]interface{}) (blockcipher.Mode, []byte, []byte, error) {
	mode := blockcipher.ECB
	if name, ok := stringParam(params, "mode"); ok {
		m, err := blockcipher.ParseMode(name)
		if err != nil {
			return 0, nil, nil, err
		}
		mode = m
	}
	key, err := keyParam(params, "key")
	if err != nil {
		return 0, nil, nil, err
	}
	var iv []byte
	if raw, ok := stringParam(params, "iv"); ok {
		d, err := bindata.FromHex(raw)
		if err != nil {
			return 0, nil, nil, fmt.Errorf("parameter iv: %w", err)
		}
		iv = d.Bytes()
	}
	return mode, key.Bytes(), iv, nil
}

// Cryptanalysis Operations

// XORBreakSingleOp recovers a single-byte XOR key and outputs the
// plaintext. Parameters: "keyspace" (bytes, printable, letters) and
// "method" (default english).
type XORBreakSingleOp struct {
	BaseOperation
}

func (op *XORBreakSingleOp) Execute(ctx context.Context, input []byte, params map[string]interface{}) ([]byte, error) {
	keyspace, method, err := searchParams(params)
	if err != nil {
		return nil, err
	}
	guess, err := breaker.BestGuess(bindata.New(input), keyspace, method)
	if err != nil {
		return nil, err
	}
	if !guess.Found {
		return nil, ErrNoPlaintext
	}
	return guess.Plaintext.Bytes(), nil
}

// XORBreakRepeatingOp estimates the key length in ["min_key_length",
// "max_key_length"], recovers the key and outputs the plaintext.
type XORBreakRepeatingOp struct {
	BaseOperation
}

func (op *XORBreakRepeatingOp) Execute(ctx context.Context, input []byte, params map[string]interface{}) ([]byte, error) {
	keyspace, method, err := searchParams(params)
	if err != nil {
		return nil, err
	}
	minLen, err := intParam(params, "min_key_length", defaultMinKeyLength)
	if err != nil {
		return nil, err
	}
	maxLen, err := intParam(params, "max_key_length", defaultMaxKeyLength)
	if err != nil {
		return nil, err
	}
	engine, err := breaker.NewEngine(method, nil)
	if err != nil {
		return nil, err
	}
	guess, err := engine.BreakRepeatingKey(bindata.New(input), minLen, maxLen, keyspace)
	if err != nil {
		return nil, err
	}
	if !guess.Found {
		return nil, ErrNoPlaintext
	}
	return guess.Plaintext.Bytes(), nil
}

func searchParams(params map[string]interface{}) ([]bindata.Data, string, error) {
	name, _ := stringParam(params, "keyspace")
	keyspace, err := breaker.Keyspace(name)
	if err != nil {
		return nil, "", err
	}
	method := scoring.MethodEnglish
	if m, ok := stringParam(params, "method"); ok {
		method = m
	}
	return keyspace, method, nil
}

// init registers padding, AES and cryptanalysis operations
func init() {
	pad := &PKCS7PadOp{
		BaseOperation: BaseOperation{
			NameValue:        "pkcs7_pad",
			TypeValue:        OperationTypePad,
			DescriptionValue: "Append PKCS#7 padding (block_size, default 16)",
		},
	}
	unpad := &PKCS7UnpadOp{
		BaseOperation: BaseOperation{
			NameValue:        "pkcs7_unpad",
			TypeValue:        OperationTypePad,
			DescriptionValue: "Validate and strip PKCS#7 padding",
		},
	}
	pad.ReverseOp = unpad
	unpad.ReverseOp = pad

	encrypt := &AESEncryptOp{
		BaseOperation: BaseOperation{
			NameValue:        "aes_encrypt",
			TypeValue:        OperationTypeEncrypt,
			DescriptionValue: "AES encrypt (key or key_hex, mode, optional iv hex)",
		},
	}
	decrypt := &AESDecryptOp{
		BaseOperation: BaseOperation{
			NameValue:        "aes_decrypt",
			TypeValue:        OperationTypeDecrypt,
			DescriptionValue: "AES decrypt (key or key_hex, mode, optional iv hex)",
		},
	}
	encrypt.ReverseOp = decrypt
	decrypt.ReverseOp = encrypt

	breakSingle := &XORBreakSingleOp{
		BaseOperation: BaseOperation{
			NameValue:        "xor_break_single",
			TypeValue:        OperationTypeAnalyze,
			DescriptionValue: "Recover a single-byte XOR key and output the plaintext",
		},
	}
	breakRepeating := &XORBreakRepeatingOp{
		BaseOperation: BaseOperation{
			NameValue:        "xor_break_repeating",
			TypeValue:        OperationTypeAnalyze,
			DescriptionValue: "Recover a repeating XOR key and output the plaintext",
		},
	}

	mustRegister(pad, unpad, encrypt, decrypt, breakSingle, breakRepeating)
}
