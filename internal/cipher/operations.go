package cipher

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/RowanDark/cryptokit/internal/bindata"
)

// Hex Operations

// HexEncodeOp encodes bytes as an uppercase hexadecimal string
type HexEncodeOp struct {
	BaseOperation
}

func (op *HexEncodeOp) Execute(ctx context.Context, input []byte, params map[string]interface{}) ([]byte, error) {
	return []byte(bindata.New(input).Hex()), nil
}

// HexDecodeOp decodes a hexadecimal string to bytes. Surrounding whitespace
// and line breaks are ignored.
type HexDecodeOp struct {
	BaseOperation
}

func (op *HexDecodeOp) Execute(ctx context.Context, input []byte, params map[string]interface{}) ([]byte, error) {
	decoded, err := bindata.FromHex(joinFields(input))
	if err != nil {
		return nil, fmt.Errorf("hex decode failed: %w", err)
	}
	return decoded.Bytes(), nil
}

// Base64 Operations

// Base64EncodeOp encodes data as padded standard Base64
type Base64EncodeOp struct {
	BaseOperation
}

func (op *Base64EncodeOp) Execute(ctx context.Context, input []byte, params map[string]interface{}) ([]byte, error) {
	return []byte(bindata.New(input).Base64()), nil
}

// Base64DecodeOp decodes padded standard Base64, joining wrapped lines first
type Base64DecodeOp struct {
	BaseOperation
}

func (op *Base64DecodeOp) Execute(ctx context.Context, input []byte, params map[string]interface{}) ([]byte, error) {
	decoded, err := bindata.FromBase64(joinFields(input))
	if err != nil {
		return nil, fmt.Errorf("base64 decode failed: %w", err)
	}
	return decoded.Bytes(), nil
}

// Text-to-text conversions

// HexToBase64Op rewrites hex text as base64 text
type HexToBase64Op struct {
	BaseOperation
}

func (op *HexToBase64Op) Execute(ctx context.Context, input []byte, params map[string]interface{}) ([]byte, error) {
	decoded, err := bindata.FromHex(joinFields(input))
	if err != nil {
		return nil, fmt.Errorf("hex_to_base64 failed: %w", err)
	}
	return []byte(decoded.Base64()), nil
}

// Base64ToHexOp rewrites base64 text as hex text
type Base64ToHexOp struct {
	BaseOperation
}

func (op *Base64ToHexOp) Execute(ctx context.Context, input []byte, params map[string]interface{}) ([]byte, error) {
	decoded, err := bindata.FromBase64(joinFields(input))
	if err != nil {
		return nil, fmt.Errorf("base64_to_hex failed: %w", err)
	}
	return []byte(decoded.Hex()), nil
}

// XOR

// XOROp XORs the input against a repeating key given as "key_hex" or as
// ASCII text in "key". It is its own inverse.
type XOROp struct {
	BaseOperation
}

func (op *XOROp) Execute(ctx context.Context, input []byte, params map[string]interface{}) ([]byte, error) {
	key, err := keyParam(params, "key")
	if err != nil {
		return nil, err
	}
	out, err := bindata.New(input).XOR(key)
	if err != nil {
		return nil, fmt.Errorf("xor failed: %w", err)
	}
	return out.Bytes(), nil
}

// joinFields drops all whitespace so wrapped or newline-terminated files
// decode cleanly.
func joinFields(input []byte) string {
	return strings.Join(strings.Fields(string(input)), "")
}

// keyParam reads name+"_hex" as hex or name as ASCII text.
func keyParam(params map[string]interface{}, name string) (bindata.Data, error) {
	if raw, ok := stringParam(params, name+"_hex"); ok {
		key, err := bindata.FromHex(raw)
		if err != nil {
			return bindata.Data{}, fmt.Errorf("parameter %s_hex: %w", name, err)
		}
		return key, nil
	}
	if raw, ok := stringParam(params, name); ok {
		key, err := bindata.FromText(raw, bindata.ASCII)
		if err != nil {
			return bindata.Data{}, fmt.Errorf("parameter %s: %w", name, err)
		}
		return key, nil
	}
	return bindata.Data{}, fmt.Errorf("%w: missing parameter %s or %s_hex", bindata.ErrValue, name, name)
}

func stringParam(params map[string]interface{}, name string) (string, bool) {
	v, ok := params[name]
	if !ok || v == nil {
		return "", false
	}
	switch s := v.(type) {
	case string:
		return s, true
	case []byte:
		return string(s), true
	default:
		return fmt.Sprint(v), true
	}
}

// intParam accepts the integer shapes produced by Go callers, JSON and
// YAML decoding.
func intParam(params map[string]interface{}, name string, def int) (int, error) {
	v, ok := params[name]
	if !ok || v == nil {
		return def, nil
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		if n < math.MinInt || n > math.MaxInt {
			return 0, fmt.Errorf("%w: parameter %s out of range: %d", bindata.ErrValue, name, n)
		}
		return int(n), nil
	case uint64:
		if n > math.MaxInt {
			return 0, fmt.Errorf("%w: parameter %s out of range: %d", bindata.ErrValue, name, n)
		}
		return int(n), nil
	case float64:
		// The upper bound is exclusive since float64(math.MaxInt) rounds up.
		if n != math.Trunc(n) || n < math.MinInt || n >= math.MaxInt {
			return 0, fmt.Errorf("%w: parameter %s must be an integer in range, got %v", bindata.ErrValue, name, n)
		}
		return int(n), nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, fmt.Errorf("%w: parameter %s: %v", bindata.ErrValue, name, err)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("%w: parameter %s has type %T", bindata.ErrType, name, v)
	}
}

// init registers the codec operations
func init() {
	hexEncode := &HexEncodeOp{
		BaseOperation: BaseOperation{
			NameValue:        "hex_encode",
			TypeValue:        OperationTypeEncode,
			DescriptionValue: "Encode bytes as hexadecimal string",
		},
	}
	hexDecode := &HexDecodeOp{
		BaseOperation: BaseOperation{
			NameValue:        "hex_decode",
			TypeValue:        OperationTypeDecode,
			DescriptionValue: "Decode hexadecimal string to bytes",
		},
	}
	hexEncode.ReverseOp = hexDecode
	hexDecode.ReverseOp = hexEncode

	base64Encode := &Base64EncodeOp{
		BaseOperation: BaseOperation{
			NameValue:        "base64_encode",
			TypeValue:        OperationTypeEncode,
			DescriptionValue: "Encode data as standard Base64",
		},
	}
	base64Decode := &Base64DecodeOp{
		BaseOperation: BaseOperation{
			NameValue:        "base64_decode",
			TypeValue:        OperationTypeDecode,
			DescriptionValue: "Decode standard Base64 data",
		},
	}
	base64Encode.ReverseOp = base64Decode
	base64Decode.ReverseOp = base64Encode

	hexToBase64 := &HexToBase64Op{
		BaseOperation: BaseOperation{
			NameValue:        "hex_to_base64",
			TypeValue:        OperationTypeEncode,
			DescriptionValue: "Convert hex text to Base64 text",
		},
	}
	base64ToHex := &Base64ToHexOp{
		BaseOperation: BaseOperation{
			NameValue:        "base64_to_hex",
			TypeValue:        OperationTypeDecode,
			DescriptionValue: "Convert Base64 text to hex text",
		},
	}
	hexToBase64.ReverseOp = base64ToHex
	base64ToHex.ReverseOp = hexToBase64

	xor := &XOROp{
		BaseOperation: BaseOperation{
			NameValue:        "xor",
			TypeValue:        OperationTypeEncrypt,
			DescriptionValue: "XOR against a repeating key (key or key_hex)",
		},
	}
	xor.ReverseOp = xor

	mustRegister(hexEncode, hexDecode, base64Encode, base64Decode, hexToBase64, base64ToHex, xor)
}
