package cipher

import (
	"context"
	"testing"
)

func TestBuiltinOperationsRegistered(t *testing.T) {
	expected := []string{
		"aes_decrypt", "aes_encrypt",
		"base64_decode", "base64_encode", "base64_to_hex",
		"hex_decode", "hex_encode", "hex_to_base64",
		"pkcs7_pad", "pkcs7_unpad",
		"xor", "xor_break_repeating", "xor_break_single",
	}
	ops := ListOperations()
	if len(ops) != len(expected) {
		t.Fatalf("expected %d operations, got %d", len(expected), len(ops))
	}
	for i, name := range expected {
		if ops[i].Name() != name {
			t.Errorf("position %d: expected %s, got %s", i, name, ops[i].Name())
		}
		if ops[i].Description() == "" {
			t.Errorf("%s has no description", name)
		}
	}
}

func TestListOperationsByType(t *testing.T) {
	analyze := ListOperationsByType(OperationTypeAnalyze)
	if len(analyze) != 2 {
		t.Fatalf("expected 2 analysis operations, got %d", len(analyze))
	}
	for _, op := range analyze {
		if _, ok := op.Reverse(); ok {
			t.Errorf("%s should not be reversible", op.Name())
		}
	}
	if len(ListOperationsByType(OperationTypePad)) != 2 {
		t.Error("expected the two padding operations")
	}
}

func TestReversePairs(t *testing.T) {
	pairs := map[string]string{
		"hex_encode":    "hex_decode",
		"base64_encode": "base64_decode",
		"hex_to_base64": "base64_to_hex",
		"pkcs7_pad":     "pkcs7_unpad",
		"aes_encrypt":   "aes_decrypt",
		"xor":           "xor",
	}
	for forward, inverse := range pairs {
		op, ok := GetOperation(forward)
		if !ok {
			t.Fatalf("%s not registered", forward)
		}
		rev, ok := op.Reverse()
		if !ok || rev.Name() != inverse {
			t.Errorf("%s: expected inverse %s", forward, inverse)
		}
	}
}

type upperOp struct {
	BaseOperation
}

func (op *upperOp) Execute(ctx context.Context, input []byte, params map[string]interface{}) ([]byte, error) {
	out := make([]byte, len(input))
	for i, b := range input {
		if b >= 'a' && b <= 'z' {
			b -= 'a' - 'A'
		}
		out[i] = b
	}
	return out, nil
}

func TestRegisterOperation(t *testing.T) {
	op := &upperOp{BaseOperation: BaseOperation{NameValue: "test_upper", TypeValue: OperationTypeEncode}}
	if err := RegisterOperation(op); err != nil {
		t.Fatalf("RegisterOperation: %v", err)
	}
	defer UnregisterOperation("test_upper")

	if err := RegisterOperation(op); err == nil {
		t.Error("expected duplicate registration to fail")
	}
	if err := RegisterOperation(nil); err == nil {
		t.Error("expected nil registration to fail")
	}
	if err := RegisterOperation(&upperOp{}); err == nil {
		t.Error("expected empty name to fail")
	}

	pipeline := &Pipeline{Operations: []OperationConfig{{Name: "test_upper"}, {Name: "hex_encode"}}}
	out, err := pipeline.Execute(context.Background(), []byte("ice"))
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "494345" {
		t.Fatalf("unexpected output %q", out)
	}
}
