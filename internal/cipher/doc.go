// Package cipher chains cryptokit's codecs, AES wrapper and XOR breakers
// into named operations that can be composed into pipelines and saved as
// recipes.
//
// # Operations
//
// Every operation takes bytes and returns bytes:
//
//	op, _ := cipher.GetOperation("hex_to_base64")
//	out, _ := op.Execute(ctx, []byte("49276d206b696c6c696e67"), nil)
//	// out: []byte("SSdtIGtpbGxpbmc=")
//
// Codecs: hex_encode, hex_decode, base64_encode, base64_decode,
// hex_to_base64, base64_to_hex.
//
// Ciphers: xor (key or key_hex), aes_encrypt and aes_decrypt (key or
// key_hex, mode, iv), pkcs7_pad and pkcs7_unpad (block_size).
//
// Analysis: xor_break_single and xor_break_repeating recover a key and
// output the plaintext. They have no inverse.
//
// # Pipelines
//
//	pipeline := &cipher.Pipeline{
//	    Operations: []cipher.OperationConfig{
//	        {Name: "xor", Parameters: map[string]interface{}{"key": "ICE"}},
//	        {Name: "hex_encode"},
//	    },
//	    Reversible: true,
//	}
//	ct, _ := pipeline.Execute(ctx, plaintext)
//	back, _ := pipeline.Reverse()
//	pt, _ := back.Execute(ctx, ct)
//
// Reversal keeps each step's parameters, so an aes_encrypt step reverses
// into an aes_decrypt step with the same key and mode.
//
// # Recipes
//
// RecipeManager stores pipelines under a name, one YAML file per recipe,
// each with a UUID.
//
// # Detection
//
// SmartDetector reports hex and base64 input, and data that decodes to
// English under a single-byte XOR, with a pipeline that recovers it.
//
// The operation registry is safe for concurrent use, as is RecipeManager.
package cipher
