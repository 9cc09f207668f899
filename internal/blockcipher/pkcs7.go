package blockcipher

import (
	"bytes"
	"fmt"

	"github.com/RowanDark/cryptokit/internal/bindata"
)

func checkBlockSize(blockSize int) error {
	if blockSize < 1 || blockSize > 255 {
		return fmt.Errorf("%w: pkcs7 block size %d outside 1..255", bindata.ErrValue, blockSize)
	}
	return nil
}

// PKCS7Pad appends blockSize - len(data)%blockSize bytes of that value.
// Aligned input, including empty input, gains a whole block.
func PKCS7Pad(data []byte, blockSize int) ([]byte, error) {
	if err := checkBlockSize(blockSize); err != nil {
		return nil, err
	}
	n := blockSize - len(data)%blockSize
	out := make([]byte, len(data), len(data)+n)
	copy(out, data)
	return append(out, bytes.Repeat([]byte{byte(n)}, n)...), nil
}

// PKCS7Unpad validates and strips the padding added by PKCS7Pad.
func PKCS7Unpad(data []byte, blockSize int) ([]byte, error) {
	if err := checkBlockSize(blockSize); err != nil {
		return nil, err
	}
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a whole number of %d byte blocks", ErrBadPadding, len(data), blockSize)
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize {
		return nil, fmt.Errorf("%w: pad length %d", ErrBadPadding, n)
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, fmt.Errorf("%w: pad byte %#02x, want %#02x", ErrBadPadding, b, n)
		}
	}
	return append([]byte(nil), data[:len(data)-n]...), nil
}

// RepeatedBlocks counts full blocks of ct that repeat an earlier block. A
// non-zero count on a long ciphertext usually means ECB.
func RepeatedBlocks(ct []byte, blockSize int) int {
	if blockSize <= 0 {
		return 0
	}
	seen := make(map[string]struct{})
	repeats := 0
	for i := 0; i+blockSize <= len(ct); i += blockSize {
		block := string(ct[i : i+blockSize])
		if _, ok := seen[block]; ok {
			repeats++
			continue
		}
		seen[block] = struct{}{}
	}
	return repeats
}
