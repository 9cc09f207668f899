// Package blockcipher wraps crypto/aes in the five classic block cipher
// modes and provides PKCS#7 padding.
package blockcipher

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/RowanDark/cryptokit/internal/bindata"
)

// BlockSize is the AES block size in bytes.
const BlockSize = aes.BlockSize

var (
	// ErrNotAligned is returned when ECB or CBC input is not a whole number
	// of blocks.
	ErrNotAligned = fmt.Errorf("%w: input is not a multiple of the block size", bindata.ErrValue)
	// ErrBadPadding is returned when PKCS#7 padding fails validation.
	ErrBadPadding = fmt.Errorf("%w: invalid pkcs7 padding", bindata.ErrValue)
)

// Mode selects how blocks are chained.
type Mode int

const (
	ECB Mode = iota
	CBC
	CFB
	OFB
	CTR
)

var modeNames = [...]string{"ECB", "CBC", "CFB", "OFB", "CTR"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode resolves a mode name, ignoring case.
func ParseMode(name string) (Mode, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for i, n := range modeNames {
		if n == upper {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown cipher mode %q", bindata.ErrValue, name)
}

// Option configures a Cipher.
type Option func(*options) error

type options struct {
	iv     []byte
	random io.Reader
}

// WithIV fixes the initialization vector. It must be one block long and is
// rejected for ECB.
func WithIV(iv []byte) Option {
	return func(o *options) error {
		if len(iv) != BlockSize {
			return fmt.Errorf("%w: iv has %d bytes, want %d", bindata.ErrValue, len(iv), BlockSize)
		}
		o.iv = append([]byte(nil), iv...)
		return nil
	}
}

// WithRandom replaces crypto/rand as the IV source.
func WithRandom(r io.Reader) Option {
	return func(o *options) error {
		if r == nil {
			return errors.New("random source cannot be nil")
		}
		o.random = r
		return nil
	}
}

// Cipher is an AES key bound to a mode and, outside ECB, an IV. Every
// Encrypt and Decrypt call starts from the same IV.
type Cipher struct {
	block cipher.Block
	mode  Mode
	iv    []byte
}

// New creates a cipher for a 16, 24 or 32 byte key. Modes other than ECB
// draw a random IV unless WithIV is given.
func New(key []byte, mode Mode, opts ...Option) (*Cipher, error) {
	if mode < ECB || mode > CTR {
		return nil, fmt.Errorf("%w: unsupported mode %s", bindata.ErrValue, mode)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", bindata.ErrValue, err)
	}

	o := options{random: rand.Reader}
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, err
		}
	}

	c := &Cipher{block: block, mode: mode}
	if mode == ECB {
		if o.iv != nil {
			return nil, fmt.Errorf("%w: ECB does not take an iv", bindata.ErrValue)
		}
		return c, nil
	}
	if o.iv == nil {
		o.iv = make([]byte, BlockSize)
		if _, err := io.ReadFull(o.random, o.iv); err != nil {
			return nil, fmt.Errorf("generate iv: %w", err)
		}
	}
	c.iv = o.iv
	return c, nil
}

// Mode reports the chaining mode.
func (c *Cipher) Mode() Mode { return c.mode }

// IV returns a copy of the initialization vector, nil for ECB.
func (c *Cipher) IV() []byte {
	if c.iv == nil {
		return nil
	}
	return append([]byte(nil), c.iv...)
}

// Encrypt returns the ciphertext of plaintext. ECB and CBC need aligned
// input; pad it first.
func (c *Cipher) Encrypt(plaintext []byte) ([]byte, error) {
	return c.crypt(plaintext, true)
}

// Decrypt reverses Encrypt. Padding is left in place.
func (c *Cipher) Decrypt(ciphertext []byte) ([]byte, error) {
	return c.crypt(ciphertext, false)
}

func (c *Cipher) crypt(src []byte, encrypt bool) ([]byte, error) {
	dst := make([]byte, len(src))
	switch c.mode {
	case ECB, CBC:
		if len(src)%BlockSize != 0 {
			return nil, fmt.Errorf("%w: %d bytes", ErrNotAligned, len(src))
		}
		var bm cipher.BlockMode
		switch {
		case c.mode == ECB && encrypt:
			bm = newECBEncrypter(c.block)
		case c.mode == ECB:
			bm = newECBDecrypter(c.block)
		case encrypt:
			bm = cipher.NewCBCEncrypter(c.block, c.iv)
		default:
			bm = cipher.NewCBCDecrypter(c.block, c.iv)
		}
		bm.CryptBlocks(dst, src)
	case CFB:
		if encrypt {
			cipher.NewCFBEncrypter(c.block, c.iv).XORKeyStream(dst, src)
		} else {
			cipher.NewCFBDecrypter(c.block, c.iv).XORKeyStream(dst, src)
		}
	case OFB:
		cipher.NewOFB(c.block, c.iv).XORKeyStream(dst, src)
	case CTR:
		cipher.NewCTR(c.block, c.iv).XORKeyStream(dst, src)
	}
	return dst, nil
}
