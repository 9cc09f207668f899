package blockcipher

import "crypto/cipher"

// ecb applies the block cipher to each block independently. The standard
// library leaves this mode out.
type ecb struct {
	b       cipher.Block
	encrypt bool
}

func newECBEncrypter(b cipher.Block) cipher.BlockMode { return ecb{b: b, encrypt: true} }

func newECBDecrypter(b cipher.Block) cipher.BlockMode { return ecb{b: b} }

func (m ecb) BlockSize() int { return m.b.BlockSize() }

// CryptBlocks requires len(src) to be a multiple of the block size and dst
// to be at least as long as src.
func (m ecb) CryptBlocks(dst, src []byte) {
	n := m.BlockSize()
	if len(src)%n != 0 {
		panic("blockcipher: input not full blocks")
	}
	if len(dst) < len(src) {
		panic("blockcipher: output smaller than input")
	}
	for len(src) > 0 {
		if m.encrypt {
			m.b.Encrypt(dst[:n], src[:n])
		} else {
			m.b.Decrypt(dst[:n], src[:n])
		}
		dst = dst[n:]
		src = src[n:]
	}
}
