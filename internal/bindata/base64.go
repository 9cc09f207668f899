package bindata

import (
	"fmt"
	"strings"
)

const (
	base64Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"
	base64Pad      = '='
)

var base64Index = func() [256]int8 {
	var idx [256]int8
	for i := range idx {
		idx[i] = -1
	}
	for i := 0; i < len(base64Alphabet); i++ {
		idx[base64Alphabet[i]] = int8(i)
	}
	return idx
}()

// Base64 renders d in the RFC 4648 standard alphabet with '=' padding.
func (d Data) Base64() string {
	var sb strings.Builder
	sb.Grow((len(d.b) + 2) / 3 * 4)

	full := len(d.b) - len(d.b)%3
	for i := 0; i < full; i += 3 {
		raw := uint32(d.b[i])<<16 | uint32(d.b[i+1])<<8 | uint32(d.b[i+2])
		sb.WriteByte(base64Alphabet[raw>>18&0x3F])
		sb.WriteByte(base64Alphabet[raw>>12&0x3F])
		sb.WriteByte(base64Alphabet[raw>>6&0x3F])
		sb.WriteByte(base64Alphabet[raw&0x3F])
	}

	switch len(d.b) - full {
	case 1:
		raw := d.b[full]
		sb.WriteByte(base64Alphabet[raw>>2])
		sb.WriteByte(base64Alphabet[(raw&0x03)<<4])
		sb.WriteString("==")
	case 2:
		raw := uint16(d.b[full])<<8 | uint16(d.b[full+1])
		sb.WriteByte(base64Alphabet[raw>>10])
		sb.WriteByte(base64Alphabet[raw>>4&0x3F])
		sb.WriteByte(base64Alphabet[(raw&0x0F)<<2])
		sb.WriteByte(base64Pad)
	}
	return sb.String()
}

// FromBase64 parses standard, padded base64. The length must be a multiple
// of four and '=' may only appear as the last one or two characters. Spare
// low bits in a padded final group are discarded.
func FromBase64(s string) (Data, error) {
	if len(s)%4 != 0 {
		return Data{}, fmt.Errorf("%w: base64 length %d is not a multiple of 4", ErrFormat, len(s))
	}

	body := strings.TrimRight(s, string(base64Pad))
	if pad := len(s) - len(body); pad > 2 {
		return Data{}, fmt.Errorf("%w: base64 has %d padding characters", ErrFormat, pad)
	}
	for i := 0; i < len(body); i++ {
		if base64Index[body[i]] < 0 {
			return Data{}, fmt.Errorf("%w: invalid base64 character %q at position %d", ErrFormat, body[i], i)
		}
	}

	out := make([]byte, 0, len(body)*3/4)
	for start := 0; start < len(body); start += 4 {
		group := body[start:min(start+4, len(body))]
		if len(group) == 1 {
			// Only reachable with "x===", already rejected above.
			return Data{}, fmt.Errorf("%w: truncated base64 group", ErrFormat)
		}
		var raw uint32
		for i := 0; i < len(group); i++ {
			raw = raw<<6 | uint32(base64Index[group[i]])
		}
		raw >>= (6 * len(group)) % 8
		for n := len(group) - 2; n >= 0; n-- {
			out = append(out, byte(raw>>(8*n)))
		}
	}
	return Data{b: out}, nil
}

// MustBase64 is FromBase64 for literals known to be valid. It panics
// otherwise.
func MustBase64(s string) Data {
	d, err := FromBase64(s)
	if err != nil {
		panic(err)
	}
	return d
}
