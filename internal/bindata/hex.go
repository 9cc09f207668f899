package bindata

import "fmt"

const hexDigits = "0123456789ABCDEF"

// Hex renders d as two uppercase hex digits per byte with no separators.
func (d Data) Hex() string {
	out := make([]byte, len(d.b)*2)
	for i, v := range d.b {
		out[2*i] = hexDigits[v>>4]
		out[2*i+1] = hexDigits[v&0x0F]
	}
	return string(out)
}

// FromHex parses an even-length string of hex digits in either case.
func FromHex(s string) (Data, error) {
	if len(s)%2 != 0 {
		return Data{}, fmt.Errorf("%w: hex string has odd length %d", ErrFormat, len(s))
	}
	out := make([]byte, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		hi, ok := hexValue(s[i])
		if !ok {
			return Data{}, fmt.Errorf("%w: invalid hex character %q at position %d", ErrFormat, s[i], i)
		}
		lo, ok := hexValue(s[i+1])
		if !ok {
			return Data{}, fmt.Errorf("%w: invalid hex character %q at position %d", ErrFormat, s[i+1], i+1)
		}
		out[i/2] = hi<<4 | lo
	}
	return Data{b: out}, nil
}

// MustHex is FromHex for literals known to be valid. It panics otherwise.
func MustHex(s string) Data {
	d, err := FromHex(s)
	if err != nil {
		panic(err)
	}
	return d
}

func hexValue(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
