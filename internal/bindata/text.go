package bindata

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Encoding names a single-byte character set.
type Encoding string

const (
	ASCII       Encoding = "ascii"
	Latin1      Encoding = "latin1"
	Windows1252 Encoding = "windows-1252"
	CP437       Encoding = "cp437"
)

var charmaps = map[Encoding]*charmap.Charmap{
	Latin1:      charmap.ISO8859_1,
	Windows1252: charmap.Windows1252,
	CP437:       charmap.CodePage437,
}

var encodingAliases = map[string]Encoding{
	"ascii":        ASCII,
	"us-ascii":     ASCII,
	"latin1":       Latin1,
	"latin-1":      Latin1,
	"iso-8859-1":   Latin1,
	"windows-1252": Windows1252,
	"cp1252":       Windows1252,
	"cp437":        CP437,
	"ibm437":       CP437,
}

// ParseEncoding resolves a charset name, ignoring case. The empty name is
// ASCII.
func ParseEncoding(name string) (Encoding, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ASCII, nil
	}
	enc, ok := encodingAliases[name]
	if !ok {
		return "", fmt.Errorf("%w: unknown encoding %q", ErrValue, name)
	}
	return enc, nil
}

// Text decodes d in the given single-byte encoding. An empty encoding
// means ASCII. Bytes the encoding does not define fail with ErrEncoding.
func (d Data) Text(enc Encoding) (string, error) {
	if enc == "" || enc == ASCII {
		for i, v := range d.b {
			if v >= utf8.RuneSelf {
				return "", fmt.Errorf("%w: byte 0x%02X at position %d is not ascii", ErrEncoding, v, i)
			}
		}
		return string(d.b), nil
	}

	cm, ok := charmaps[enc]
	if !ok {
		return "", fmt.Errorf("%w: unknown encoding %q", ErrValue, enc)
	}
	var sb strings.Builder
	sb.Grow(len(d.b))
	for i, v := range d.b {
		r := cm.DecodeByte(v)
		if r == utf8.RuneError {
			return "", fmt.Errorf("%w: byte 0x%02X at position %d is undefined in %s", ErrEncoding, v, i, enc)
		}
		sb.WriteRune(r)
	}
	return sb.String(), nil
}

// FromText encodes s in the given single-byte encoding. An empty encoding
// means ASCII.
func FromText(s string, enc Encoding) (Data, error) {
	if enc == "" || enc == ASCII {
		for i := 0; i < len(s); i++ {
			if s[i] >= utf8.RuneSelf {
				return Data{}, fmt.Errorf("%w: character at byte %d is not ascii", ErrEncoding, i)
			}
		}
		return New([]byte(s)), nil
	}

	cm, ok := charmaps[enc]
	if !ok {
		return Data{}, fmt.Errorf("%w: unknown encoding %q", ErrValue, enc)
	}
	out := make([]byte, 0, len(s))
	for i, r := range s {
		v, ok := cm.EncodeRune(r)
		if !ok {
			return Data{}, fmt.Errorf("%w: %q at byte %d has no %s code point", ErrEncoding, r, i, enc)
		}
		out = append(out, v)
	}
	return Data{b: out}, nil
}

// MustText is FromText in ASCII for literals. It panics on non-ascii input.
func MustText(s string) Data {
	d, err := FromText(s, ASCII)
	if err != nil {
		panic(err)
	}
	return d
}
