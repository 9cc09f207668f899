package breaker

import (
	"fmt"
	"strings"

	"github.com/RowanDark/cryptokit/internal/bindata"
)

// Named keyspaces accepted by Keyspace.
const (
	KeyspaceBytes     = "bytes"
	KeyspacePrintable = "printable"
	KeyspaceLetters   = "letters"
)

const (
	asciiLetters   = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	asciiPrintable = "0123456789" + asciiLetters + "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~ \t\n\r\x0b\x0c"
)

// SingleByteKeys returns every one-byte key, 0x00 through 0xFF.
func SingleByteKeys() []bindata.Data {
	keys := make([]bindata.Data, 256)
	for i := range keys {
		keys[i] = bindata.New([]byte{byte(i)})
	}
	return keys
}

// PrintableKeys returns one-byte keys for each printable ASCII character,
// in Python's string.printable order.
func PrintableKeys() []bindata.Data {
	return charKeys(asciiPrintable)
}

// LetterKeys returns one-byte keys for a-z followed by A-Z.
func LetterKeys() []bindata.Data {
	return charKeys(asciiLetters)
}

// Keyspace resolves a keyspace by name.
func Keyspace(name string) ([]bindata.Data, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case KeyspaceBytes, "":
		return SingleByteKeys(), nil
	case KeyspacePrintable:
		return PrintableKeys(), nil
	case KeyspaceLetters:
		return LetterKeys(), nil
	default:
		return nil, fmt.Errorf("%w: unknown keyspace %q", bindata.ErrValue, name)
	}
}

func charKeys(chars string) []bindata.Data {
	keys := make([]bindata.Data, len(chars))
	for i := 0; i < len(chars); i++ {
		keys[i] = bindata.New([]byte{chars[i]})
	}
	return keys
}
