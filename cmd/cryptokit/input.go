package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/RowanDark/cryptokit/internal/bindata"
)

// Formats accepted by --in and --out.
const (
	formatHex    = "hex"
	formatBase64 = "base64"
	formatText   = "text"
	formatRaw    = "raw"
)

// readArg returns the literal argument, the contents of the file named after
// an '@', or standard input for "-" or a missing argument.
func readArg(cmd *cobra.Command, args []string, i int) (string, error) {
	if i >= len(args) || args[i] == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	if path, ok := strings.CutPrefix(args[i], "@"); ok {
		b, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	return args[i], nil
}

// decode parses s in format. Hex and base64 input may span lines.
func decode(s, format string, charset bindata.Encoding) (bindata.Data, error) {
	switch strings.ToLower(format) {
	case formatHex:
		return bindata.FromHex(strings.Join(strings.Fields(s), ""))
	case formatBase64:
		return bindata.FromBase64(strings.Join(strings.Fields(s), ""))
	case formatText:
		return bindata.FromText(strings.TrimRight(s, "\r\n"), charset)
	case formatRaw:
		return bindata.New([]byte(s)), nil
	default:
		return bindata.Data{}, fmt.Errorf("%w: unknown format %q", bindata.ErrValue, format)
	}
}

// encode renders d in format. Text that charset cannot represent falls back
// to hex.
func encode(d bindata.Data, format string, charset bindata.Encoding) (string, error) {
	switch strings.ToLower(format) {
	case formatHex:
		return d.Hex(), nil
	case formatBase64:
		return d.Base64(), nil
	case formatText:
		s, err := d.Text(charset)
		if err != nil {
			return d.Hex(), nil
		}
		return s, nil
	case formatRaw:
		return string(d.Bytes()), nil
	default:
		return "", fmt.Errorf("%w: unknown format %q", bindata.ErrValue, format)
	}
}

func writeLine(cmd *cobra.Command, s string) {
	fmt.Fprintln(cmd.OutOrStdout(), s)
}
