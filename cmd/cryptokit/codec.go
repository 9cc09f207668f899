package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/RowanDark/cryptokit/internal/bindata"
	"github.com/RowanDark/cryptokit/internal/blockcipher"
	"github.com/RowanDark/cryptokit/internal/scoring"
)

func newConvertCmd() *cobra.Command {
	var from, to, charset string
	cmd := &cobra.Command{
		Use:   "convert [input|-|@file]",
		Short: "Convert data between hex, base64 and text",
		Example: `  cryptokit convert --from hex --to base64 49276d206b696c6c696e67
  cryptokit convert --from text --to hex --charset latin1 "café"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := bindata.ParseEncoding(charset)
			if err != nil {
				return err
			}
			in, err := readArg(cmd, args, 0)
			if err != nil {
				return err
			}
			data, err := decode(in, from, enc)
			if err != nil {
				return err
			}
			out, err := encode(data, to, enc)
			if err != nil {
				return err
			}
			writeLine(cmd, out)
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", formatHex, "input format (hex, base64, text, raw)")
	cmd.Flags().StringVar(&to, "to", formatBase64, "output format (hex, base64, text, raw)")
	cmd.Flags().StringVar(&charset, "charset", "ascii", "character set for text (ascii, latin1, windows-1252, cp437)")
	return cmd
}

// keyFlags holds the --key/--key-hex pair shared by xor and aes.
type keyFlags struct {
	text string
	hex  string
}

func (k *keyFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&k.text, "key", "", "key as ascii text")
	cmd.Flags().StringVar(&k.hex, "key-hex", "", "key as hex")
}

func (k *keyFlags) resolve() (bindata.Data, error) {
	switch {
	case k.hex != "" && k.text != "":
		return bindata.Data{}, fmt.Errorf("%w: use only one of --key and --key-hex", bindata.ErrValue)
	case k.hex != "":
		return bindata.FromHex(k.hex)
	case k.text != "":
		return bindata.FromText(k.text, bindata.ASCII)
	default:
		return bindata.Data{}, fmt.Errorf("%w: a key is required", bindata.ErrValue)
	}
}

func newXORCmd() *cobra.Command {
	var key keyFlags
	var in, out string
	cmd := &cobra.Command{
		Use:   "xor [input|-|@file]",
		Short: "XOR data with a repeating key",
		Example: `  cryptokit xor --in text --key ICE "Burning 'em, if you ain't quick and nimble"
  cryptokit xor --key-hex 686974207468652062756c6c277320657965 1c0111001f010100061a024b53535009181c`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := key.resolve()
			if err != nil {
				return err
			}
			raw, err := readArg(cmd, args, 0)
			if err != nil {
				return err
			}
			data, err := decode(raw, in, bindata.ASCII)
			if err != nil {
				return err
			}
			result, err := data.XOR(k)
			if err != nil {
				return err
			}
			s, err := encode(result, out, bindata.ASCII)
			if err != nil {
				return err
			}
			writeLine(cmd, s)
			return nil
		},
	}
	key.register(cmd)
	cmd.Flags().StringVar(&in, "in", formatHex, "input format")
	cmd.Flags().StringVar(&out, "out", formatHex, "output format")
	return cmd
}

func newHammingCmd() *cobra.Command {
	var in string
	cmd := &cobra.Command{
		Use:     "hamming <a> <b>",
		Short:   "Count the differing bits of two equal-length inputs",
		Example: `  cryptokit hamming "this is a test" "wokka wokka!!!"`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := decode(args[0], in, bindata.ASCII)
			if err != nil {
				return err
			}
			b, err := decode(args[1], in, bindata.ASCII)
			if err != nil {
				return err
			}
			d, err := a.HammingDistance(b)
			if err != nil {
				return err
			}
			writeLine(cmd, strconv.Itoa(d))
			return nil
		},
	}
	cmd.Flags().StringVar(&in, "in", formatText, "input format")
	return cmd
}

func newScoreCmd(a *app) *cobra.Command {
	var in, method string
	cmd := &cobra.Command{
		Use:   "score [input|-|@file]",
		Short: "Score how much data looks like English",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if method == "" {
				method = a.cfg.Analysis.Method
			}
			eval, err := scoring.Lookup(method)
			if err != nil {
				return err
			}
			raw, err := readArg(cmd, args, 0)
			if err != nil {
				return err
			}
			data, err := decode(raw, in, bindata.ASCII)
			if err != nil {
				return err
			}
			writeLine(cmd, strconv.FormatFloat(eval(data), 'f', -1, 64))
			return nil
		},
	}
	cmd.Flags().StringVar(&in, "in", formatText, "input format")
	cmd.Flags().StringVar(&method, "method", "", "scoring method (default from config)")
	return cmd
}

func newPadCmd() *cobra.Command {
	var in, out string
	var blockSize int
	var unpad bool
	cmd := &cobra.Command{
		Use:     "pad [input|-|@file]",
		Short:   "Apply or strip PKCS#7 padding",
		Example: `  cryptokit pad --block-size 20 "YELLOW SUBMARINE"`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readArg(cmd, args, 0)
			if err != nil {
				return err
			}
			data, err := decode(raw, in, bindata.ASCII)
			if err != nil {
				return err
			}
			var result []byte
			if unpad {
				result, err = blockcipher.PKCS7Unpad(data.Bytes(), blockSize)
			} else {
				result, err = blockcipher.PKCS7Pad(data.Bytes(), blockSize)
			}
			if err != nil {
				return err
			}
			s, err := encode(bindata.New(result), out, bindata.ASCII)
			if err != nil {
				return err
			}
			writeLine(cmd, s)
			return nil
		},
	}
	cmd.Flags().StringVar(&in, "in", formatText, "input format")
	cmd.Flags().StringVar(&out, "out", formatHex, "output format")
	cmd.Flags().IntVar(&blockSize, "block-size", blockcipher.BlockSize, "padding block size (1-255)")
	cmd.Flags().BoolVar(&unpad, "unpad", false, "validate and strip padding instead")
	return cmd
}
