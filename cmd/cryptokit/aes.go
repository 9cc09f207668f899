package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RowanDark/cryptokit/internal/bindata"
	"github.com/RowanDark/cryptokit/internal/cipher"
)

func newAESCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aes",
		Short: "AES encryption with PKCS#7 padding",
		Long: `AES in ECB, CBC, CFB, OFB or CTR mode. ECB and CBC input is padded with
PKCS#7. Without --iv a random IV is generated and prepended to the
ciphertext; decryption then reads it from the front.`,
	}
	cmd.AddCommand(
		newAESDirectionCmd("encrypt", formatText, formatBase64),
		newAESDirectionCmd("decrypt", formatBase64, formatText),
	)
	return cmd
}

func newAESDirectionCmd(direction, defaultIn, defaultOut string) *cobra.Command {
	var key keyFlags
	var mode, iv, in, out string
	cmd := &cobra.Command{
		Use:     direction + " [input|-|@file]",
		Short:   "AES " + direction,
		Example: fmt.Sprintf("  cryptokit aes %s --key \"YELLOW SUBMARINE\" --mode ecb @7.txt", direction),
		Args:    cobra.MaximumNArgs(1),
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

			op, ok := cipher.GetOperation("aes_" + direction)
			if !ok {
				return fmt.Errorf("%w: aes_%s", cipher.ErrUnknownOperation, direction)
			}
			params := map[string]interface{}{"key_hex": k.Hex(), "mode": mode}
			if iv != "" {
				params["iv"] = iv
			}
			result, err := op.Execute(cmd.Context(), data.Bytes(), params)
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
	key.register(cmd)
	cmd.Flags().StringVar(&mode, "mode", "ecb", "block mode (ecb, cbc, cfb, ofb, ctr)")
	cmd.Flags().StringVar(&iv, "iv", "", "16-byte IV as hex (not allowed with ecb)")
	cmd.Flags().StringVar(&in, "in", defaultIn, "input format")
	cmd.Flags().StringVar(&out, "out", defaultOut, "output format")
	return cmd
}
