package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/RowanDark/cryptokit/internal/bindata"
	"github.com/RowanDark/cryptokit/internal/cipher"
)

func newDetectCmd() *cobra.Command {
	var decodeAll bool
	cmd := &cobra.Command{
		Use:   "detect [input|-|@file]",
		Short: "Guess how data is encoded",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readArg(cmd, args, 0)
			if err != nil {
				return err
			}
			input := []byte(strings.TrimRight(raw, "\r\n"))

			if decodeAll {
				results, err := cipher.DecodeAll(cmd.Context(), input)
				if err != nil {
					return err
				}
				for _, r := range results {
					text, _ := encode(bindata.New(r.Decoded), formatText, bindata.ASCII)
					writeLine(cmd, fmt.Sprintf("%-24s %.2f  %s", r.Detection.Encoding, r.Detection.Confidence, text))
				}
				return nil
			}

			results, err := cipher.NewSmartDetector().Detect(cmd.Context(), input)
			if err != nil {
				return err
			}
			for _, r := range results {
				steps := make([]string, len(r.Steps))
				for i, s := range r.Steps {
					steps[i] = s.Name
				}
				writeLine(cmd, fmt.Sprintf("%-24s %.2f  %s  (%s)", r.Encoding, r.Confidence, strings.Join(steps, " -> "), r.Reasoning))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&decodeAll, "decode", false, "run each detection and print the decoded output")
	return cmd
}
