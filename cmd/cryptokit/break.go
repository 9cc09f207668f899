package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/RowanDark/cryptokit/internal/bindata"
	"github.com/RowanDark/cryptokit/internal/breaker"
)

// searchFlags are shared by every break subcommand.
type searchFlags struct {
	in       string
	keyspace string
	method   string
}

func (s *searchFlags) register(cmd *cobra.Command, in string) {
	cmd.Flags().StringVar(&s.in, "in", in, "input format")
	cmd.Flags().StringVar(&s.keyspace, "keyspace", "", "candidate key bytes (bytes, printable, letters; default from config)")
	cmd.Flags().StringVar(&s.method, "method", "", "scoring method (default from config)")
}

func (s *searchFlags) keys(a *app) ([]bindata.Data, error) {
	name := s.keyspace
	if name == "" {
		name = a.cfg.Analysis.Keyspace
	}
	return breaker.Keyspace(name)
}

func newBreakCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "break",
		Short: "Recover XOR keys",
	}
	cmd.AddCommand(newBreakSingleCmd(a), newBreakRepeatingCmd(a), newBreakDetectCmd(a))
	return cmd
}

func newBreakSingleCmd(a *app) *cobra.Command {
	var s searchFlags
	cmd := &cobra.Command{
		Use:     "single [input|-|@file]",
		Short:   "Recover a single-byte XOR key",
		Example: `  cryptokit break single --keyspace letters 1b37373331363f78151b7f2b783431333d78397828372d363c78373e783a393b3736`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readArg(cmd, args, 0)
			if err != nil {
				return err
			}
			ct, err := decode(raw, s.in, bindata.ASCII)
			if err != nil {
				return err
			}
			keys, err := s.keys(a)
			if err != nil {
				return err
			}
			method := s.method
			if method == "" {
				method = a.cfg.Analysis.Method
			}
			guess, err := breaker.BestGuess(ct, keys, method)
			if err != nil {
				return err
			}
			return printGuess(cmd, guess)
		},
	}
	s.register(cmd, formatHex)
	return cmd
}

func newBreakRepeatingCmd(a *app) *cobra.Command {
	var s searchFlags
	var minLen, maxLen int
	cmd := &cobra.Command{
		Use:     "repeating [input|-|@file]",
		Short:   "Recover a repeating-key XOR key",
		Example: `  cryptokit break repeating --in base64 @6.txt`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readArg(cmd, args, 0)
			if err != nil {
				return err
			}
			ct, err := decode(raw, s.in, bindata.ASCII)
			if err != nil {
				return err
			}
			keys, err := s.keys(a)
			if err != nil {
				return err
			}
			engine, err := a.engine(s.method)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("min") {
				minLen = a.cfg.Analysis.MinKeyLength
			}
			if !cmd.Flags().Changed("max") {
				maxLen = a.cfg.Analysis.MaxKeyLength
			}
			guess, err := engine.BreakRepeatingKey(ct, minLen, maxLen, keys)
			if err != nil {
				return err
			}
			return printGuess(cmd, guess)
		},
	}
	s.register(cmd, formatBase64)
	cmd.Flags().IntVar(&minLen, "min", 2, "smallest key length to try (default from config)")
	cmd.Flags().IntVar(&maxLen, "max", 40, "largest key length to try (default from config)")
	return cmd
}

func newBreakDetectCmd(a *app) *cobra.Command {
	var s searchFlags
	cmd := &cobra.Command{
		Use:     "detect [input|-|@file]",
		Short:   "Find the line encrypted with single-byte XOR",
		Example: `  cryptokit break detect @4.txt`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readArg(cmd, args, 0)
			if err != nil {
				return err
			}
			var lines []bindata.Data
			for n, line := range strings.Split(raw, "\n") {
				line = strings.TrimSpace(line)
				if line == "" {
					continue
				}
				d, err := decode(line, s.in, bindata.ASCII)
				if err != nil {
					return fmt.Errorf("line %d: %w", n+1, err)
				}
				lines = append(lines, d)
			}
			keys, err := s.keys(a)
			if err != nil {
				return err
			}
			engine, err := a.engine(s.method)
			if err != nil {
				return err
			}
			index, guess, err := engine.DetectSingleByteXOR(lines, keys)
			if err != nil {
				return err
			}
			if index < 0 {
				return fmt.Errorf("no line decrypts to a plausible plaintext")
			}
			writeLine(cmd, fmt.Sprintf("line: %d", index))
			return printGuess(cmd, guess)
		},
	}
	s.register(cmd, formatHex)
	return cmd
}

func printGuess(cmd *cobra.Command, guess breaker.Guess) error {
	if guess.Key.Len() == 0 {
		return fmt.Errorf("no candidate key produced a plausible plaintext")
	}
	if !guess.Found {
		writeLine(cmd, "warning: the recovered key does not decrypt to plausible text")
	}
	plaintext, _ := encode(guess.Plaintext, formatText, bindata.ASCII)
	writeLine(cmd, fmt.Sprintf("key: %s", guess.Key.Hex()))
	if text, err := guess.Key.Text(bindata.ASCII); err == nil {
		writeLine(cmd, fmt.Sprintf("key text: %q", text))
	}
	writeLine(cmd, fmt.Sprintf("score: %g", guess.Score))
	writeLine(cmd, "plaintext:")
	writeLine(cmd, plaintext)
	return nil
}
