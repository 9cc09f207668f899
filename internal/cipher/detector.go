package cipher

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/RowanDark/cryptokit/internal/bindata"
	"github.com/RowanDark/cryptokit/internal/breaker"
	"github.com/RowanDark/cryptokit/internal/scoring"
)

const minConfidence = 0.3

var (
	hexPattern    = regexp.MustCompile(`^[0-9A-Fa-f]+$`)
	base64Pattern = regexp.MustCompile(`^[A-Za-z0-9+/]+={0,2}$`)
)

// SmartDetector guesses how data was encoded: hex, base64, and whether the
// decoded bytes look like English under a single-byte XOR.
type SmartDetector struct {
	// Keyspace names the single-byte XOR keys to try. Empty means letters.
	Keyspace string
}

// NewSmartDetector creates a new smart detector
func NewSmartDetector() *SmartDetector {
	return &SmartDetector{}
}

// Detect attempts to identify the encoding of the input
func (d *SmartDetector) Detect(ctx context.Context, input []byte) ([]DetectionResult, error) {
	if len(input) == 0 {
		return nil, fmt.Errorf("%w: empty input", bindata.ErrValue)
	}

	results := []DetectionResult{}
	results = append(results, d.detectHex(input)...)
	results = append(results, d.detectBase64(input)...)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	// Hex and base64 text XORs into letters too easily to test raw.
	if len(results) == 0 {
		results = append(results, d.detectXOR(nil, input)...)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Confidence > results[j].Confidence
	})

	filtered := []DetectionResult{}
	for _, r := range results {
		if r.Confidence >= minConfidence {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

// SupportedEncodings returns a list of encodings this detector can identify
func (d *SmartDetector) SupportedEncodings() []string {
	return []string{"hex", "base64", "xor-single-byte", "hex+xor-single-byte", "base64+xor-single-byte"}
}

// detectHex checks if input is an even-length run of hex digits
func (d *SmartDetector) detectHex(input []byte) []DetectionResult {
	text := joinFields(input)
	if !hexPattern.MatchString(text) || len(text)%2 != 0 {
		return nil
	}
	decoded, err := bindata.FromHex(text)
	if err != nil {
		return nil
	}

	confidence := 0.9
	reasoning := "Even-length string of hexadecimal digits"
	if len(text) < 8 {
		confidence = 0.6
		reasoning += " (short)"
	}
	step := OperationConfig{Name: "hex_decode"}
	results := []DetectionResult{{
		Encoding:   "hex",
		Confidence: confidence,
		Reasoning:  reasoning,
		Operation:  step.Name,
		Steps:      []OperationConfig{step},
	}}
	return append(results, d.detectXOR(&step, decoded.Bytes())...)
}

// detectBase64 checks if input is padded standard Base64
func (d *SmartDetector) detectBase64(input []byte) []DetectionResult {
	text := joinFields(input)
	if len(text)%4 != 0 || !base64Pattern.MatchString(text) {
		return nil
	}
	decoded, err := bindata.FromBase64(text)
	if err != nil {
		return nil
	}

	confidence := 0.85
	reasoning := "Padded Base64 alphabet that decodes cleanly"
	if hexPattern.MatchString(text) {
		confidence = 0.4
		reasoning = "Decodes as Base64 but is also valid hex"
	}
	step := OperationConfig{Name: "base64_decode"}
	results := []DetectionResult{{
		Encoding:   "base64",
		Confidence: confidence,
		Reasoning:  reasoning,
		Operation:  step.Name,
		Steps:      []OperationConfig{step},
	}}
	return append(results, d.detectXOR(&step, decoded.Bytes())...)
}

// detectXOR reports data that is not itself text but becomes English under
// a single-byte XOR. prior is the decoding step that produced data, if any.
func (d *SmartDetector) detectXOR(prior *OperationConfig, data []byte) []DetectionResult {
	if len(data) < 8 || letterRatio(data) >= 0.7 {
		return nil
	}
	keyspaceName := d.Keyspace
	if keyspaceName == "" {
		keyspaceName = breaker.KeyspaceLetters
	}
	keyspace, err := breaker.Keyspace(keyspaceName)
	if err != nil {
		return nil
	}
	guess, err := breaker.BestGuess(bindata.New(data), keyspace, scoring.MethodEnglish)
	if err != nil || !guess.Found {
		return nil
	}
	ratio := letterRatio(guess.Plaintext.Bytes())
	if ratio < 0.7 {
		return nil
	}

	encoding := "xor-single-byte"
	var steps []OperationConfig
	if prior != nil {
		encoding = strings.TrimSuffix(prior.Name, "_decode") + "+" + encoding
		steps = append(steps, *prior)
	}
	steps = append(steps, OperationConfig{
		Name:       "xor_break_single",
		Parameters: map[string]interface{}{"keyspace": keyspaceName},
	})
	return []DetectionResult{{
		Encoding:   encoding,
		Confidence: 0.95 * ratio,
		Reasoning:  fmt.Sprintf("Single-byte XOR with key %s yields English (score %.0f)", guess.Key.Hex(), guess.Score),
		Operation:  steps[0].Name,
		Steps:      steps,
	}}
}

// letterRatio is the share of ASCII letters and spaces in data.
func letterRatio(data []byte) float64 {
	if len(data) == 0 {
		return 0
	}
	n := 0
	for _, b := range data {
		if b == ' ' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') {
			n++
		}
	}
	return float64(n) / float64(len(data))
}

// DecodeAll runs the steps of every detection and keeps those that succeed
func DecodeAll(ctx context.Context, input []byte) ([]DecodeResult, error) {
	detector := NewSmartDetector()
	detections, err := detector.Detect(ctx, input)
	if err != nil {
		return nil, err
	}

	results := []DecodeResult{}
	for _, detection := range detections {
		pipeline := &Pipeline{Operations: detection.Steps}
		decoded, err := pipeline.Execute(ctx, input)
		if err != nil {
			// Skip detections whose pipeline fails
			continue
		}

		results = append(results, DecodeResult{
			Detection: detection,
			Decoded:   decoded,
			Success:   true,
		})
	}

	return results, nil
}

// DecodeResult represents the result of a decode attempt
type DecodeResult struct {
	Detection DetectionResult `json:"detection"`
	Decoded   []byte          `json:"decoded"`
	Success   bool            `json:"success"`
	Error     string          `json:"error,omitempty"`
}
