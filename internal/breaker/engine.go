package breaker

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/RowanDark/cryptokit/internal/bindata"
	"github.com/RowanDark/cryptokit/internal/logging"
	"github.com/RowanDark/cryptokit/internal/observability/metrics"
	"github.com/RowanDark/cryptokit/internal/scoring"
)

// Engine runs the multi-step searches (repeating-key recovery, detection)
// with a fixed scoring method. Logger and Audit are optional.
type Engine struct {
	Method string
	Logger *slog.Logger
	Audit  *logging.AuditLogger
}

// NewEngine validates method and returns an engine using it.
func NewEngine(method string, logger *slog.Logger) (*Engine, error) {
	if _, err := scoring.Lookup(method); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{Method: method, Logger: logger}, nil
}

// RecoverRepeatingKey recovers a key of keyLength bytes with the English
// evaluator. See Engine.RecoverRepeatingKey.
func RecoverRepeatingKey(ciphertext bindata.Data, keyLength int, keyspace []bindata.Data) (bindata.Data, error) {
	e := &Engine{Method: scoring.MethodEnglish}
	return e.RecoverRepeatingKey(ciphertext, keyLength, keyspace)
}

// Transpose distributes the bytes of ciphertext over n columns: column j
// holds the bytes at positions j, j+n, j+2n and so on.
func Transpose(ciphertext bindata.Data, n int) ([]bindata.Data, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d columns", ErrBlockSize, n)
	}
	raw := ciphertext.Bytes()
	columns := make([][]byte, n)
	for j := range columns {
		columns[j] = make([]byte, 0, len(raw)/n+1)
	}
	for i, b := range raw {
		columns[i%n] = append(columns[i%n], b)
	}
	out := make([]bindata.Data, n)
	for j, col := range columns {
		out[j] = bindata.New(col)
	}
	return out, nil
}

// RecoverRepeatingKey solves each of the keyLength columns of ciphertext
// as a single-byte XOR over keyspace and joins the per-column keys.
// Columns are independent; a column without a usable guess contributes
// 0x00. Every keyspace entry must be exactly one byte.
func (e *Engine) RecoverRepeatingKey(ciphertext bindata.Data, keyLength int, keyspace []bindata.Data) (bindata.Data, error) {
	if len(keyspace) == 0 {
		return bindata.Data{}, ErrNoCandidates
	}
	for i, k := range keyspace {
		if k.Len() != 1 {
			return bindata.Data{}, fmt.Errorf("%w: keyspace entry %d has %d bytes, want 1", bindata.ErrValue, i, k.Len())
		}
	}
	columns, err := Transpose(ciphertext, keyLength)
	if err != nil {
		return bindata.Data{}, err
	}

	keyBytes := make([]byte, keyLength)
	errs := make([]error, keyLength)
	var wg sync.WaitGroup
	for j, column := range columns {
		wg.Add(1)
		go func(j int, column bindata.Data) {
			defer wg.Done()
			guess, err := BestGuess(column, keyspace, e.Method)
			if err != nil {
				errs[j] = fmt.Errorf("column %d: %w", j, err)
				return
			}
			if guess.Found {
				keyBytes[j], _ = guess.Key.At(0)
			}
		}(j, column)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return bindata.Data{}, err
		}
	}
	return bindata.New(keyBytes), nil
}

// BreakRepeatingKey estimates the key length in [minLen, maxLen], recovers
// the key over keyspace and returns it with the decrypted plaintext.
func (e *Engine) BreakRepeatingKey(ciphertext bindata.Data, minLen, maxLen int, keyspace []bindata.Data) (Guess, error) {
	eval, err := scoring.Lookup(e.Method)
	if err != nil {
		return Guess{}, err
	}
	length, err := EstimateKeyLength(ciphertext, minLen, maxLen)
	if err != nil {
		return Guess{}, err
	}
	e.logger().Debug("estimated key length", "length", length, "min", minLen, "max", maxLen)
	e.emit(logging.EventKeyLengthEstimated, logging.OutcomeInfo, map[string]any{
		"length": length,
		"bytes":  ciphertext.Len(),
	})

	key, err := e.RecoverRepeatingKey(ciphertext, length, keyspace)
	if err != nil {
		return Guess{}, err
	}
	plaintext, err := ciphertext.XOR(key)
	if err != nil {
		return Guess{}, err
	}
	score := eval(plaintext)
	guess := Guess{Key: key, Plaintext: plaintext, Score: score, Found: score >= 0}

	metrics.RecordKeySearch("repeating", guess.Found)
	outcome := logging.OutcomeSuccess
	if !guess.Found {
		outcome = logging.OutcomeFailure
	}
	e.emit(logging.EventKeyRecovered, outcome, map[string]any{
		"key":    key.Hex(),
		"length": length,
		"score":  score,
	})
	return guess, nil
}

// DetectSingleByteXOR finds which of ciphertexts is most likely a
// single-byte XOR of English text. It returns the index of the winner and
// its guess; earlier ciphertexts win ties. The index is -1 and the guess
// not Found when no ciphertext decrypts to evaluatable text.
func (e *Engine) DetectSingleByteXOR(ciphertexts []bindata.Data, keyspace []bindata.Data) (int, Guess, error) {
	if len(ciphertexts) == 0 {
		return -1, Guess{}, fmt.Errorf("%w: no ciphertexts", bindata.ErrValue)
	}

	bestIndex := -1
	var best Guess
	for i, ct := range ciphertexts {
		guess, err := BestGuess(ct, keyspace, e.Method)
		if err != nil {
			return -1, Guess{}, fmt.Errorf("ciphertext %d: %w", i, err)
		}
		if !guess.Found {
			continue
		}
		if bestIndex < 0 || guess.Score > best.Score {
			best = guess
			bestIndex = i
		}
	}

	metrics.RecordKeySearch("detect", bestIndex >= 0)
	if bestIndex < 0 {
		e.logger().Debug("no ciphertext decrypted to text", "candidates", len(ciphertexts))
		return -1, Guess{}, nil
	}
	e.emit(logging.EventDetection, logging.OutcomeSuccess, map[string]any{
		"index":      bestIndex,
		"candidates": len(ciphertexts),
		"score":      best.Score,
	})
	return bestIndex, best, nil
}

func (e *Engine) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.Default()
	}
	return e.Logger
}

func (e *Engine) emit(event logging.EventType, outcome logging.Outcome, metadata map[string]any) {
	if e.Audit == nil {
		return
	}
	if err := e.Audit.Emit(logging.AuditEvent{EventType: event, Outcome: outcome, Metadata: metadata}); err != nil {
		e.logger().Warn("audit emit failed", "event", event, "error", err)
	}
}
