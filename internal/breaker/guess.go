// Package breaker recovers keys of XOR ciphers by brute force over a
// candidate keyspace, ranking decryptions with a scoring evaluator.
package breaker

import (
	"fmt"

	"github.com/RowanDark/cryptokit/internal/bindata"
	"github.com/RowanDark/cryptokit/internal/observability/metrics"
	"github.com/RowanDark/cryptokit/internal/scoring"
)

// ErrNoCandidates is returned when a search is given nothing to try.
var ErrNoCandidates = fmt.Errorf("%w: no candidate keys", bindata.ErrValue)

// Guess is the outcome of a key search. Found is false when no candidate
// produced a usable plaintext; Key and Plaintext are then empty.
type Guess struct {
	Key       bindata.Data
	Plaintext bindata.Data
	Score     float64
	Found     bool
}

// BestGuess decrypts ciphertext with every key and returns the candidate
// whose plaintext scores highest under method. Ties go to the earliest key.
// Plaintexts that cannot be evaluated score scoring.Invalid and never win.
func BestGuess(ciphertext bindata.Data, keys []bindata.Data, method string) (Guess, error) {
	eval, err := scoring.Lookup(method)
	if err != nil {
		return Guess{}, err
	}
	if len(keys) == 0 {
		return Guess{}, ErrNoCandidates
	}

	best := Guess{Score: scoring.Invalid}
	bestIndex := -1
	for i, key := range keys {
		plaintext, err := ciphertext.XOR(key)
		if err != nil {
			return Guess{}, fmt.Errorf("candidate %d: %w", i, err)
		}
		score := eval(plaintext)
		if bestIndex < 0 || score > best.Score {
			best = Guess{Key: key, Plaintext: plaintext, Score: score}
			bestIndex = i
		}
	}

	metrics.AddCandidates(len(keys))

	if best.Score < 0 {
		return Guess{Score: best.Score}, nil
	}
	best.Found = true
	return best, nil
}
