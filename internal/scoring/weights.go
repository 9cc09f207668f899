package scoring

// weightTable assigns rank weights to an ordered token list; tokens not in
// the list weigh zero.
type weightTable struct {
	tokens  []string
	weights map[string]float64
}

// newWeightTable weights tokens along a reversed Fibonacci sequence. For N
// tokens the first N+2 Fibonacci numbers (0, 1, 1, 2, ...) are generated,
// reversed, and the largest N assigned in token order. The leading 0 and 1
// are never used, so the last token weighs 1 and no listed token weighs 0.
// For the 13 single-letter tokens that gives E=377 down to U=1.
func newWeightTable(tokens []string) weightTable {
	t := weightTable{
		tokens:  tokens,
		weights: make(map[string]float64, len(tokens)),
	}
	switch len(tokens) {
	case 0:
		return t
	case 1:
		t.weights[tokens[0]] = 1.0
		return t
	}

	fib := make([]float64, len(tokens)+2)
	fib[1] = 1
	for i := 2; i < len(fib); i++ {
		fib[i] = fib[i-1] + fib[i-2]
	}
	for i, tok := range tokens {
		t.weights[tok] = fib[len(fib)-1-i]
	}
	return t
}

func (t weightTable) weight(token string) float64 {
	return t.weights[token]
}
