package scoring

import (
	"fmt"
	"sort"

	"github.com/RowanDark/cryptokit/internal/bindata"
)

// MethodEnglish selects the English-likeness evaluator.
const MethodEnglish = "english"

// ErrUnknownMethod is returned by Lookup for unregistered method names.
var ErrUnknownMethod = fmt.Errorf("%w: unknown scoring method", bindata.ErrValue)

// Evaluator scores a candidate plaintext.
type Evaluator func(bindata.Data) float64

var evaluators = map[string]Evaluator{
	MethodEnglish: English,
}

// Lookup returns the evaluator registered under method.
func Lookup(method string) (Evaluator, error) {
	eval, ok := evaluators[method]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownMethod, method)
	}
	return eval, nil
}

// Methods lists the registered method names in sorted order.
func Methods() []string {
	names := make([]string, 0, len(evaluators))
	for name := range evaluators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
