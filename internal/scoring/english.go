// Package scoring rates candidate plaintexts. Every evaluator returns a
// score where higher means a better match; Invalid marks candidates that
// cannot be evaluated at all and ranks below every real score.
package scoring

import (
	"github.com/RowanDark/cryptokit/internal/bindata"
)

// Invalid is returned for candidates that are not evaluatable text.
const Invalid = -1.0

// printable mirrors Python's string.printable: digits, letters,
// punctuation and the six whitespace characters.
var printable = func() [128]bool {
	var set [128]bool
	for c := '0'; c <= '9'; c++ {
		set[c] = true
	}
	for c := 'a'; c <= 'z'; c++ {
		set[c] = true
		set[c-'a'+'A'] = true
	}
	for _, c := range "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~ \t\n\r\x0b\x0c" {
		set[c] = true
	}
	return set
}()

var (
	singleLetters = newWeightTable(splitChars("ETAOIN SHRDLU"))
	doubleLetters = newWeightTable([]string{
		"LL", "EE", "SS", "OO", "TT", "FF", "RR", "NN", "PP", "CC",
	})
	digraphs = newWeightTable([]string{
		"TH", "HE", "AN", "RE", "ER", "IN", "ON", "AT", "ND", "ST",
		"ES", "EN", "OF", "TE",
	})
)

// English scores how closely d resembles English prose. Letter and
// digraph frequencies are weighted by rank, then scaled by the ratio of
// lowercase to uppercase letters.
func English(d bindata.Data) float64 {
	text, err := d.Text(bindata.ASCII)
	if err != nil {
		return Invalid
	}

	var singles [128]int
	lower, upper := 0, 0
	for i := 0; i < len(text); i++ {
		c := text[i]
		if !printable[c] {
			return Invalid
		}
		singles[c]++
		switch {
		case c >= 'a' && c <= 'z':
			lower++
		case c >= 'A' && c <= 'Z':
			upper++
		}
	}

	pairs := make(map[string]int)
	for i := 0; i+1 < len(text); i++ {
		pairs[text[i:i+2]]++
	}

	score := 0.0
	for c, count := range singles {
		if count == 0 {
			continue
		}
		score += singleLetters.weight(string(toUpper(byte(c)))) * float64(count)
	}
	for pair, count := range pairs {
		key := string([]byte{toUpper(pair[0]), toUpper(pair[1])})
		score += (doubleLetters.weight(key) + digraphs.weight(key)) * float64(count)
	}

	return score * float64(lower) / float64(max(upper, 1))
}

func toUpper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

func splitChars(s string) []string {
	out := make([]string, len(s))
	for i := range s {
		out[i] = s[i : i+1]
	}
	return out
}
