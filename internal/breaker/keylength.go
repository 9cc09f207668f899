package breaker

import (
	"fmt"
	"sort"

	"github.com/RowanDark/cryptokit/internal/bindata"
)

// ErrBlockSize is returned when a block size cannot be measured against a
// ciphertext: it is not positive or fewer than two full blocks fit.
var ErrBlockSize = fmt.Errorf("%w: unusable block size", bindata.ErrValue)

// KeyLengthScore pairs a candidate key length with its normalized Hamming
// distance. Lower distances indicate likelier key lengths.
type KeyLengthScore struct {
	Length   int
	Distance float64
}

// NormalizedHammingDistance splits ciphertext into full blocks of
// blockSize bytes, sums the Hamming distance of each adjacent pair and
// returns the mean distance per byte per pair. A trailing partial block is
// ignored.
func NormalizedHammingDistance(ciphertext bindata.Data, blockSize int) (float64, error) {
	if blockSize <= 0 || 2*blockSize > ciphertext.Len() {
		return 0, fmt.Errorf("%w: %d for %d bytes (max %d)", ErrBlockSize, blockSize, ciphertext.Len(), ciphertext.Len()/2)
	}

	raw := ciphertext.Bytes()
	blocks := len(raw) / blockSize
	sum := 0
	for i := 0; i+1 < blocks; i++ {
		a := bindata.New(raw[i*blockSize : (i+1)*blockSize])
		b := bindata.New(raw[(i+1)*blockSize : (i+2)*blockSize])
		d, err := a.HammingDistance(b)
		if err != nil {
			return 0, err
		}
		sum += d
	}
	return float64(sum) / float64(blockSize) / float64(blocks-1), nil
}

// RankKeyLengths scores every length in [minLen, maxLen] and returns them
// ordered from likeliest to least likely. Lengths that do not fit twice in
// the ciphertext are left out; equal distances keep ascending length order.
func RankKeyLengths(ciphertext bindata.Data, minLen, maxLen int) ([]KeyLengthScore, error) {
	if minLen > maxLen {
		return nil, fmt.Errorf("%w: key length range [%d, %d] is empty", bindata.ErrValue, minLen, maxLen)
	}

	var ranked []KeyLengthScore
	for length := max(minLen, 1); length <= maxLen; length++ {
		if 2*length > ciphertext.Len() {
			break
		}
		distance, err := NormalizedHammingDistance(ciphertext, length)
		if err != nil {
			return nil, err
		}
		ranked = append(ranked, KeyLengthScore{Length: length, Distance: distance})
	}
	if len(ranked) == 0 {
		return nil, fmt.Errorf("%w: no length in [%d, %d] fits %d bytes", ErrBlockSize, minLen, maxLen, ciphertext.Len())
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Distance < ranked[j].Distance
	})
	return ranked, nil
}

// EstimateKeyLength returns the likeliest repeating-key length in
// [minLen, maxLen], the smallest length winning exact ties.
func EstimateKeyLength(ciphertext bindata.Data, minLen, maxLen int) (int, error) {
	ranked, err := RankKeyLengths(ciphertext, minLen, maxLen)
	if err != nil {
		return 0, err
	}
	return ranked[0].Length, nil
}
