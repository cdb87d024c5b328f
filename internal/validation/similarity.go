package validation

import (
	"math"

	"github.com/agnivade/levenshtein"
)

// similarTextPercent scores two strings by the total length of their common
// substrings, found recursively around the longest one, relative to the
// combined length.
func similarTextPercent(a, b string) float64 {
	if len(a)+len(b) == 0 {
		return 0
	}
	return float64(similarText(a, b)*2) * 100 / float64(len(a)+len(b))
}

func similarText(a, b string) int {
	if a == "" || b == "" {
		return 0
	}

	best, posA, posB := 0, 0, 0
	for i := 0; i < len(a); i++ {
		for j := 0; j < len(b); j++ {
			k := 0
			for i+k < len(a) && j+k < len(b) && a[i+k] == b[j+k] {
				k++
			}
			if k > best {
				best, posA, posB = k, i, j
			}
		}
	}
	if best == 0 {
		return 0
	}
	return best + similarText(a[:posA], b[:posB]) + similarText(a[posA+best:], b[posB+best:])
}

// editSimilarityPercent converts Levenshtein distance into a 0-100 score
func editSimilarityPercent(a, b string) float64 {
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 100
	}
	d := levenshtein.ComputeDistance(a, b)
	return (1 - float64(d)/float64(maxLen)) * 100
}

func percent(f float64) int {
	return int(math.Round(f))
}
