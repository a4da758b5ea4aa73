package inference

import (
	edlib "github.com/hbollon/go-edlib"
)

const perfectRatio = 100.0

// Score sums PartialRatio(token, text) over the query tokens, both sides
// lowercased. The sum is not normalized by the token count, so longer
// queries produce larger scores.
func Score(tokens []string, text string) float64 {
	haystack := lower(text)
	var total float64
	for _, token := range tokens {
		total += PartialRatio(lower(token), haystack)
	}
	return total
}

// PartialRatio returns the best Indel similarity (0-100) between the
// shorter string and any equally long window of the longer one, including
// the partial windows hanging off either end. Lengths are in runes.
// Two empty strings score 100; one empty string scores 0.
func PartialRatio(a, b string) float64 {
	s1, s2 := []rune(a), []rune(b)
	if len(s1) > len(s2) {
		s1, s2 = s2, s1
	}
	if len(s1) == 0 {
		if len(s2) == 0 {
			return perfectRatio
		}
		return 0
	}

	best := bestWindowRatio(s1, s2)
	if best < perfectRatio && len(s1) == len(s2) {
		best = max(best, bestWindowRatio(s2, s1))
	}
	return best
}

// bestWindowRatio slides needle across haystack (len(needle) <= len(haystack)).
func bestWindowRatio(needle, haystack []rune) float64 {
	n, m := len(needle), len(haystack)
	needleStr := string(needle)
	var best float64

	consider := func(window []rune) bool {
		r := indelRatio(needleStr, len(needle), window)
		if r > best {
			best = r
		}
		return best >= perfectRatio
	}

	// prefixes shorter than the needle
	for i := 1; i < n; i++ {
		if consider(haystack[:i]) {
			return best
		}
	}
	// full length windows
	for i := 0; i+n <= m; i++ {
		if consider(haystack[i : i+n]) {
			return best
		}
	}
	// suffixes shorter than the needle
	for i := m - n + 1; i < m; i++ {
		if consider(haystack[i:]) {
			return best
		}
	}
	return best
}

// indelRatio is the normalized Indel similarity 100 * 2*LCS / (len1+len2).
func indelRatio(needle string, needleLen int, window []rune) float64 {
	total := needleLen + len(window)
	if total == 0 {
		return perfectRatio
	}
	lcs := edlib.LCS(needle, string(window))
	return perfectRatio * float64(2*lcs) / float64(total)
}
