package inference

import (
	"cmp"
	"slices"
	"strings"
)

// Threshold is the exclusive lower bound a record's score must exceed to
// become a candidate.
const Threshold = 30.0

// Rank scores every record against the normalized query and returns the
// records scoring above Threshold, highest first. Ties keep corpus order.
func Rank(normalized string, corpus []SymptomRecord) []MatchCandidate {
	tokens := strings.Fields(normalized)
	var candidates []MatchCandidate
	for i := range corpus {
		score := Score(tokens, corpus[i].combinedText())
		if score > Threshold {
			candidates = append(candidates, MatchCandidate{SymptomRecord: corpus[i], MatchScore: score})
		}
	}
	slices.SortStableFunc(candidates, func(a, b MatchCandidate) int {
		return cmp.Compare(b.MatchScore, a.MatchScore)
	})
	return candidates
}
