package inference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankEmptyCorpus(t *testing.T) {
	t.Parallel()

	for _, q := range []string{"", "edema", "numbness and tingling"} {
		assert.Empty(t, Rank(Normalize(q), nil))
	}
}

func TestRankFiltersAndOrders(t *testing.T) {
	t.Parallel()

	corpus := []SymptomRecord{
		{SpeciesID: 1, ReferenceID: 1, Symptom: "qqq"},
		{SpeciesID: 2, ReferenceID: 1, Symptom: "edema of the limb", OnsetTime: ptr("1 hour"), Duration: ptr("1 day")},
		{SpeciesID: 3, ReferenceID: 2, Symptom: "severe paresthesia and edema"},
		{SpeciesID: 4, ReferenceID: 2, Symptom: "paresthesia edema"},
	}

	got := Rank(Normalize("tingling swelling"), corpus)

	require.Len(t, got, 3)
	assert.Equal(t, []int64{3, 4, 2}, speciesIDs(got), "ties must keep corpus order")
	assert.InDelta(t, 200, got[0].MatchScore, 1e-9)
	assert.InDelta(t, 200, got[1].MatchScore, 1e-9)
	assert.InDelta(t, 1600.0/11, got[2].MatchScore, 1e-9)
}

func TestRankScoresAboveThresholdNonIncreasing(t *testing.T) {
	t.Parallel()

	corpus := []SymptomRecord{
		{SpeciesID: 1, Symptom: "mild itch"},
		{SpeciesID: 2, Symptom: "pruritus at the site"},
		{SpeciesID: 3, Symptom: "localized pain and edema", Duration: ptr("hours")},
		{SpeciesID: 4, Symptom: "zz"},
		{SpeciesID: 5, Symptom: "muscle cramps", OnsetTime: ptr("delayed")},
	}

	for _, q := range []string{"itching", "pain swelling", "cramps", "x"} {
		got := Rank(Normalize(q), corpus)
		for i, c := range got {
			assert.Greater(t, c.MatchScore, Threshold, "query %q", q)
			if i > 0 {
				assert.LessOrEqual(t, c.MatchScore, got[i-1].MatchScore, "query %q", q)
			}
		}
	}
}

func TestRankIncludesOnsetAndDuration(t *testing.T) {
	t.Parallel()

	corpus := []SymptomRecord{
		{SpeciesID: 1, Symptom: "qqq", OnsetTime: ptr("immediate")},
	}
	got := Rank("immediate", corpus)
	require.Len(t, got, 1)
	assert.InDelta(t, 100, got[0].MatchScore, 1e-9)
}

func speciesIDs(cs []MatchCandidate) []int64 {
	ids := make([]int64, len(cs))
	for i := range cs {
		ids[i] = cs[i].SpeciesID
	}
	return ids
}
