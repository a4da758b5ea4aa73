package inference

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"maps single words", "numbness and tingling", "hypoesthesia and paresthesia"},
		{"case insensitive", "Swelling REDNESS", "edema erythema"},
		{"collapses whitespace", "  fever \t\n chills  ", "pyrexia shivering"},
		{"multi word replacement", "burning pain", "burning sensation localized pain"},
		{"unmapped tokens pass through", "bite mark", "bite mark"},
		{"phrase keys do not match", "joint pain", "joint localized pain"},
		{"punctuation blocks lookup", "itching, swelling", "itching, edema"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotentOnClinicalVocabulary(t *testing.T) {
	t.Parallel()

	// Terms containing a colloquial key re-expand on every pass.
	reexpanding := map[string]string{
		"burning sensation": "burning sensation sensation",
		"localized pain":    "localized localized pain",
	}

	for _, clinical := range symptomSynonyms {
		once := Normalize(clinical)
		if want, ok := reexpanding[clinical]; ok {
			assert.Equal(t, want, once)
			continue
		}
		assert.Equal(t, once, Normalize(once), "normalizing %q twice changed it", clinical)
	}
}

func TestDeadPhraseKeys(t *testing.T) {
	t.Parallel()

	dead := DeadPhraseKeys()
	assert.Contains(t, dead, "joint pain")
	assert.Contains(t, dead, "shortness of breath")
	assert.NotContains(t, dead, "tingling")
	assert.IsIncreasing(t, dead)
	for _, key := range dead {
		assert.Equal(t, Normalize(key), strings.Join(mapEach(strings.Fields(key)), " "),
			"phrase %q should normalize word by word", key)
	}
}

func mapEach(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		if clinical, ok := symptomSynonyms[w]; ok {
			w = clinical
		}
		out[i] = w
	}
	return out
}
