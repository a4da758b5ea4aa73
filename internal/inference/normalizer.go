package inference

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// symptomSynonyms maps colloquial words to clinical vocabulary. Input is
// tokenized before lookup, so keys containing a space never match; they
// are kept as they appear in the knowledge base tooling and reported by
// DeadPhraseKeys.
var symptomSynonyms = map[string]string{
	"tingling":              "paresthesia",
	"numbness":              "hypoesthesia",
	"burning":               "burning sensation",
	"itching":               "pruritus",
	"itchiness":             "pruritus",
	"swelling":              "edema",
	"redness":               "erythema",
	"blue skin":             "cyanosis",
	"pale skin":             "pallor",
	"blisters":              "vesicles",
	"welts":                 "urticaria",
	"hives":                 "urticaria",
	"rash":                  "dermatitis",
	"pain":                  "localized pain",
	"muscle pain":           "myalgia",
	"joint pain":            "arthralgia",
	"abdominal pain":        "abdominal cramps",
	"headache":              "cephalalgia",
	"dizziness":             "vertigo",
	"nausea":                "nausea",
	"vomiting":              "emesis",
	"diarrhea":              "diarrhea",
	"fainting":              "syncope",
	"shortness of breath":   "dyspnea",
	"trouble breathing":     "dyspnea",
	"difficulty breathing":  "dyspnea",
	"rapid heartbeat":       "tachycardia",
	"slow heartbeat":        "bradycardia",
	"high blood pressure":   "hypertension",
	"low blood pressure":    "hypotension",
	"convulsions":           "seizures",
	"shaking":               "tremors",
	"muscle spasms":         "spasms",
	"paralysis":             "paralysis",
	"sweating":              "diaphoresis",
	"confusion":             "disorientation",
	"hallucinations":        "visual disturbances",
	"chills":                "shivering",
	"fever":                 "pyrexia",
	"blurred vision":        "vision disturbances",
	"drooping eyelids":      "ptosis",
	"excessive salivation":  "hypersalivation",
	"difficulty swallowing": "dysphagia",
	"difficulty speaking":   "dysarthria",
	"loss of coordination":  "ataxia",
	"muscle weakness":       "muscular weakness",
	"chest tightness":       "chest discomfort",
	"cyanotic lips":         "cyanosis",
}

// lower applies full Unicode lowercasing. A Caser is stateful, so each
// call gets its own.
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// Normalize lowercases text, splits it on whitespace, replaces each token
// found in the synonym table and joins the result with single spaces.
func Normalize(text string) string {
	tokens := strings.Fields(lower(text))
	for i, token := range tokens {
		if clinical, ok := symptomSynonyms[token]; ok {
			tokens[i] = clinical
		}
	}
	return strings.Join(tokens, " ")
}

// DeadPhraseKeys returns, sorted, the synonym keys that contain whitespace
// and therefore can never match a single token.
func DeadPhraseKeys() []string {
	var dead []string
	for key := range symptomSynonyms {
		if strings.ContainsFunc(key, isSpace) {
			dead = append(dead, key)
		}
	}
	slices.Sort(dead)
	return dead
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n'
}
