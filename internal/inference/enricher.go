package inference

import (
	"context"
	"fmt"
	"math"

	"github.com/patrickmn/go-cache"

	"github.com/tphakala/venomid/internal/errors"
)

const (
	unknownCommonName = "Unknown"
	doiURLPrefix      = "https://dx.doi.org/"
)

// enricher resolves display fields for candidates. Lookups are memoized
// for the lifetime of one call; misses are cached as nil.
type enricher struct {
	store ReferenceStore
	memo  *cache.Cache
}

func newEnricher(store ReferenceStore) *enricher {
	return &enricher{store: store, memo: cache.New(cache.NoExpiration, 0)}
}

// Enrich maps each candidate to a ResultEntry, preserving order. Any store
// error other than ErrLookupMiss aborts the whole call.
func Enrich(ctx context.Context, store ReferenceStore, candidates []MatchCandidate) ([]ResultEntry, error) {
	e := newEnricher(store)
	results := make([]ResultEntry, 0, len(candidates))
	for i := range candidates {
		entry, err := e.enrich(ctx, &candidates[i])
		if err != nil {
			return nil, err
		}
		results = append(results, entry)
	}
	return results, nil
}

func (e *enricher) enrich(ctx context.Context, c *MatchCandidate) (ResultEntry, error) {
	entry := ResultEntry{
		CommonName: unknownCommonName,
		MatchScore: roundScore(c.MatchScore),
		Symptom:    c.Symptom,
		OnsetTime:  c.OnsetTime,
		Duration:   c.Duration,
	}

	name, err := memoLookup(e, fmt.Sprintf("cn:%d:%d", c.SpeciesID, c.ReferenceID), func() (*string, error) {
		return e.store.CommonName(ctx, c.SpeciesID, c.ReferenceID)
	})
	if err != nil {
		return ResultEntry{}, err
	}
	if name != nil {
		entry.CommonName = *name
	}

	picture, err := memoLookup(e, fmt.Sprintf("pic:%d", c.SpeciesID), func() (*string, error) {
		return e.store.SpeciesPicture(ctx, c.SpeciesID)
	})
	if err != nil {
		return ResultEntry{}, err
	}
	if picture != nil && *picture != "" {
		entry.Image = strPtr("/" + *picture)
	}

	doi, err := memoLookup(e, fmt.Sprintf("doi:%d", c.ReferenceID), func() (*string, error) {
		return e.store.ReferenceDOI(ctx, c.ReferenceID)
	})
	if err != nil {
		return ResultEntry{}, err
	}
	entry.Reference = doi
	if doi != nil && *doi != "" {
		entry.DOIURL = strPtr(doiURLPrefix + *doi)
	}

	treatment, err := memoLookup(e, fmt.Sprintf("tp:%d:%d", c.SpeciesID, c.ReferenceID), func() (*Treatment, error) {
		t, err := e.store.Treatment(ctx, c.SpeciesID, c.ReferenceID)
		return &t, err
	})
	if err != nil {
		return ResultEntry{}, err
	}
	if treatment != nil {
		entry.FirstAid = treatment.FirstAid
		entry.HospitalTreatment = treatment.HospitalTreatment
		entry.Prognosis = treatment.Prognosis
	}

	return entry, nil
}

// memoLookup runs fetch once per key. ErrLookupMiss is cached as a nil
// result; other errors are returned uncached.
func memoLookup[T any](e *enricher, key string, fetch func() (*T, error)) (*T, error) {
	if v, ok := e.memo.Get(key); ok {
		return v.(*T), nil
	}
	v, err := fetch()
	if errors.Is(err, ErrLookupMiss) {
		v, err = nil, nil
	}
	if err != nil {
		return nil, err
	}
	e.memo.Set(key, v, cache.NoExpiration)
	return v, nil
}

// roundScore rounds to two decimals, halves away from zero.
func roundScore(score float64) float64 {
	return math.Round(score*100) / 100
}

func strPtr(s string) *string {
	return &s
}
