package inference

import (
	"context"

	"github.com/tphakala/venomid/internal/errors"
)

// SymptomRecord is one row of the symptom corpus. Several rows may share
// a (SpeciesID, ReferenceID) pair.
type SymptomRecord struct {
	SpeciesID   int64
	ReferenceID int64
	Symptom     string
	OnsetTime   *string
	Duration    *string
}

// combinedText is the text a record is scored against.
func (r *SymptomRecord) combinedText() string {
	return r.Symptom + " " + deref(r.OnsetTime) + " " + deref(r.Duration)
}

// MatchCandidate is a record that scored above Threshold.
type MatchCandidate struct {
	SymptomRecord
	MatchScore float64
}

// Treatment holds the protocol fields for a (species, reference) pair.
type Treatment struct {
	FirstAid          *string
	HospitalTreatment *string
	Prognosis         *string
}

// ResultEntry is one enriched match as returned to callers. Nil pointers
// encode as JSON null.
type ResultEntry struct {
	CommonName        string  `json:"common_name"`
	Image             *string `json:"image"`
	MatchScore        float64 `json:"match_score"`
	Symptom           string  `json:"symptom"`
	OnsetTime         *string `json:"onset_time"`
	Duration          *string `json:"duration"`
	Reference         *string `json:"reference"`
	DOIURL            *string `json:"doi_url"`
	FirstAid          *string `json:"first_aid"`
	HospitalTreatment *string `json:"hospital_treatment"`
	Prognosis         *string `json:"prognosis"`
}

// ReferenceStore is a read-only session on the knowledge base. Point
// lookups return ErrLookupMiss when no row exists.
type ReferenceStore interface {
	// Symptoms returns the full corpus in scan order.
	Symptoms(ctx context.Context) ([]SymptomRecord, error)

	// CommonName returns the first common name row for the pair. The
	// returned pointer is nil when the row holds NULL.
	CommonName(ctx context.Context, speciesID, referenceID int64) (*string, error)

	SpeciesPicture(ctx context.Context, speciesID int64) (*string, error)
	ReferenceDOI(ctx context.Context, referenceID int64) (*string, error)
	Treatment(ctx context.Context, speciesID, referenceID int64) (Treatment, error)

	// Close releases the session.
	Close() error
}

// StoreOpener opens one ReferenceStore per inference call.
type StoreOpener interface {
	OpenStore(ctx context.Context) (ReferenceStore, error)
}

// Sentinel errors. ErrInput and ErrStoreUnavailable cross the Service
// boundary wrapped in *errors.EnhancedError; ErrLookupMiss never does.
var (
	ErrInput            = errors.NewStd("missing or empty symptoms")
	ErrStoreUnavailable = errors.NewStd("reference store unavailable")
	ErrLookupMiss       = errors.NewStd("reference lookup returned no row")
)

// IsInputError reports whether err was caused by empty input.
func IsInputError(err error) bool {
	return errors.Is(err, ErrInput)
}

// IsStoreUnavailable reports whether err was caused by a store failure.
func IsStoreUnavailable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
