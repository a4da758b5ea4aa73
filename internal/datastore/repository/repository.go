package repository

import (
	"context"

	"github.com/tphakala/venomid/internal/datastore/entities"
)

// SymptomRepository scans the symptom corpus.
type SymptomRepository interface {
	// All returns every row in storage order.
	All(ctx context.Context) ([]entities.SymptomRecord, error)
	Count(ctx context.Context) (int64, error)
}

// CommonNameRepository resolves vernacular names.
type CommonNameRepository interface {
	// First returns the first row for the pair, or ErrCommonNameNotFound.
	First(ctx context.Context, speciesID, referenceID int64) (*entities.CommonName, error)
}

// SpeciesRepository resolves species media.
type SpeciesRepository interface {
	Get(ctx context.Context, speciesID int64) (*entities.Species, error)
}

// ReferenceRepository resolves literature references.
type ReferenceRepository interface {
	Get(ctx context.Context, referenceID int64) (*entities.Reference, error)
}

// TreatmentRepository resolves treatment protocols.
type TreatmentRepository interface {
	Get(ctx context.Context, speciesID, referenceID int64) (*entities.TreatmentProtocol, error)
}
