package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/tphakala/venomid/internal/datastore/entities"
)

type commonNameRepository struct{ db *gorm.DB }

// NewCommonNameRepository creates a CommonNameRepository on db.
func NewCommonNameRepository(db *gorm.DB) CommonNameRepository {
	return &commonNameRepository{db: db}
}

// First uses Take: the table has no key to order by, and the first row in
// storage order is the one wanted.
func (r *commonNameRepository) First(ctx context.Context, speciesID, referenceID int64) (*entities.CommonName, error) {
	var row entities.CommonName
	err := r.db.WithContext(ctx).
		Where("species_id = ? AND reference_id = ?", speciesID, referenceID).
		Take(&row).Error
	if err != nil {
		return nil, translate(err, ErrCommonNameNotFound)
	}
	return &row, nil
}

type speciesRepository struct{ db *gorm.DB }

// NewSpeciesRepository creates a SpeciesRepository on db.
func NewSpeciesRepository(db *gorm.DB) SpeciesRepository {
	return &speciesRepository{db: db}
}

func (r *speciesRepository) Get(ctx context.Context, speciesID int64) (*entities.Species, error) {
	var row entities.Species
	err := r.db.WithContext(ctx).Where("species_id = ?", speciesID).Take(&row).Error
	if err != nil {
		return nil, translate(err, ErrSpeciesNotFound)
	}
	return &row, nil
}

type referenceRepository struct{ db *gorm.DB }

// NewReferenceRepository creates a ReferenceRepository on db.
func NewReferenceRepository(db *gorm.DB) ReferenceRepository {
	return &referenceRepository{db: db}
}

func (r *referenceRepository) Get(ctx context.Context, referenceID int64) (*entities.Reference, error) {
	var row entities.Reference
	err := r.db.WithContext(ctx).Where("reference_id = ?", referenceID).Take(&row).Error
	if err != nil {
		return nil, translate(err, ErrReferenceNotFound)
	}
	return &row, nil
}

type treatmentRepository struct{ db *gorm.DB }

// NewTreatmentRepository creates a TreatmentRepository on db.
func NewTreatmentRepository(db *gorm.DB) TreatmentRepository {
	return &treatmentRepository{db: db}
}

func (r *treatmentRepository) Get(ctx context.Context, speciesID, referenceID int64) (*entities.TreatmentProtocol, error) {
	var row entities.TreatmentProtocol
	err := r.db.WithContext(ctx).
		Where("species_id = ? AND reference_id = ?", speciesID, referenceID).
		Take(&row).Error
	if err != nil {
		return nil, translate(err, ErrTreatmentNotFound)
	}
	return &row, nil
}
