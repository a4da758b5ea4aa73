package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/tphakala/venomid/internal/datastore/entities"
)

type symptomRepository struct {
	db *gorm.DB
}

// NewSymptomRepository creates a SymptomRepository on db.
func NewSymptomRepository(db *gorm.DB) SymptomRepository {
	return &symptomRepository{db: db}
}

func (r *symptomRepository) All(ctx context.Context) ([]entities.SymptomRecord, error) {
	var rows []entities.SymptomRecord
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *symptomRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entities.SymptomRecord{}).Count(&n).Error
	return n, err
}
