// Package repository provides read-only access to the knowledge base
// tables, one repository per entity.
package repository

import (
	"gorm.io/gorm"

	"github.com/tphakala/venomid/internal/errors"
)

// Sentinel errors for point lookups. Callers distinguish a missing row
// from a failed query without depending on GORM.
var (
	// ErrCommonNameNotFound indicates no common name row for the pair.
	ErrCommonNameNotFound = errors.NewStd("common name not found")

	// ErrSpeciesNotFound indicates no Species row.
	ErrSpeciesNotFound = errors.NewStd("species not found")

	// ErrReferenceNotFound indicates no References_Table row.
	ErrReferenceNotFound = errors.NewStd("reference not found")

	// ErrTreatmentNotFound indicates no treatment protocol for the pair.
	ErrTreatmentNotFound = errors.NewStd("treatment protocol not found")
)

// IsNotFound reports whether err is one of the lookup sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCommonNameNotFound) ||
		errors.Is(err, ErrSpeciesNotFound) ||
		errors.Is(err, ErrReferenceNotFound) ||
		errors.Is(err, ErrTreatmentNotFound)
}

// translate maps gorm.ErrRecordNotFound to notFound and passes anything
// else through.
func translate(err, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return err
}
