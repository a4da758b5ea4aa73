package datastore

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tphakala/venomid/internal/datastore/entities"
	"github.com/tphakala/venomid/internal/errors"
	"github.com/tphakala/venomid/internal/logger"
	"github.com/tphakala/venomid/internal/observability/metrics"
)

const seedBatchSize = 200

// Dataset is the YAML seed format for the knowledge base.
type Dataset struct {
	Species     []entities.Species           `yaml:"species"`
	References  []entities.Reference         `yaml:"references"`
	CommonNames []entities.CommonName        `yaml:"common_names"`
	Symptoms    []entities.SymptomRecord     `yaml:"symptoms"`
	Treatments  []entities.TreatmentProtocol `yaml:"treatments"`
}

// SeedStats counts inserted rows per table.
type SeedStats struct {
	Species, References, CommonNames, Symptoms, Treatments int
}

// Total returns the number of rows inserted.
func (s SeedStats) Total() int {
	return s.Species + s.References + s.CommonNames + s.Symptoms + s.Treatments
}

// LoadDataset reads and validates a YAML dataset file.
func LoadDataset(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(err).
			Component("datastore").
			Category(errors.CategoryFileIO).
			Context("path", path).
			Build()
	}

	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, errors.New(fmt.Errorf("parse dataset: %w", err)).
			Component("datastore").
			Category(errors.CategoryFileParsing).
			Context("path", path).
			Build()
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}

// Validate checks that every symptom, name and treatment row points at a
// species and reference that the dataset defines, and that symptoms are
// not empty.
func (ds *Dataset) Validate() error {
	species := make(map[int64]bool, len(ds.Species))
	for _, s := range ds.Species {
		species[s.SpeciesID] = true
	}
	refs := make(map[int64]bool, len(ds.References))
	for _, r := range ds.References {
		refs[r.ReferenceID] = true
	}

	var problems []error
	check := func(kind string, i int, sp, ref int64) {
		if !species[sp] {
			problems = append(problems, fmt.Errorf("%s[%d]: unknown species_id %d", kind, i, sp))
		}
		if !refs[ref] {
			problems = append(problems, fmt.Errorf("%s[%d]: unknown reference_id %d", kind, i, ref))
		}
	}
	for i, s := range ds.Symptoms {
		check("symptoms", i, s.SpeciesID, s.ReferenceID)
		if s.Symptom == "" {
			problems = append(problems, fmt.Errorf("symptoms[%d]: empty symptom", i))
		}
	}
	for i, n := range ds.CommonNames {
		check("common_names", i, n.SpeciesID, n.ReferenceID)
	}
	for i, t := range ds.Treatments {
		check("treatments", i, t.SpeciesID, t.ReferenceID)
	}

	if len(problems) > 0 {
		return errors.New(errors.Join(problems...)).
			Component("datastore").
			Category(errors.CategoryValidation).
			Context("problems", len(problems)).
			Build()
	}
	return nil
}

// Seed migrates the schema and inserts ds in one transaction. Seeding the
// same dataset again inserts nothing: keyed tables (Species,
// References_Table, Treatment_Protocols) skip existing primary keys, and
// the unkeyed Common_Names and Envenomation_Symptoms skip rows that are
// already stored with identical values.
func Seed(ctx context.Context, m Manager, ds *Dataset, rec metrics.Recorder) (SeedStats, error) {
	if rec == nil {
		rec = metrics.NoOpRecorder{}
	}

	var stats SeedStats
	err := m.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := migrate(tx); err != nil {
			return err
		}
		var err error
		if stats.Species, err = insertBatch(tx, ds.Species, true); err != nil {
			return err
		}
		if stats.References, err = insertBatch(tx, ds.References, true); err != nil {
			return err
		}
		if stats.CommonNames, err = insertMissing(tx, ds.CommonNames, commonNameKeyOf); err != nil {
			return err
		}
		if stats.Symptoms, err = insertMissing(tx, ds.Symptoms, symptomKeyOf); err != nil {
			return err
		}
		stats.Treatments, err = insertBatch(tx, ds.Treatments, true)
		return err
	})
	if err != nil {
		rec.RecordOperation(metrics.OpSeed, metrics.StatusError)
		return SeedStats{}, dbError(err, "seed", "driver", m.Driver(), "location", m.Path())
	}

	rec.RecordOperation(metrics.OpSeed, metrics.StatusSuccess)
	GetLogger().Info("knowledge base seeded",
		logger.String("location", m.Path()),
		logger.Int("species", stats.Species),
		logger.Int("symptoms", stats.Symptoms),
		logger.Int("rows", stats.Total()))
	return stats, nil
}

// insertBatch inserts rows; keyed tables skip rows that already exist.
func insertBatch[T any](tx *gorm.DB, rows []T, keyed bool) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	if keyed {
		tx = tx.Clauses(clause.OnConflict{DoNothing: true})
	}
	res := tx.CreateInBatches(&rows, seedBatchSize)
	return int(res.RowsAffected), res.Error
}

// insertMissing inserts the rows of an unkeyed table that are not stored
// yet. Matches are counted, so a row the dataset repeats keeps its
// repetitions on the first seed and a later seed adds none.
func insertMissing[T any, K comparable](tx *gorm.DB, rows []T, key func(*T) K) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	var existing []T
	if err := tx.Find(&existing).Error; err != nil {
		return 0, err
	}
	stored := make(map[K]int, len(existing))
	for i := range existing {
		stored[key(&existing[i])]++
	}

	missing := make([]T, 0, len(rows))
	for i := range rows {
		k := key(&rows[i])
		if stored[k] > 0 {
			stored[k]--
			continue
		}
		missing = append(missing, rows[i])
	}
	return insertBatch(tx, missing, false)
}

// optionalText tells a NULL column apart from an empty string.
type optionalText struct {
	valid bool
	text  string
}

func optional(s *string) optionalText {
	if s == nil {
		return optionalText{}
	}
	return optionalText{valid: true, text: *s}
}

type symptomKey struct {
	speciesID, referenceID int64
	symptom                string
	onset, duration        optionalText
}

func symptomKeyOf(r *entities.SymptomRecord) symptomKey {
	return symptomKey{
		speciesID:   r.SpeciesID,
		referenceID: r.ReferenceID,
		symptom:     r.Symptom,
		onset:       optional(r.OnsetTime),
		duration:    optional(r.Duration),
	}
}

type commonNameKey struct {
	speciesID, referenceID int64
	name                   optionalText
}

func commonNameKeyOf(r *entities.CommonName) commonNameKey {
	return commonNameKey{speciesID: r.SpeciesID, referenceID: r.ReferenceID, name: optional(r.Name)}
}
