package datastore

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/tphakala/venomid/internal/conf"
	"github.com/tphakala/venomid/internal/datastore/entities"
	"github.com/tphakala/venomid/internal/datastore/repository"
	"github.com/tphakala/venomid/internal/inference"
	"github.com/tphakala/venomid/internal/logger"
	"github.com/tphakala/venomid/internal/observability/metrics"
)

// Opener hands out one read-only session per inference call. SQLite
// sessions open their own read-only file handle; MySQL and PostgreSQL
// sessions are read-only transactions on a shared pool, so every query of
// a call sees the same snapshot.
type Opener struct {
	driver     string
	sqlitePath string
	cfg        Config
	pool       Manager
}

// NewOpener creates an Opener for the configured driver. Server drivers
// connect immediately so misconfiguration surfaces at startup.
func NewOpener(settings *conf.StoreSettings, cfg Config) (*Opener, error) {
	cfg.ReadOnly = true
	o := &Opener{driver: settings.Driver, sqlitePath: settings.SQLite.Path, cfg: cfg}
	if o.driver == "" {
		o.driver = conf.DriverSQLite
	}

	if o.driver != conf.DriverSQLite {
		pool, err := NewManager(settings, cfg)
		if err != nil {
			return nil, err
		}
		o.pool = pool
	}
	return o, nil
}

// NewPooledOpener creates an Opener on an existing Manager.
func NewPooledOpener(pool Manager, cfg Config) *Opener {
	return &Opener{driver: pool.Driver(), cfg: cfg, pool: pool}
}

// OpenStore implements inference.StoreOpener.
func (o *Opener) OpenStore(ctx context.Context) (inference.ReferenceStore, error) {
	s, err := o.openSession(ctx)
	status := metrics.StatusSuccess
	if err != nil {
		status = metrics.StatusError
	}
	if m := o.cfg.Metrics; m != nil {
		m.RecordOperation(metrics.OpOpenSession+":"+o.driver, status)
		if err != nil {
			m.RecordError(metrics.OpOpenSession, "open_failed")
		} else {
			m.SessionOpened()
		}
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (o *Opener) openSession(ctx context.Context) (*session, error) {
	if o.pool == nil {
		m, err := NewSQLiteManager(o.sqlitePath, o.cfg)
		if err != nil {
			return nil, err
		}
		return newSession(m.DB(), m.Close, o.cfg.Metrics), nil
	}

	tx := o.pool.DB().WithContext(ctx).Begin(&sql.TxOptions{ReadOnly: true})
	if tx.Error != nil {
		return nil, dbError(tx.Error, "begin_read_only", "driver", o.driver, "location", o.pool.Path())
	}
	return newSession(tx, func() error { return tx.Rollback().Error }, o.cfg.Metrics), nil
}

// Close releases the shared pool, if any.
func (o *Opener) Close() error {
	if o.pool == nil {
		return nil
	}
	return o.pool.Close()
}

// session implements inference.ReferenceStore on one GORM handle.
type session struct {
	db         *gorm.DB
	symptoms   repository.SymptomRepository
	names      repository.CommonNameRepository
	species    repository.SpeciesRepository
	references repository.ReferenceRepository
	treatments repository.TreatmentRepository

	release   func() error
	closeOnce sync.Once
	closeErr  error
	metrics   *metrics.DatastoreMetrics
}

func newSession(db *gorm.DB, release func() error, m *metrics.DatastoreMetrics) *session {
	return &session{
		db:         db,
		symptoms:   repository.NewSymptomRepository(db),
		names:      repository.NewCommonNameRepository(db),
		species:    repository.NewSpeciesRepository(db),
		references: repository.NewReferenceRepository(db),
		treatments: repository.NewTreatmentRepository(db),
		release:    release,
		metrics:    m,
	}
}

// observe records one query. Lookup misses count as successful queries.
func (s *session) observe(table string, start time.Time, err error) {
	if s.metrics == nil {
		return
	}
	op := metrics.OpDbQuery + ":" + table
	s.metrics.RecordDuration(op, time.Since(start).Seconds())
	switch {
	case err == nil, repository.IsNotFound(err):
		s.metrics.RecordOperation(op, metrics.StatusSuccess)
	default:
		s.metrics.RecordOperation(op, metrics.StatusError)
		s.metrics.RecordError(op, "query_failed")
	}
}

func (s *session) Symptoms(ctx context.Context) ([]inference.SymptomRecord, error) {
	start := time.Now()
	rows, err := s.symptoms.All(ctx)
	s.observe(entities.SymptomRecord{}.TableName(), start, err)
	if err != nil {
		return nil, dbError(err, "load_corpus")
	}

	records := make([]inference.SymptomRecord, len(rows))
	for i := range rows {
		records[i] = inference.SymptomRecord{
			SpeciesID:   rows[i].SpeciesID,
			ReferenceID: rows[i].ReferenceID,
			Symptom:     rows[i].Symptom,
			OnsetTime:   rows[i].OnsetTime,
			Duration:    rows[i].Duration,
		}
	}
	return records, nil
}

func (s *session) CommonName(ctx context.Context, speciesID, referenceID int64) (*string, error) {
	start := time.Now()
	row, err := s.names.First(ctx, speciesID, referenceID)
	s.observe(entities.CommonName{}.TableName(), start, err)
	if err != nil {
		return nil, lookupError(err)
	}
	return row.Name, nil
}

func (s *session) SpeciesPicture(ctx context.Context, speciesID int64) (*string, error) {
	start := time.Now()
	row, err := s.species.Get(ctx, speciesID)
	s.observe(entities.Species{}.TableName(), start, err)
	if err != nil {
		return nil, lookupError(err)
	}
	return row.Picture, nil
}

func (s *session) ReferenceDOI(ctx context.Context, referenceID int64) (*string, error) {
	start := time.Now()
	row, err := s.references.Get(ctx, referenceID)
	s.observe(entities.Reference{}.TableName(), start, err)
	if err != nil {
		return nil, lookupError(err)
	}
	return row.DOI, nil
}

func (s *session) Treatment(ctx context.Context, speciesID, referenceID int64) (inference.Treatment, error) {
	start := time.Now()
	row, err := s.treatments.Get(ctx, speciesID, referenceID)
	s.observe(entities.TreatmentProtocol{}.TableName(), start, err)
	if err != nil {
		return inference.Treatment{}, lookupError(err)
	}
	return inference.Treatment{
		FirstAid:          row.FirstAid,
		HospitalTreatment: row.HospitalTreatment,
		Prognosis:         row.Prognosis,
	}, nil
}

// Close releases the session. It is safe to call more than once.
func (s *session) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.release()
		if s.metrics != nil {
			s.metrics.SessionClosed()
		}
		if s.closeErr != nil {
			GetLogger().Warn("failed to release store session", logger.Error(s.closeErr))
		}
	})
	return s.closeErr
}

// lookupError maps repository misses to inference.ErrLookupMiss.
func lookupError(err error) error {
	if repository.IsNotFound(err) {
		return inference.ErrLookupMiss
	}
	return dbError(err, "lookup")
}

var (
	_ inference.StoreOpener    = (*Opener)(nil)
	_ inference.ReferenceStore = (*session)(nil)
)
