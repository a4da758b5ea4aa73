package datastore

import (
	"context"

	"gorm.io/gorm"

	"github.com/tphakala/venomid/internal/datastore/entities"
	"github.com/tphakala/venomid/internal/logger"
	"github.com/tphakala/venomid/internal/observability/metrics"
)

// Migrate creates the knowledge base tables that do not exist yet and adds
// missing columns and indexes. Existing data is left untouched.
func Migrate(ctx context.Context, m Manager, rec metrics.Recorder) error {
	if rec == nil {
		rec = metrics.NoOpRecorder{}
	}
	if err := migrate(m.DB().WithContext(ctx)); err != nil {
		rec.RecordOperation(metrics.OpMigrate, metrics.StatusError)
		return dbError(err, "migrate", "driver", m.Driver(), "location", m.Path())
	}
	rec.RecordOperation(metrics.OpMigrate, metrics.StatusSuccess)
	GetLogger().Info("knowledge base schema is up to date",
		logger.String("driver", m.Driver()),
		logger.String("location", m.Path()))
	return nil
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(entities.All()...)
}
