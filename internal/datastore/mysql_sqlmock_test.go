package datastore

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tphakala/venomid/internal/errors"
	"github.com/tphakala/venomid/internal/inference"
)

// mockedMySQLOpener returns a pooled Opener whose MySQL connection is a
// sqlmock.
func mockedMySQLOpener(t *testing.T) (*Opener, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)

	m, err := newMySQLManager(gdb, "mock:3306/kb")
	require.NoError(t, err)
	return NewPooledOpener(m, Config{ReadOnly: true}), mock
}

func TestPooledSessionCorpusFailure(t *testing.T) {
	t.Parallel()

	opener, mock := mockedMySQLOpener(t)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `Envenomation_Symptoms`").
		WillReturnError(errors.NewStd("connection reset by peer"))
	mock.ExpectRollback()

	store, err := opener.OpenStore(t.Context())
	require.NoError(t, err)

	_, err = store.Symptoms(t.Context())
	require.Error(t, err)
	assert.NotErrorIs(t, err, inference.ErrLookupMiss)
	assert.True(t, errors.IsCategory(err, errors.CategoryDatabase))

	require.NoError(t, store.Close())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPooledSessionLookupMiss(t *testing.T) {
	t.Parallel()

	opener, mock := mockedMySQLOpener(t)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `Species`").
		WillReturnRows(sqlmock.NewRows([]string{"species_id", "picture"}))
	mock.ExpectQuery("SELECT \\* FROM `References_Table`").
		WillReturnRows(sqlmock.NewRows([]string{"reference_id", "doi"}).AddRow(4, "10.1/x"))
	mock.ExpectRollback()

	store, err := opener.OpenStore(t.Context())
	require.NoError(t, err)

	_, err = store.SpeciesPicture(t.Context(), 42)
	require.ErrorIs(t, err, inference.ErrLookupMiss)

	doi, err := store.ReferenceDOI(t.Context(), 4)
	require.NoError(t, err)
	assert.Equal(t, strPtr("10.1/x"), doi)

	require.NoError(t, store.Close())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPooledOpenerBeginFailure(t *testing.T) {
	t.Parallel()

	opener, mock := mockedMySQLOpener(t)
	mock.ExpectBegin().WillReturnError(errors.NewStd("too many connections"))

	_, err := opener.OpenStore(t.Context())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too many connections")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestServiceMapsPooledFailureToStoreUnavailable(t *testing.T) {
	t.Parallel()

	opener, mock := mockedMySQLOpener(t)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `Envenomation_Symptoms`").
		WillReturnError(errors.NewStd("server has gone away"))
	mock.ExpectRollback()

	_, err := inference.NewService(opener).Infer(t.Context(), "edema")
	require.Error(t, err)
	assert.True(t, inference.IsStoreUnavailable(err))
	require.NoError(t, mock.ExpectationsWereMet())
}
