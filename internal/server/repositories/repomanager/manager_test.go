package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Zhanerrke588595/it-events/internal/server/repositories/documents"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func stubOpen(t *testing.T, db *sql.DB, err error) {
	t.Helper()
	orig := sqlOpen
	sqlOpen = func(driver, dsn string) (*sql.DB, error) {
		if driver != "pgx" {
			return nil, errors.New("unexpected driver " + driver)
		}
		return db, err
	}
	t.Cleanup(func() { sqlOpen = orig })
}

func stubGoose(t *testing.T, err error) *int {
	t.Helper()
	calls := 0
	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		calls++
		if dir != "." {
			return errors.New("unexpected dir")
		}
		return err
	}
	t.Cleanup(func() { gooseUpContext = orig })
	return &calls
}

func TestOpen_EmptyDSNUsesMemory(t *testing.T) {
	repo, closeFn, err := Open(context.Background(), "")
	require.NoError(t, err)
	assert.IsType(t, &documents.MemoryRepository{}, repo)
	assert.NoError(t, closeFn())
}

func TestOpen_PostgresMigrates(t *testing.T) {
	db, mock := newDB(t)
	mock.ExpectPing()
	mock.ExpectClose()
	stubOpen(t, db, nil)
	calls := stubGoose(t, nil)

	repo, closeFn, err := Open(context.Background(), "postgres://db")
	require.NoError(t, err)
	assert.IsType(t, &documents.PostgresRepository{}, repo)
	assert.Equal(t, 1, *calls)

	require.NoError(t, closeFn())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOpen_PingError(t *testing.T) {
	db, mock := newDB(t)
	mock.ExpectPing().WillReturnError(errors.New("refused"))
	mock.ExpectClose()
	stubOpen(t, db, nil)
	calls := stubGoose(t, nil)

	_, _, err := Open(context.Background(), "postgres://db")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db ping error")
	assert.Zero(t, *calls)
}

func TestOpen_MigrationError(t *testing.T) {
	db, mock := newDB(t)
	mock.ExpectPing()
	mock.ExpectClose()
	stubOpen(t, db, nil)
	stubGoose(t, errors.New("boom"))

	_, _, err := Open(context.Background(), "postgres://db")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db migration error")
	assert.ErrorContains(t, err, "boom")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOpen_OpenError(t *testing.T) {
	stubOpen(t, nil, errors.New("bad dsn"))

	_, _, err := Open(context.Background(), "::")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db open error")
}

func TestPostgresRepositoryManager_Documents(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	m, err := NewPostgresRepositoryManager(db)
	require.NoError(t, err)

	var _ documents.Repository = m.Documents(db)
	assert.NotNil(t, m.Documents(db))
}
