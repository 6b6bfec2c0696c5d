package documents

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Zhanerrke588595/it-events/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const (
	listQuery   = `(?s)^SELECT\s+id,\s*body\s+FROM\s+documents\s+WHERE\s+collection\s*=\s*\$1\s+ORDER\s+BY\s+created_at,\s*id\s*$`
	getQuery    = `(?s)^SELECT\s+body\s+FROM\s+documents\s+WHERE\s+collection\s*=\s*\$1\s+AND\s+id\s*=\s*\$2\s*$`
	insertQuery = `(?s)^INSERT\s+INTO\s+documents\s*\(collection,\s*id,\s*body\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*$`
	updateQuery = `(?s)^UPDATE\s+documents\s+SET\s+body\s*=\s*\$3\s+WHERE\s+collection\s*=\s*\$1\s+AND\s+id\s*=\s*\$2\s*$`
	deleteQuery = `(?s)^DELETE\s+FROM\s+documents\s+WHERE\s+collection\s*=\s*\$1\s+AND\s+id\s*=\s*\$2\s*$`
)

func TestPostgresList_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "body"}).
		AddRow("1", []byte(`{"id":"1"}`)).
		AddRow("2", []byte(`{"id":"2"}`))
	mock.ExpectQuery(listQuery).WithArgs("events").WillReturnRows(rows)

	got, err := repo.List(context.Background(), "events")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "events", got[1].Collection)
	assert.JSONEq(t, `{"id":"2"}`, string(got[1].Body))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresList_EmptyIsNotNil(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(listQuery).WithArgs("bookings").WillReturnRows(sqlmock.NewRows([]string{"id", "body"}))

	got, err := repo.List(context.Background(), "bookings")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestPostgresList_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(listQuery).WithArgs("events").WillReturnError(errors.New("db down"))

	_, err := repo.List(context.Background(), "events")
	require.Error(t, err)
	assert.Regexp(t, regexp.MustCompile(`db error: .*db down`), err.Error())
}

func TestPostgresGet(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectQuery(getQuery).WithArgs("users", "u1").
			WillReturnRows(sqlmock.NewRows([]string{"body"}).AddRow([]byte(`{"id":"u1"}`)))

		got, err := repo.Get(context.Background(), "users", "u1")
		require.NoError(t, err)
		assert.Equal(t, "u1", got.ID)
		assert.JSONEq(t, `{"id":"u1"}`, string(got.Body))
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectQuery(getQuery).WithArgs("users", "nope").WillReturnError(sql.ErrNoRows)

		_, err := repo.Get(context.Background(), "users", "nope")
		assert.ErrorIs(t, err, common.ErrNotFound)
	})
}

func TestPostgresInsert(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	body := []byte(`{"id":"e1","title":"Go"}`)
	mock.ExpectExec(insertQuery).WithArgs("events", "e1", body).WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Insert(context.Background(), &Document{Collection: "events", ID: "e1", Body: body})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresInsert_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(insertQuery).WillReturnError(errors.New("duplicate key"))

	err := repo.Insert(context.Background(), &Document{Collection: "events", ID: "e1", Body: []byte(`{}`)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error")
}

func TestPostgresUpdate(t *testing.T) {
	t.Run("updated", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectExec(updateQuery).WithArgs("events", "e1", []byte(`{"id":"e1"}`)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Update(context.Background(), &Document{Collection: "events", ID: "e1", Body: []byte(`{"id":"e1"}`)}))
	})

	t.Run("missing row", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectExec(updateQuery).WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(context.Background(), &Document{Collection: "events", ID: "e9", Body: []byte(`{}`)})
		assert.ErrorIs(t, err, common.ErrNotFound)
	})
}

func TestPostgresDelete(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectExec(deleteQuery).WithArgs("events", "e1").WillReturnResult(sqlmock.NewResult(0, 1))
		require.NoError(t, repo.Delete(context.Background(), "events", "e1"))
	})

	t.Run("missing row", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectExec(deleteQuery).WithArgs("events", "e1").WillReturnResult(sqlmock.NewResult(0, 0))
		assert.ErrorIs(t, repo.Delete(context.Background(), "events", "e1"), common.ErrNotFound)
	})

	t.Run("rows affected error", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectExec(deleteQuery).WithArgs("events", "e1").
			WillReturnResult(sqlmock.NewErrorResult(errors.New("no count")))
		err := repo.Delete(context.Background(), "events", "e1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db error")
	})
}
