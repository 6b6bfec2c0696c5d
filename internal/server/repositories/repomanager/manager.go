package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Zhanerrke588595/it-events/internal/dbx"
	"github.com/Zhanerrke588595/it-events/internal/server/repositories/documents"
)

// RepositoryManager vends repositories bound to a database handle and owns
// the schema migrations.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Documents(db dbx.DBTX) documents.Repository
}

// sqlOpen is a seam for testing sql.Open.
var sqlOpen = sql.Open

// Open returns the document repository selected by dsn together with a
// function releasing its resources. An empty dsn selects the in-memory
// store; anything else opens PostgreSQL through pgx and migrates it.
func Open(ctx context.Context, dsn string) (documents.Repository, func() error, error) {
	if dsn == "" {
		return documents.NewMemoryRepository(), func() error { return nil }, nil
	}

	db, err := sqlOpen("pgx", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("db open error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("db ping error: %w", err)
	}

	m, err := NewPostgresRepositoryManager(db)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("db migration error: %w", err)
	}

	return m.Documents(db), db.Close, nil
}
