package documents

import (
	"context"
	"fmt"

	"github.com/Zhanerrke588595/it-events/internal/common"
	"github.com/Zhanerrke588595/it-events/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context, collection string) ([]Document, error) {
	query :=
		`SELECT id, body FROM documents
		 WHERE collection = $1
		 ORDER BY created_at, id
		 `

	rows, err := r.db.QueryContext(ctx, query, collection)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []Document{}
	for rows.Next() {
		d := Document{Collection: collection}
		var body []byte
		if err := rows.Scan(&d.ID, &body); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		d.Body = body
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, collection, id string) (*Document, error) {
	query :=
		`SELECT body FROM documents
		 WHERE collection = $1 AND id = $2
		 `

	var body []byte
	if err := r.db.QueryRowContext(ctx, query, collection, id).Scan(&body); err != nil {
		return nil, dbx.WrapErr(err)
	}

	return &Document{Collection: collection, ID: id, Body: body}, nil
}

func (r *PostgresRepository) Insert(ctx context.Context, doc *Document) error {
	query :=
		`INSERT INTO documents (collection, id, body)
		 VALUES ($1, $2, $3)
		 `

	if _, err := r.db.ExecContext(ctx, query, doc.Collection, doc.ID, []byte(doc.Body)); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Update(ctx context.Context, doc *Document) error {
	query :=
		`UPDATE documents SET body = $3
		 WHERE collection = $1 AND id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, doc.Collection, doc.ID, []byte(doc.Body))
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireAffected(res.RowsAffected())
}

func (r *PostgresRepository) Delete(ctx context.Context, collection, id string) error {
	query :=
		`DELETE FROM documents
		 WHERE collection = $1 AND id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, collection, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireAffected(res.RowsAffected())
}

func requireAffected(n int64, err error) error {
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}
