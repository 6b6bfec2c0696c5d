package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Zhanerrke588595/it-events/internal/dbx"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func get(ctx context.Context, q dbx.DBTX, key string) (string, error) {
	var value string
	err := q.QueryRowContext(ctx, `SELECT value FROM credentials WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get credentials[%s]: %w", key, err)
	}
	return value, nil
}

func set(ctx context.Context, q dbx.DBTX, key, value string) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO credentials (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set credentials[%s]: %w", key, err)
	}
	return nil
}

func del(ctx context.Context, q dbx.DBTX, key string) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM credentials WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete credentials[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) (string, error) {
	return get(ctx, r.db, key)
}

func (r *SQLiteRepository) Set(ctx context.Context, key, value string) error {
	return set(ctx, r.db, key, value)
}

func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	return del(ctx, r.db, key)
}

func (r *SQLiteRepository) Load(ctx context.Context) (Credentials, error) {
	token, err := r.Get(ctx, KeyToken)
	if err != nil {
		return Credentials{}, err
	}
	userID, err := r.Get(ctx, KeyUserID)
	if err != nil {
		return Credentials{}, err
	}
	return Credentials{Token: token, UserID: userID}, nil
}

func (r *SQLiteRepository) Save(ctx context.Context, c Credentials) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := set(ctx, tx, KeyToken, c.Token); err != nil {
			return err
		}
		return set(ctx, tx, KeyUserID, c.UserID)
	})
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := del(ctx, tx, KeyToken); err != nil {
			return err
		}
		return del(ctx, tx, KeyUserID)
	})
}

// Token implements client.TokenSource.
func (r *SQLiteRepository) Token(ctx context.Context) (string, error) {
	return r.Get(ctx, KeyToken)
}
