// Package documents stores JSON documents grouped into named collections.
package documents

import (
	"context"
	"encoding/json"
)

// Document is one stored record. Body always carries an "id" field equal
// to ID.
type Document struct {
	Collection string
	ID         string
	Body       json.RawMessage
}

// Repository persists documents. Missing documents yield common.ErrNotFound.
// List returns documents in insertion order.
type Repository interface {
	List(ctx context.Context, collection string) ([]Document, error)
	Get(ctx context.Context, collection, id string) (*Document, error)
	Insert(ctx context.Context, doc *Document) error
	Update(ctx context.Context, doc *Document) error
	Delete(ctx context.Context, collection, id string) error
}
