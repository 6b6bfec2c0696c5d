// Package resources implements the collection semantics of the events
// backend: users, events and bookings stored as JSON documents with
// server-assigned ids.
package resources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/Zhanerrke588595/it-events/internal/common"
	"github.com/Zhanerrke588595/it-events/internal/logging"
	"github.com/Zhanerrke588595/it-events/internal/server/cache"
	"github.com/Zhanerrke588595/it-events/internal/server/repositories/documents"
	"github.com/google/uuid"
)

// Collections served by the backend. Any other name is ErrNotFound.
var Collections = []string{"users", "events", "bookings"}

// Cache is the read cache consulted by Get. Errors behave as misses.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type Service interface {
	List(ctx context.Context, collection string, filters map[string]string) ([]json.RawMessage, error)
	Get(ctx context.Context, collection, id string) (json.RawMessage, error)
	Create(ctx context.Context, collection string, body json.RawMessage) (json.RawMessage, error)
	Replace(ctx context.Context, collection, id string, body json.RawMessage) (json.RawMessage, error)
	Patch(ctx context.Context, collection, id string, patch json.RawMessage) (json.RawMessage, error)
	Delete(ctx context.Context, collection, id string) error
}

type service struct {
	repo  documents.Repository
	cache Cache
	ttl   time.Duration
	log   logging.Logger
	newID func() string
}

// NewService builds the collection service. c may be nil.
func NewService(repo documents.Repository, c Cache, ttl time.Duration, log logging.Logger) Service {
	if c == nil {
		c = (*cache.Client)(nil)
	}
	return &service{repo: repo, cache: c, ttl: ttl, log: log, newID: uuid.NewString}
}

func checkCollection(collection string) error {
	if !slices.Contains(Collections, collection) {
		return fmt.Errorf("collection %q: %w", collection, common.ErrNotFound)
	}
	return nil
}

func (s *service) List(ctx context.Context, collection string, filters map[string]string) ([]json.RawMessage, error) {
	if err := checkCollection(collection); err != nil {
		return nil, err
	}

	docs, err := s.repo.List(ctx, collection)
	if err != nil {
		return nil, err
	}

	result := make([]json.RawMessage, 0, len(docs))
	for _, d := range docs {
		if len(filters) > 0 {
			obj, err := decodeObject(d.Body)
			if err != nil {
				s.log.Warn(ctx, "skipping undecodable document", "collection", collection, "id", d.ID, "error", err)
				continue
			}
			if !matches(obj, filters) {
				continue
			}
		}
		result = append(result, d.Body)
	}
	return result, nil
}

func (s *service) Get(ctx context.Context, collection, id string) (json.RawMessage, error) {
	if err := checkCollection(collection); err != nil {
		return nil, err
	}

	key := cache.DocumentKey(collection, id)
	if cached, _ := s.cache.Get(ctx, key); cached != nil {
		return cached, nil
	}

	d, err := s.repo.Get(ctx, collection, id)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(ctx, key, d.Body, s.ttl)
	return d.Body, nil
}

func (s *service) Create(ctx context.Context, collection string, body json.RawMessage) (json.RawMessage, error) {
	if err := checkCollection(collection); err != nil {
		return nil, err
	}

	obj, err := decodeObject(body)
	if err != nil {
		return nil, err
	}

	id := s.newID()
	obj["id"], _ = json.Marshal(id)

	return s.store(ctx, collection, id, obj, s.repo.Insert)
}

func (s *service) Replace(ctx context.Context, collection, id string, body json.RawMessage) (json.RawMessage, error) {
	if err := checkCollection(collection); err != nil {
		return nil, err
	}

	obj, err := decodeObject(body)
	if err != nil {
		return nil, err
	}
	obj["id"], _ = json.Marshal(id)

	defer s.invalidate(ctx, collection, id)
	return s.store(ctx, collection, id, obj, s.repo.Update)
}

func (s *service) Patch(ctx context.Context, collection, id string, patch json.RawMessage) (json.RawMessage, error) {
	if err := checkCollection(collection); err != nil {
		return nil, err
	}

	changes, err := decodeObject(patch)
	if err != nil {
		return nil, err
	}

	current, err := s.repo.Get(ctx, collection, id)
	if err != nil {
		return nil, err
	}
	obj, err := decodeObject(current.Body)
	if err != nil {
		return nil, fmt.Errorf("stored %s/%s: %w", collection, id, err)
	}

	for k, v := range changes {
		obj[k] = v
	}
	obj["id"], _ = json.Marshal(id)

	defer s.invalidate(ctx, collection, id)
	return s.store(ctx, collection, id, obj, s.repo.Update)
}

func (s *service) Delete(ctx context.Context, collection, id string) error {
	if err := checkCollection(collection); err != nil {
		return err
	}

	defer s.invalidate(ctx, collection, id)
	return s.repo.Delete(ctx, collection, id)
}

func (s *service) store(ctx context.Context, collection, id string, obj map[string]json.RawMessage,
	write func(context.Context, *documents.Document) error) (json.RawMessage, error) {

	body, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("encode %s/%s: %w", collection, id, err)
	}
	if err := write(ctx, &documents.Document{Collection: collection, ID: id, Body: body}); err != nil {
		return nil, err
	}
	return body, nil
}

func (s *service) invalidate(ctx context.Context, collection, id string) {
	_ = s.cache.Delete(ctx, cache.DocumentKey(collection, id))
}

// decodeObject parses body as a JSON object with raw field values.
func decodeObject(body []byte) (map[string]json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil || obj == nil {
		return nil, common.NewValidationError("Body must be a JSON object")
	}
	return obj, nil
}

// matches reports whether every filter equals the document field of the
// same name. Strings compare by value, other JSON values by their literal.
func matches(obj map[string]json.RawMessage, filters map[string]string) bool {
	for k, want := range filters {
		raw, ok := obj[k]
		if !ok {
			return false
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			if s != want {
				return false
			}
			continue
		}
		if string(raw) != want {
			return false
		}
	}
	return true
}

// IsClientError reports whether err was caused by the request rather than
// the backend.
func IsClientError(err error) bool {
	return errors.Is(err, common.ErrValidation) || errors.Is(err, common.ErrNotFound)
}
