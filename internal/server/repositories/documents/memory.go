package documents

import (
	"context"
	"slices"
	"sync"

	"github.com/Zhanerrke588595/it-events/internal/common"
)

// MemoryRepository keeps documents in process memory. Contents are lost on
// restart.
type MemoryRepository struct {
	mu    sync.RWMutex
	docs  map[string]map[string]Document
	order map[string][]string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		docs:  make(map[string]map[string]Document),
		order: make(map[string][]string),
	}
}

func (r *MemoryRepository) List(_ context.Context, collection string) ([]Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Document, 0, len(r.order[collection]))
	for _, id := range r.order[collection] {
		result = append(result, copyDoc(r.docs[collection][id]))
	}
	return result, nil
}

func (r *MemoryRepository) Get(_ context.Context, collection, id string) (*Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.docs[collection][id]
	if !ok {
		return nil, common.ErrNotFound
	}
	d = copyDoc(d)
	return &d, nil
}

func (r *MemoryRepository) Insert(_ context.Context, doc *Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.docs[doc.Collection]
	if !ok {
		c = make(map[string]Document)
		r.docs[doc.Collection] = c
	}
	if _, exists := c[doc.ID]; !exists {
		r.order[doc.Collection] = append(r.order[doc.Collection], doc.ID)
	}
	c[doc.ID] = copyDoc(*doc)
	return nil
}

func (r *MemoryRepository) Update(_ context.Context, doc *Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.docs[doc.Collection][doc.ID]; !ok {
		return common.ErrNotFound
	}
	r.docs[doc.Collection][doc.ID] = copyDoc(*doc)
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, collection, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.docs[collection][id]; !ok {
		return common.ErrNotFound
	}
	delete(r.docs[collection], id)
	r.order[collection] = slices.DeleteFunc(r.order[collection], func(s string) bool { return s == id })
	return nil
}

func copyDoc(d Document) Document {
	d.Body = slices.Clone(d.Body)
	return d
}
