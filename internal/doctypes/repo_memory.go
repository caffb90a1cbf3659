package doctypes

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu    sync.RWMutex
	types map[string]DocumentType
	order []string
}

// NewMemoryRepo constructs a MemoryRepo pre-loaded with the given types.
func NewMemoryRepo(seed []DocumentType) *MemoryRepo {
	r := &MemoryRepo{types: make(map[string]DocumentType, len(seed))}
	for _, dt := range seed {
		r.types[dt.ID] = dt
		r.order = append(r.order, dt.ID)
	}
	return r
}

// Create appends a new document type to the registry.
func (r *MemoryRepo) Create(ctx context.Context, dt DocumentType) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.types[dt.ID]; !exists {
		r.order = append(r.order, dt.ID)
	}
	r.types[dt.ID] = dt
	return nil
}

// GetByID returns a document type by id.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (DocumentType, error) {
	if err := ctx.Err(); err != nil {
		return DocumentType{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	dt, ok := r.types[id]
	if !ok {
		return DocumentType{}, ErrNotFound
	}
	return dt, nil
}

// List returns all document types in registration order.
func (r *MemoryRepo) List(ctx context.Context) ([]DocumentType, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]DocumentType, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.types[id])
	}
	return out, nil
}
