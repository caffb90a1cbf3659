package documents

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo. Insertion order is
// preserved so listings are stable across calls.
type MemoryRepo struct {
	mu    sync.RWMutex
	docs  map[string]Document
	order []string
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{docs: make(map[string]Document)}
}

// Create stores a new document.
func (r *MemoryRepo) Create(ctx context.Context, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.docs[doc.ID]; !exists {
		r.order = append(r.order, doc.ID)
	}
	r.docs[doc.ID] = cloneDocument(doc)
	return nil
}

// GetByID returns a document by id.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.docs[id]
	if !ok {
		return Document{}, ErrNotFound
	}
	return cloneDocument(doc), nil
}

// Update replaces the stored record. The whole record swaps at once, so a
// concurrent reader never observes a half-written document.
func (r *MemoryRepo) Update(ctx context.Context, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[doc.ID]; !ok {
		return ErrNotFound
	}
	r.docs[doc.ID] = cloneDocument(doc)
	return nil
}

// Delete removes the record permanently. No tombstone.
func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[id]; !ok {
		return ErrNotFound
	}
	delete(r.docs, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// List returns the window [offset, offset+limit) of the filtered set in
// insertion order, plus the filtered total. limit <= 0 means no limit.
func (r *MemoryRepo) List(ctx context.Context, f Filter, limit, offset int) ([]Document, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	if offset < 0 {
		offset = 0
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]Document, 0, len(r.order))
	for _, id := range r.order {
		if doc := r.docs[id]; matches(doc, f) {
			matched = append(matched, cloneDocument(doc))
		}
	}

	total := len(matched)
	if offset >= total {
		return []Document{}, total, nil
	}
	end := total
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return matched[offset:end], total, nil
}

func matches(doc Document, f Filter) bool {
	if f.Status != "" && doc.Status != f.Status {
		return false
	}
	if f.ReviewStatus != "" && doc.ReviewStatus != f.ReviewStatus {
		return false
	}
	if f.DocumentTypeID != "" && doc.DocumentTypeID != f.DocumentTypeID {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(doc.FileName), q) &&
			!strings.Contains(strings.ToLower(doc.OCRText), q) &&
			!strings.Contains(strings.ToLower(serialize(doc.ExtractedData)), q) {
			return false
		}
	}
	return true
}

// cloneDocument copies the record's reference-typed fields so stored state
// is never aliased by callers. Without this a caller mutating the returned
// maps would write through to the store, racing concurrent readers.
func cloneDocument(doc Document) Document {
	doc.ExtractedData = cloneFields(doc.ExtractedData)
	doc.Corrections = cloneFields(doc.Corrections)
	if doc.ProcessingErrors != nil {
		doc.ProcessingErrors = append([]string(nil), doc.ProcessingErrors...)
	}
	return doc
}

func cloneFields(fields map[string]any) map[string]any {
	if fields == nil {
		return nil
	}
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}

func serialize(fields map[string]any) string {
	if len(fields) == 0 {
		return ""
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return ""
	}
	return string(raw)
}
