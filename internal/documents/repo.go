package documents

import "context"

// Repo defines persistence operations for documents. List returns one page
// in insertion order plus the total size of the filtered set.
type Repo interface {
	Create(ctx context.Context, doc Document) error
	GetByID(ctx context.Context, id string) (Document, error)
	Update(ctx context.Context, doc Document) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f Filter, limit, offset int) ([]Document, int, error)
}
