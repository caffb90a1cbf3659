package doctypes

import "context"

// Repo defines persistence for the document type registry.
type Repo interface {
	Create(ctx context.Context, dt DocumentType) error
	GetByID(ctx context.Context, id string) (DocumentType, error)
	List(ctx context.Context) ([]DocumentType, error)
}
