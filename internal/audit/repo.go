package audit

import "context"

// Repo defines persistence for audit entries. Append and read only.
type Repo interface {
	Append(ctx context.Context, entry Entry) error
	List(ctx context.Context, documentID string) ([]Entry, error)
}
