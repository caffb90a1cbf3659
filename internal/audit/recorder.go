package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sriniyarram/AI-PoweredDocumentProcess/internal/shared/telemetry"
)

// Recorder is the write-side seam services use to leave an audit trail.
type Recorder interface {
	Record(ctx context.Context, userID, action, documentID string, changes map[string]any)
}

// Service records and serves audit entries.
type Service struct {
	Repo Repo
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Record appends an entry. Audit failures are logged, not surfaced; a lost
// trail entry must not fail the mutation it describes.
func (s *Service) Record(ctx context.Context, userID, action, documentID string, changes map[string]any) {
	entry := Entry{
		ID:         uuid.NewString(),
		UserID:     userID,
		Action:     action,
		DocumentID: documentID,
		Changes:    changes,
		Timestamp:  time.Now().UTC(),
	}
	if err := s.Repo.Append(ctx, entry); err != nil {
		telemetry.Error("audit.append_failed", map[string]any{
			"action":      action,
			"document_id": documentID,
			"error":       err.Error(),
		})
	}
}

// List returns entries, optionally filtered by document id.
func (s *Service) List(ctx context.Context, documentID string) ([]Entry, error) {
	return s.Repo.List(ctx, documentID)
}
