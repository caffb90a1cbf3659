package doctypes

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sriniyarram/AI-PoweredDocumentProcess/internal/audit"
)

// Service contains business logic for the document type registry.
type Service struct {
	Repo  Repo
	Audit audit.Recorder
}

// NewService constructs a Service.
func NewService(repo Repo, rec audit.Recorder) *Service {
	return &Service{Repo: repo, Audit: rec}
}

// List returns all registered document types.
func (s *Service) List(ctx context.Context) ([]DocumentType, error) {
	return s.Repo.List(ctx)
}

// Get returns one document type by id.
func (s *Service) Get(ctx context.Context, id string) (DocumentType, error) {
	return s.Repo.GetByID(ctx, id)
}

// Create registers a new document type with a generated id.
func (s *Service) Create(ctx context.Context, actorID string, def DocumentType) (DocumentType, error) {
	def.Name = strings.TrimSpace(def.Name)
	if def.Name == "" {
		return DocumentType{}, ErrInvalidInput
	}
	if def.Category == "" {
		def.Category = "General"
	}

	def.ID = uuid.NewString()
	def.CreatedAt = time.Now().UTC()

	if err := s.Repo.Create(ctx, def); err != nil {
		return DocumentType{}, err
	}

	s.Audit.Record(ctx, actorID, audit.ActionCreateDoctype, def.ID, map[string]any{
		"name":     def.Name,
		"category": def.Category,
	})
	return def, nil
}
