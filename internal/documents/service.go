package documents

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sriniyarram/AI-PoweredDocumentProcess/internal/audit"
	"github.com/sriniyarram/AI-PoweredDocumentProcess/internal/doctypes"
	"github.com/sriniyarram/AI-PoweredDocumentProcess/internal/extraction"
	"github.com/sriniyarram/AI-PoweredDocumentProcess/internal/shared/metrics"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Service contains the document review lifecycle. Mutations to the same
// document id are serialized through a per-id mutex so two racing requests
// cannot interleave a read-modify-write. Writes are last-write-wins beyond
// that; there is no optimistic-concurrency token.
type Service struct {
	Repo      Repo
	Types     doctypes.Repo
	Extractor extraction.Extractor
	Audit     audit.Recorder

	locks keyedMutex
}

// NewService constructs a Service.
func NewService(repo Repo, types doctypes.Repo, ex extraction.Extractor, rec audit.Recorder) *Service {
	return &Service{Repo: repo, Types: types, Extractor: ex, Audit: rec}
}

// Upload registers a new document and runs the extraction stand-in over it.
// The file's content is never read; only its name and declared size travel
// through the system.
func (s *Service) Upload(ctx context.Context, actorID, fileName, fileType string, fileSize int64, documentTypeID string) (Document, error) {
	fileName = strings.TrimSpace(fileName)
	if fileName == "" {
		return Document{}, ErrInvalidInput
	}

	docType, err := s.Types.GetByID(ctx, documentTypeID)
	if err != nil {
		if errors.Is(err, doctypes.ErrNotFound) {
			return Document{}, ErrUnknownType
		}
		return Document{}, err
	}

	result, err := s.Extractor.Extract(ctx, docType, fileName)
	if err != nil {
		return Document{}, err
	}

	now := time.Now().UTC()
	doc := Document{
		ID:               uuid.NewString(),
		FileName:         fileName,
		FileType:         fileType,
		FileSize:         fileSize,
		DocumentTypeID:   docType.ID,
		Status:           StatusCompleted,
		ReviewStatus:     ReviewPending,
		ExtractedData:    result.Fields,
		Corrections:      map[string]any{},
		OCRText:          result.OCRText,
		Confidence:       result.Confidence,
		ProcessingErrors: []string{},
		UploadedBy:       actorID,
		UploadedAt:       now,
		ProcessedAt:      &now,
	}

	if err := s.Repo.Create(ctx, doc); err != nil {
		return Document{}, err
	}

	s.Audit.Record(ctx, actorID, audit.ActionUpload, doc.ID, map[string]any{
		"fileName":       doc.FileName,
		"documentTypeId": doc.DocumentTypeID,
	})
	metrics.IncDocumentUploaded()
	metrics.ObserveExtractionConfidence(doc.Confidence)
	return doc, nil
}

// Get returns one document by id.
func (s *Service) Get(ctx context.Context, id string) (Document, error) {
	return s.Repo.GetByID(ctx, id)
}

// List returns one page of the filtered set. Pages are 1-indexed.
func (s *Service) List(ctx context.Context, f Filter, page, pageSize int) (Page, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	items, total, err := s.Repo.List(ctx, f, pageSize, (page-1)*pageSize)
	if err != nil {
		return Page{}, err
	}
	return Page{Items: items, Total: total, Page: page, PageSize: pageSize}, nil
}

// Search returns every document matching the query as a single page.
func (s *Service) Search(ctx context.Context, query string) (Page, error) {
	items, total, err := s.Repo.List(ctx, Filter{Search: query}, 0, 0)
	if err != nil {
		return Page{}, err
	}
	pageSize := total
	if pageSize < defaultPageSize {
		pageSize = defaultPageSize
	}
	return Page{Items: items, Total: total, Page: 1, PageSize: pageSize}, nil
}

// Update merges caller-supplied fields into the stored record. Values under
// "extractedData" (and any unrecognized top-level key) are treated as field
// corrections and shallow-merged into the extracted data; recognized
// top-level fields are replaced. The id is immutable.
func (s *Service) Update(ctx context.Context, actorID, id string, updates map[string]any) (Document, error) {
	if len(updates) == 0 {
		return Document{}, ErrInvalidInput
	}

	unlock := s.locks.lock(id)
	defer unlock()

	doc, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Document{}, err
	}

	applied := make(map[string]any, len(updates))
	corrections := map[string]any{}
	for key, value := range updates {
		switch key {
		case "id":
			// immutable
			continue
		case "fileName":
			if v, ok := value.(string); ok && v != "" {
				doc.FileName = v
				applied[key] = v
			}
		case "fileType":
			if v, ok := value.(string); ok {
				doc.FileType = v
				applied[key] = v
			}
		case "status":
			if v, ok := value.(string); ok && v != "" {
				doc.Status = v
				applied[key] = v
			}
		case "comments":
			if v, ok := value.(string); ok {
				doc.Comments = v
				applied[key] = v
			}
		case "extractedData":
			if nested, ok := value.(map[string]any); ok {
				for fk, fv := range nested {
					corrections[fk] = fv
				}
			}
		default:
			corrections[key] = value
		}
	}

	if len(corrections) > 0 {
		if doc.ExtractedData == nil {
			doc.ExtractedData = map[string]any{}
		}
		if doc.Corrections == nil {
			doc.Corrections = map[string]any{}
		}
		for fk, fv := range corrections {
			doc.ExtractedData[fk] = fv
			doc.Corrections[fk] = fv
			applied[fk] = fv
		}
	}

	if err := s.Repo.Update(ctx, doc); err != nil {
		return Document{}, err
	}

	s.Audit.Record(ctx, actorID, audit.ActionEdit, doc.ID, applied)
	return doc, nil
}

// Approve moves a pending document to the approved terminal state.
func (s *Service) Approve(ctx context.Context, actorID, id, comments string) (Document, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	doc, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Document{}, err
	}
	if doc.ReviewStatus != ReviewPending {
		return Document{}, &TransitionError{Current: doc.ReviewStatus}
	}

	now := time.Now().UTC()
	doc.ReviewStatus = ReviewApproved
	doc.Status = StatusCompleted
	doc.ReviewedAt = &now
	doc.ReviewedBy = actorID
	doc.ApprovedBy = actorID
	if comments != "" {
		doc.Comments = comments
	}

	if err := s.Repo.Update(ctx, doc); err != nil {
		return Document{}, err
	}

	s.Audit.Record(ctx, actorID, audit.ActionApprove, doc.ID, map[string]any{"comments": comments})
	metrics.IncDocumentApproved()
	return doc, nil
}

// Reject moves a pending document to the rejected terminal state.
func (s *Service) Reject(ctx context.Context, actorID, id, reason string) (Document, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	doc, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Document{}, err
	}
	if doc.ReviewStatus != ReviewPending {
		return Document{}, &TransitionError{Current: doc.ReviewStatus}
	}

	now := time.Now().UTC()
	doc.ReviewStatus = ReviewRejected
	doc.Status = StatusNeedsReview
	doc.ReviewedAt = &now
	doc.ReviewedBy = actorID
	doc.RejectionReason = reason

	if err := s.Repo.Update(ctx, doc); err != nil {
		return Document{}, err
	}

	s.Audit.Record(ctx, actorID, audit.ActionReject, doc.ID, map[string]any{"reason": reason})
	metrics.IncDocumentRejected()
	return doc, nil
}

// Reprocess re-runs the extraction stand-in, overwriting the extracted data
// and confidence. The review status is untouched.
func (s *Service) Reprocess(ctx context.Context, actorID, id string) (Document, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	doc, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Document{}, err
	}

	docType, err := s.Types.GetByID(ctx, doc.DocumentTypeID)
	if err != nil {
		// The type may have been deleted from the registry since upload;
		// extraction falls back to an empty template.
		docType = doctypes.DocumentType{ID: doc.DocumentTypeID}
	}

	result, err := s.Extractor.Extract(ctx, docType, doc.FileName)
	if err != nil {
		return Document{}, err
	}

	now := time.Now().UTC()
	doc.ExtractedData = result.Fields
	doc.OCRText = result.OCRText
	doc.Confidence = result.Confidence
	doc.Status = StatusCompleted
	doc.ProcessingErrors = []string{}
	doc.ProcessedAt = &now

	if err := s.Repo.Update(ctx, doc); err != nil {
		return Document{}, err
	}

	s.Audit.Record(ctx, actorID, audit.ActionReprocess, doc.ID, map[string]any{"confidence": doc.Confidence})
	metrics.IncDocumentReprocessed()
	metrics.ObserveExtractionConfidence(doc.Confidence)
	return doc, nil
}

// Delete removes the record permanently. Audit entries referencing the id
// remain as history.
func (s *Service) Delete(ctx context.Context, actorID, id string) error {
	unlock := s.locks.lock(id)
	defer unlock()

	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.Audit.Record(ctx, actorID, audit.ActionDelete, id, nil)
	metrics.IncDocumentDeleted()
	return nil
}

// keyedMutex serializes work per document id. Entries are retained for the
// process lifetime, bounded by the number of distinct ids seen.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (k *keyedMutex) lock(id string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*sync.Mutex)
	}
	m, ok := k.locks[id]
	if !ok {
		m = &sync.Mutex{}
		k.locks[id] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
