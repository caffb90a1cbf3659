package documents

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreateBindsReviewFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()
	doc := Document{
		ID:             "doc-1",
		FileName:       "invoice.pdf",
		FileType:       "application/pdf",
		FileSize:       2048,
		DocumentTypeID: "invoice",
		Status:         StatusCompleted,
		ReviewStatus:   ReviewPending,
		ExtractedData:  map[string]any{"vendor": "Acme Corp"},
		OCRText:        "Extracted text from invoice.pdf...",
		Confidence:     0.91,
		UploadedBy:     "user1",
		UploadedAt:     now,
		ProcessedAt:    &now,
	}

	mock.ExpectExec("INSERT INTO documents").
		WithArgs(
			doc.ID,
			doc.FileName,
			doc.FileType,
			doc.FileSize,
			doc.DocumentTypeID,
			doc.Status,
			doc.ReviewStatus,
			sqlmock.AnyArg(), // extracted_data
			sqlmock.AnyArg(), // corrections
			doc.OCRText,
			doc.Confidence,
			sqlmock.AnyArg(), // processing_errors
			doc.UploadedBy,
			doc.UploadedAt,
			doc.ProcessedAt,
			nil, // reviewed_at
			nil, // reviewed_by
			nil, // approved_by
			"",
			nil, // rejection_reason
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), doc); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDMapsMissingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectQuery("SELECT (.+) FROM documents WHERE id").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	if _, err := repo.GetByID(context.Background(), "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpdateRequiresExistingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectExec("UPDATE documents SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	doc := Document{ID: "gone", UploadedAt: time.Now().UTC()}
	if err := repo.Update(context.Background(), doc); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoDeleteMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectExec("DELETE FROM documents").
		WithArgs("gone").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), "gone"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListFiltersAndPaginates(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM documents WHERE review_status`).
		WithArgs(ReviewPending).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	cols := []string{
		"id", "file_name", "file_type", "file_size", "document_type_id",
		"status", "review_status", "extracted_data", "corrections", "ocr_text",
		"confidence", "processing_errors", "uploaded_by", "uploaded_at",
		"processed_at", "reviewed_at", "reviewed_by", "approved_by",
		"comments", "rejection_reason",
	}
	mock.ExpectQuery("SELECT (.+) FROM documents WHERE review_status (.+) ORDER BY seq LIMIT").
		WithArgs(ReviewPending, 2, 1).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("doc-2", "b.pdf", "", int64(0), "invoice",
				StatusCompleted, ReviewPending, []byte(`{"vendor":"Acme Corp"}`), []byte(`{}`), "text",
				0.8, []byte(`[]`), "user1", now,
				nil, nil, nil, nil,
				"", nil).
			AddRow("doc-3", "c.pdf", "", int64(0), "invoice",
				StatusCompleted, ReviewPending, []byte(`{}`), []byte(`{}`), "",
				0.9, []byte(`[]`), "user1", now,
				nil, nil, nil, nil,
				"", nil))

	docs, total, err := repo.List(context.Background(), Filter{ReviewStatus: ReviewPending}, 2, 1)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 3 {
		t.Fatalf("expected total 3, got %d", total)
	}
	if len(docs) != 2 || docs[0].ID != "doc-2" || docs[1].ID != "doc-3" {
		t.Fatalf("unexpected docs: %+v", docs)
	}
	if docs[0].ExtractedData["vendor"] != "Acme Corp" {
		t.Fatalf("expected extracted data to round-trip, got %+v", docs[0].ExtractedData)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
