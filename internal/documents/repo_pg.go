package documents

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const documentColumns = `id, file_name, file_type, file_size, document_type_id, status, review_status,
extracted_data, corrections, ocr_text, confidence, processing_errors,
uploaded_by, uploaded_at, processed_at, reviewed_at, reviewed_by, approved_by, comments, rejection_reason`

// Create inserts a new document.
func (r *PGRepo) Create(ctx context.Context, doc Document) error {
	const query = `
INSERT INTO documents (` + documentColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`

	extracted, corrections, procErrs, err := marshalJSONFields(doc)
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(ctx, query,
		doc.ID,
		doc.FileName,
		doc.FileType,
		doc.FileSize,
		doc.DocumentTypeID,
		doc.Status,
		doc.ReviewStatus,
		extracted,
		corrections,
		doc.OCRText,
		doc.Confidence,
		procErrs,
		doc.UploadedBy,
		doc.UploadedAt,
		doc.ProcessedAt,
		doc.ReviewedAt,
		nullable(doc.ReviewedBy),
		nullable(doc.ApprovedBy),
		doc.Comments,
		nullable(doc.RejectionReason),
	)
	return err
}

// GetByID fetches a document by id.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Document, error) {
	const query = `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	doc, err := scanDocument(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return doc, nil
}

// Update replaces the stored record by id.
func (r *PGRepo) Update(ctx context.Context, doc Document) error {
	const query = `
UPDATE documents SET
    file_name = $2, file_type = $3, file_size = $4, document_type_id = $5,
    status = $6, review_status = $7, extracted_data = $8, corrections = $9,
    ocr_text = $10, confidence = $11, processing_errors = $12,
    uploaded_by = $13, uploaded_at = $14, processed_at = $15,
    reviewed_at = $16, reviewed_by = $17, approved_by = $18,
    comments = $19, rejection_reason = $20
WHERE id = $1`

	extracted, corrections, procErrs, err := marshalJSONFields(doc)
	if err != nil {
		return err
	}

	res, err := r.DB.ExecContext(ctx, query,
		doc.ID,
		doc.FileName,
		doc.FileType,
		doc.FileSize,
		doc.DocumentTypeID,
		doc.Status,
		doc.ReviewStatus,
		extracted,
		corrections,
		doc.OCRText,
		doc.Confidence,
		procErrs,
		doc.UploadedBy,
		doc.UploadedAt,
		doc.ProcessedAt,
		doc.ReviewedAt,
		nullable(doc.ReviewedBy),
		nullable(doc.ApprovedBy),
		doc.Comments,
		nullable(doc.RejectionReason),
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the record permanently.
func (r *PGRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns one page of the filtered set in insertion order plus the
// filtered total.
func (r *PGRepo) List(ctx context.Context, f Filter, limit, offset int) ([]Document, int, error) {
	where, args := buildWhere(f)

	var total int
	countQuery := `SELECT COUNT(*) FROM documents` + where
	if err := r.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + documentColumns + ` FROM documents` + where + ` ORDER BY seq`
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}
	if offset > 0 {
		args = append(args, offset)
		query += fmt.Sprintf(` OFFSET $%d`, len(args))
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, doc)
	}
	return out, total, rows.Err()
}

func buildWhere(f Filter) (string, []any) {
	var clauses []string
	var args []any
	add := func(clause string, value any) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}

	if f.Status != "" {
		add("status = $%d", f.Status)
	}
	if f.ReviewStatus != "" {
		add("review_status = $%d", f.ReviewStatus)
	}
	if f.DocumentTypeID != "" {
		add("document_type_id = $%d", f.DocumentTypeID)
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		clauses = append(clauses, fmt.Sprintf(
			"(file_name ILIKE $%d OR ocr_text ILIKE $%d OR extracted_data::text ILIKE $%d)", n, n, n))
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (Document, error) {
	var doc Document
	var extracted, corrections, procErrs []byte
	var reviewedBy, approvedBy, rejectionReason sql.NullString
	var processedAt, reviewedAt sql.NullTime

	err := row.Scan(
		&doc.ID,
		&doc.FileName,
		&doc.FileType,
		&doc.FileSize,
		&doc.DocumentTypeID,
		&doc.Status,
		&doc.ReviewStatus,
		&extracted,
		&corrections,
		&doc.OCRText,
		&doc.Confidence,
		&procErrs,
		&doc.UploadedBy,
		&doc.UploadedAt,
		&processedAt,
		&reviewedAt,
		&reviewedBy,
		&approvedBy,
		&doc.Comments,
		&rejectionReason,
	)
	if err != nil {
		return Document{}, err
	}

	if err := json.Unmarshal(extracted, &doc.ExtractedData); err != nil {
		return Document{}, err
	}
	if err := json.Unmarshal(corrections, &doc.Corrections); err != nil {
		return Document{}, err
	}
	if err := json.Unmarshal(procErrs, &doc.ProcessingErrors); err != nil {
		return Document{}, err
	}
	if processedAt.Valid {
		doc.ProcessedAt = &processedAt.Time
	}
	if reviewedAt.Valid {
		doc.ReviewedAt = &reviewedAt.Time
	}
	if reviewedBy.Valid {
		doc.ReviewedBy = reviewedBy.String
	}
	if approvedBy.Valid {
		doc.ApprovedBy = approvedBy.String
	}
	if rejectionReason.Valid {
		doc.RejectionReason = rejectionReason.String
	}
	return doc, nil
}

func marshalJSONFields(doc Document) (extracted, corrections, procErrs []byte, err error) {
	if doc.ExtractedData == nil {
		doc.ExtractedData = map[string]any{}
	}
	if doc.Corrections == nil {
		doc.Corrections = map[string]any{}
	}
	if doc.ProcessingErrors == nil {
		doc.ProcessingErrors = []string{}
	}
	if extracted, err = json.Marshal(doc.ExtractedData); err != nil {
		return nil, nil, nil, err
	}
	if corrections, err = json.Marshal(doc.Corrections); err != nil {
		return nil, nil, nil, err
	}
	if procErrs, err = json.Marshal(doc.ProcessingErrors); err != nil {
		return nil, nil, nil, err
	}
	return extracted, corrections, procErrs, nil
}

func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
