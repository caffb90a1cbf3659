package doctypes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new document type.
func (r *PGRepo) Create(ctx context.Context, dt DocumentType) error {
	const query = `
INSERT INTO document_types (id, name, category, description, extraction_fields, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	fields, err := json.Marshal(dt.ExtractionFields)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		dt.ID,
		dt.Name,
		dt.Category,
		dt.Description,
		fields,
		dt.CreatedAt,
	)
	return err
}

// GetByID fetches a document type by id.
func (r *PGRepo) GetByID(ctx context.Context, id string) (DocumentType, error) {
	const query = `
SELECT id, name, category, description, extraction_fields, created_at
FROM document_types
WHERE id = $1`

	var dt DocumentType
	var fields []byte
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&dt.ID,
		&dt.Name,
		&dt.Category,
		&dt.Description,
		&fields,
		&dt.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return DocumentType{}, ErrNotFound
		}
		return DocumentType{}, err
	}
	if err := json.Unmarshal(fields, &dt.ExtractionFields); err != nil {
		return DocumentType{}, err
	}
	return dt, nil
}

// List returns all document types ordered by creation.
func (r *PGRepo) List(ctx context.Context) ([]DocumentType, error) {
	const query = `
SELECT id, name, category, description, extraction_fields, created_at
FROM document_types
ORDER BY created_at, id`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DocumentType
	for rows.Next() {
		var dt DocumentType
		var fields []byte
		if err := rows.Scan(&dt.ID, &dt.Name, &dt.Category, &dt.Description, &fields, &dt.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(fields, &dt.ExtractionFields); err != nil {
			return nil, err
		}
		out = append(out, dt)
	}
	return out, rows.Err()
}
