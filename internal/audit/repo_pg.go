package audit

import (
	"context"
	"database/sql"
	"encoding/json"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Append inserts an entry.
func (r *PGRepo) Append(ctx context.Context, entry Entry) error {
	const query = `
INSERT INTO audit_logs (id, user_id, action, document_id, changes, ts)
VALUES ($1, $2, $3, $4, $5, $6)`

	changes, err := json.Marshal(entry.Changes)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		entry.ID,
		entry.UserID,
		entry.Action,
		entry.DocumentID,
		changes,
		entry.Timestamp,
	)
	return err
}

// List returns entries in append order, optionally filtered by document id.
func (r *PGRepo) List(ctx context.Context, documentID string) ([]Entry, error) {
	query := `SELECT id, user_id, action, document_id, changes, ts FROM audit_logs ORDER BY seq`
	args := []any{}
	if documentID != "" {
		query = `SELECT id, user_id, action, document_id, changes, ts FROM audit_logs WHERE document_id = $1 ORDER BY seq`
		args = append(args, documentID)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var changes []byte
		if err := rows.Scan(&e.ID, &e.UserID, &e.Action, &e.DocumentID, &changes, &e.Timestamp); err != nil {
			return nil, err
		}
		if len(changes) > 0 {
			if err := json.Unmarshal(changes, &e.Changes); err != nil {
				return nil, err
			}
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
