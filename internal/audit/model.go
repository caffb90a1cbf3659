package audit

import "time"

// Action names every mutating engine operation that leaves a trail.
const (
	ActionUpload        = "UPLOAD"
	ActionEdit          = "EDIT"
	ActionApprove       = "APPROVE"
	ActionReject        = "REJECT"
	ActionCreateDoctype = "CREATE_DOCTYPE"
	ActionDelete        = "DELETE"
	ActionReprocess     = "REPROCESS"
)

// Entry is one append-only audit record. Entries are never mutated or
// deleted, even when the document they reference is.
type Entry struct {
	ID         string         `json:"id"`
	UserID     string         `json:"userId"`
	Action     string         `json:"action"`
	DocumentID string         `json:"documentId"`
	Changes    map[string]any `json:"changes"`
	Timestamp  time.Time      `json:"timestamp"`
}
