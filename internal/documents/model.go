package documents

import "time"

// Processing status values. A document lands in StatusCompleted when the
// fabricated extraction succeeds and moves to StatusNeedsReview on reject.
const (
	StatusUploaded    = "uploaded"
	StatusProcessing  = "processing"
	StatusCompleted   = "completed"
	StatusFailed      = "failed"
	StatusNeedsReview = "needs-review"
)

// Review status values. ReviewPending transitions to exactly one of
// approved or rejected, never back.
const (
	ReviewPending  = "pending"
	ReviewApproved = "approved"
	ReviewRejected = "rejected"
)

// Document is the central mutable entity: one uploaded file, its simulated
// extraction output and its review state.
type Document struct {
	ID             string `json:"id"`
	FileName       string `json:"fileName"`
	FileType       string `json:"fileType,omitempty"`
	FileSize       int64  `json:"fileSize,omitempty"`
	DocumentTypeID string `json:"documentTypeId"`

	Status       string `json:"status"`
	ReviewStatus string `json:"reviewStatus"`

	ExtractedData    map[string]any `json:"extractedData"`
	Corrections      map[string]any `json:"corrections"`
	OCRText          string         `json:"ocrText"`
	Confidence       float64        `json:"confidence"`
	ProcessingErrors []string       `json:"processingErrors"`

	UploadedBy      string     `json:"uploadedBy"`
	UploadedAt      time.Time  `json:"uploadedAt"`
	ProcessedAt     *time.Time `json:"processedAt,omitempty"`
	ReviewedAt      *time.Time `json:"reviewedAt,omitempty"`
	ReviewedBy      string     `json:"reviewedBy,omitempty"`
	ApprovedBy      string     `json:"approvedBy,omitempty"`
	Comments        string     `json:"comments,omitempty"`
	RejectionReason string     `json:"rejectionReason,omitempty"`
}

// Filter narrows a document listing. Zero values match everything.
type Filter struct {
	Status         string
	ReviewStatus   string
	DocumentTypeID string
	// Search is a case-insensitive substring matched against the file name,
	// the OCR text and the serialized extracted data.
	Search string
}

// Page is one page of a filtered listing. Total counts the whole filtered
// set, not the page.
type Page struct {
	Items    []Document `json:"items"`
	Total    int        `json:"total"`
	Page     int        `json:"page"`
	PageSize int        `json:"pageSize"`
}
