package doctypes

import "time"

// TemplateField describes one field a document of this type should yield
// during extraction.
type TemplateField struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
}

// DocumentType is reference data describing a category of document and the
// shape of its extracted fields.
type DocumentType struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Category         string          `json:"category"`
	Description      string          `json:"description"`
	ExtractionFields []TemplateField `json:"extractionFields"`
	CreatedAt        time.Time       `json:"createdAt,omitempty"`
}
