package extraction

import (
	"context"

	"github.com/sriniyarram/AI-PoweredDocumentProcess/internal/doctypes"
)

// Result is what an extraction backend derives from one document.
type Result struct {
	Fields     map[string]any
	Confidence float64
	OCRText    string
}

// Extractor abstracts the extraction backend. The engine only depends on
// this seam, so a real OCR/classification provider can replace the mock
// without touching the document lifecycle.
type Extractor interface {
	Extract(ctx context.Context, docType doctypes.DocumentType, fileName string) (Result, error)
}
