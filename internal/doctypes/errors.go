package doctypes

import "errors"

var (
	ErrNotFound     = errors.New("document type not found")
	ErrInvalidInput = errors.New("invalid document type definition")
)
