package documents

import "errors"

var (
	ErrNotFound     = errors.New("document not found")
	ErrUnknownType  = errors.New("unknown document type")
	ErrInvalidInput = errors.New("invalid input")
)

// TransitionError reports a review-state transition attempted on a document
// that already left the pending state.
type TransitionError struct {
	Current string
}

func (e *TransitionError) Error() string {
	return "review already " + e.Current
}
