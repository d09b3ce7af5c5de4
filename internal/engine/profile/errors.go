package profile

import "errors"

var (
	// ErrSectionAbsent means a section anchor was not found. Extractors recover it as an empty list.
	ErrSectionAbsent = errors.New("section not present")

	// ErrItemExtraction wraps every item-level failure embedded as a Fault.
	ErrItemExtraction = errors.New("item extraction failed")

	// ErrDocumentUnavailable means the root document could not be read at all.
	ErrDocumentUnavailable = errors.New("document unavailable")
)
