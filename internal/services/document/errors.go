package document

import "errors"

// Service errors
var (
	ErrUnsupportedType = errors.New("no field table for document type")
)
