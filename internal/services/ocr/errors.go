package ocr

import "errors"

// Service errors
var (
	ErrUnavailable   = errors.New("no OCR engine could read the document")
	ErrNotConfigured = errors.New("engine is not configured")
	ErrEmptyImage    = errors.New("image data is empty")
)
