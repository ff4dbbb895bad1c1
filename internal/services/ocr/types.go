package ocr

import (
	"context"
	"time"
)

// Engine names recorded on extraction results
const (
	EngineVision    = "vision"
	EngineTesseract = "tesseract"
)

// Default remote call settings
const (
	DefaultEndpoint = "https://vision.googleapis.com/v1/images:annotate"
	DefaultTimeout  = 20 * time.Second

	// Confidence assumed when the detector reports no per-token scores
	DefaultConfidence = 75.0
)

// Result is the normalized output of a recognition pass.
type Result struct {
	Text       string
	Confidence float64 // 0-100
	Engine     string
}

// Engine reads text from a document image.
type Engine interface {
	Recognize(ctx context.Context, image []byte, languageHints []string) (*Result, error)
	Name() string
}

// Service defines the OCR adapter interface
type Service interface {
	Extract(ctx context.Context, image []byte, hintType string) (*Result, error)
	Close() error
}
