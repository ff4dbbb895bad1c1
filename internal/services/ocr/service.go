package ocr

import (
	"context"
	"log"
)

type service struct {
	primary  Engine
	fallback Engine
}

// NewService creates the OCR adapter. Either engine may be nil; at
// least one must be usable or every extraction fails.
func NewService(primary, fallback Engine) Service {
	return &service{
		primary:  primary,
		fallback: fallback,
	}
}

// Extract runs recognition, preferring the remote engine. The remote
// call is never retried; any primary failure falls through to the
// local engine and is not propagated if the local engine succeeds.
func (s *service) Extract(ctx context.Context, image []byte, hintType string) (*Result, error) {
	if len(image) == 0 {
		return nil, ErrEmptyImage
	}

	hints := languageHintsFor(hintType)

	if s.primary != nil {
		result, err := s.primary.Recognize(ctx, image, hints)
		if err == nil {
			return result, nil
		}
		if err != ErrNotConfigured {
			log.Printf("Primary OCR failed, falling back: %v", err)
		}
	}

	if s.fallback != nil {
		result, err := s.fallback.Recognize(ctx, image, hints)
		if err == nil {
			return result, nil
		}
		log.Printf("Fallback OCR failed: %v", err)
	}

	return nil, ErrUnavailable
}

// Close releases engines holding resources
func (s *service) Close() error {
	var firstErr error
	for _, engine := range []Engine{s.primary, s.fallback} {
		if closer, ok := engine.(interface{ Close() error }); ok {
			if err := closer.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// languageHintsFor returns detection language hints per document type.
// Aadhaar cards carry a regional script alongside English.
func languageHintsFor(hintType string) []string {
	switch hintType {
	case "aadhaar_card":
		return []string{"en", "hi"}
	default:
		return []string{"en"}
	}
}
