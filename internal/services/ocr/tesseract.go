package ocr

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"
)

// TesseractEngine runs the local fallback recognizer. A single
// gosseract client is initialized on first use and shared across
// calls; the client is not safe for concurrent use, so recognition is
// serialized.
type TesseractEngine struct {
	mu     sync.Mutex
	client *gosseract.Client
	closed bool
}

// NewTesseractEngine creates the local fallback engine
func NewTesseractEngine() *TesseractEngine {
	return &TesseractEngine{}
}

func (t *TesseractEngine) Name() string { return EngineTesseract }

func (t *TesseractEngine) Recognize(ctx context.Context, image []byte, languageHints []string) (*Result, error) {
	if len(image) == 0 {
		return nil, ErrEmptyImage
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil, ErrNotConfigured
	}
	if t.client == nil {
		t.client = gosseract.NewClient()
	}

	if langs := tesseractLanguages(languageHints); len(langs) > 0 {
		if err := t.client.SetLanguage(langs...); err != nil {
			return nil, fmt.Errorf("failed to set languages: %w", err)
		}
	}

	if err := t.client.SetImageFromBytes(image); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := t.client.Text()
	if err != nil {
		return nil, fmt.Errorf("tesseract recognition failed: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("tesseract detected no text")
	}

	return &Result{
		Text:       text,
		Confidence: estimateConfidence(text),
		Engine:     EngineTesseract,
	}, nil
}

// Close releases the shared Tesseract client
func (t *TesseractEngine) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.closed = true
	if t.client == nil {
		return nil
	}
	err := t.client.Close()
	t.client = nil
	return err
}

// tesseractLanguages maps BCP-47 hints to Tesseract language codes
func tesseractLanguages(hints []string) []string {
	var langs []string
	for _, h := range hints {
		switch h {
		case "en":
			langs = append(langs, "eng")
		case "hi":
			langs = append(langs, "hin")
		default:
			langs = append(langs, h)
		}
	}
	return langs
}

// estimateConfidence scores text quality on a 0-100 scale. Tesseract
// does not report an aggregate confidence, so this uses length, word
// count and character distribution as a proxy, capped at 85.
func estimateConfidence(text string) float64 {
	confidence := 50.0

	if len(text) > 1000 {
		confidence += 10
	}
	if len(text) > 5000 {
		confidence += 10
	}

	words := strings.Fields(text)
	if len(words) > 100 {
		confidence += 10
	}

	alphaCount := 0
	for _, r := range text {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			alphaCount++
		}
	}
	if len(text) > 0 {
		alphaRatio := float64(alphaCount) / float64(len(text))
		if alphaRatio > 0.5 && alphaRatio < 0.9 {
			confidence += 10
		}
	}

	if confidence > 85 {
		confidence = 85
	}
	return confidence
}
