package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// VisionClient calls the Google Cloud Vision text detection endpoint.
type VisionClient struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

// VisionConfig holds remote detection configuration
type VisionConfig struct {
	APIKey   string
	Endpoint string
	Timeout  time.Duration
}

// NewVisionClient creates a client for the remote detection endpoint
func NewVisionClient(cfg VisionConfig) *VisionClient {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &VisionClient{
		apiKey:   cfg.APIKey,
		endpoint: cfg.Endpoint,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

func (c *VisionClient) Name() string { return EngineVision }

// Configured reports whether a credential is present
func (c *VisionClient) Configured() bool { return c.apiKey != "" }

type annotateRequest struct {
	Requests []annotateItem `json:"requests"`
}

type annotateItem struct {
	Image        imageContent  `json:"image"`
	Features     []feature     `json:"features"`
	ImageContext *imageContext `json:"imageContext,omitempty"`
}

type imageContent struct {
	Content string `json:"content"`
}

type feature struct {
	Type string `json:"type"`
}

type imageContext struct {
	LanguageHints []string `json:"languageHints,omitempty"`
}

type annotateResponse struct {
	Responses []annotateResult `json:"responses"`
}

type annotateResult struct {
	TextAnnotations    []textAnnotation    `json:"textAnnotations"`
	FullTextAnnotation *fullTextAnnotation `json:"fullTextAnnotation"`
	Error              *annotateError      `json:"error"`
}

type textAnnotation struct {
	Description string  `json:"description"`
	Confidence  float64 `json:"confidence"`
}

type fullTextAnnotation struct {
	Text string `json:"text"`
}

type annotateError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Recognize sends the image for document text detection. The call is
// made once; the caller decides whether to fall back.
func (c *VisionClient) Recognize(ctx context.Context, image []byte, languageHints []string) (*Result, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	if len(image) == 0 {
		return nil, ErrEmptyImage
	}

	item := annotateItem{
		Image:    imageContent{Content: base64.StdEncoding.EncodeToString(image)},
		Features: []feature{{Type: "DOCUMENT_TEXT_DETECTION"}},
	}
	if len(languageHints) > 0 {
		item.ImageContext = &imageContext{LanguageHints: languageHints}
	}

	reqBody, err := json.Marshal(annotateRequest{Requests: []annotateItem{item}})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s?key=%s", c.endpoint, c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("vision request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("vision returned status %d: %s", resp.StatusCode, string(body))
	}

	var annotateResp annotateResponse
	if err := json.Unmarshal(body, &annotateResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if len(annotateResp.Responses) == 0 {
		return nil, fmt.Errorf("vision returned no responses")
	}

	detection := annotateResp.Responses[0]
	if detection.Error != nil {
		return nil, fmt.Errorf("vision error %d: %s", detection.Error.Code, detection.Error.Message)
	}

	text := detection.text()
	if text == "" {
		return nil, fmt.Errorf("vision detected no text")
	}

	return &Result{
		Text:       text,
		Confidence: detection.confidence(),
		Engine:     EngineVision,
	}, nil
}

func (r annotateResult) text() string {
	if r.FullTextAnnotation != nil && r.FullTextAnnotation.Text != "" {
		return r.FullTextAnnotation.Text
	}
	if len(r.TextAnnotations) > 0 {
		return r.TextAnnotations[0].Description
	}
	return ""
}

// confidence averages the per-token scores, skipping the first
// annotation since it spans the whole image.
func (r annotateResult) confidence() float64 {
	var sum float64
	var count int
	for i, a := range r.TextAnnotations {
		if i == 0 || a.Confidence <= 0 {
			continue
		}
		sum += a.Confidence
		count++
	}
	if count == 0 {
		return DefaultConfidence
	}
	return sum / float64(count) * 100
}
