package ocr

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisionClient_Recognize(t *testing.T) {
	t.Run("successful detection", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "POST", r.Method)
			assert.Equal(t, "test-key", r.URL.Query().Get("key"))

			var req annotateRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.Len(t, req.Requests, 1)

			item := req.Requests[0]
			assert.Equal(t, "DOCUMENT_TEXT_DETECTION", item.Features[0].Type)
			require.NotNil(t, item.ImageContext)
			assert.Equal(t, []string{"en", "hi"}, item.ImageContext.LanguageHints)

			decoded, err := base64.StdEncoding.DecodeString(item.Image.Content)
			require.NoError(t, err)
			assert.Equal(t, []byte("fake-image"), decoded)

			json.NewEncoder(w).Encode(annotateResponse{
				Responses: []annotateResult{{
					TextAnnotations: []textAnnotation{
						{Description: "GOVERNMENT OF INDIA\n2345 1234 5678"},
						{Description: "GOVERNMENT", Confidence: 0.9},
						{Description: "OF", Confidence: 0.95},
						{Description: "INDIA", Confidence: 0.85},
					},
					FullTextAnnotation: &fullTextAnnotation{Text: "GOVERNMENT OF INDIA\n2345 1234 5678"},
				}},
			})
		}))
		defer server.Close()

		client := NewVisionClient(VisionConfig{APIKey: "test-key", Endpoint: server.URL})
		result, err := client.Recognize(context.Background(), []byte("fake-image"), []string{"en", "hi"})

		require.NoError(t, err)
		assert.Equal(t, "GOVERNMENT OF INDIA\n2345 1234 5678", result.Text)
		assert.InDelta(t, 90.0, result.Confidence, 0.001)
		assert.Equal(t, EngineVision, result.Engine)
	})

	t.Run("defaults confidence when no token scores", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(annotateResponse{
				Responses: []annotateResult{{
					TextAnnotations: []textAnnotation{
						{Description: "INCOME TAX DEPARTMENT"},
					},
				}},
			})
		}))
		defer server.Close()

		client := NewVisionClient(VisionConfig{APIKey: "test-key", Endpoint: server.URL})
		result, err := client.Recognize(context.Background(), []byte("img"), nil)

		require.NoError(t, err)
		assert.Equal(t, "INCOME TAX DEPARTMENT", result.Text)
		assert.Equal(t, DefaultConfidence, result.Confidence)
	})

	t.Run("error payload inside 200 response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(annotateResponse{
				Responses: []annotateResult{{
					Error: &annotateError{Code: 7, Message: "permission denied"},
				}},
			})
		}))
		defer server.Close()

		client := NewVisionClient(VisionConfig{APIKey: "test-key", Endpoint: server.URL})
		_, err := client.Recognize(context.Background(), []byte("img"), nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "permission denied")
	})

	t.Run("non-200 status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		client := NewVisionClient(VisionConfig{APIKey: "test-key", Endpoint: server.URL})
		_, err := client.Recognize(context.Background(), []byte("img"), nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "403")
	})

	t.Run("single attempt only", func(t *testing.T) {
		calls := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := NewVisionClient(VisionConfig{APIKey: "test-key", Endpoint: server.URL})
		_, err := client.Recognize(context.Background(), []byte("img"), nil)

		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("missing credential", func(t *testing.T) {
		client := NewVisionClient(VisionConfig{})
		_, err := client.Recognize(context.Background(), []byte("img"), nil)
		assert.ErrorIs(t, err, ErrNotConfigured)
	})
}

func TestNewVisionClientTimeout(t *testing.T) {
	client := NewVisionClient(VisionConfig{APIKey: "test-key"})
	assert.Equal(t, DefaultTimeout, client.httpClient.Timeout)

	client = NewVisionClient(VisionConfig{APIKey: "test-key", Timeout: 5 * time.Second})
	assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
}
