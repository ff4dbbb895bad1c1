package bank

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"veridesk/internal/models"

	"github.com/stretchr/testify/assert"
)

func testProfile() *models.MerchantProfile {
	return &models.MerchantProfile{
		ID:            7,
		LegalName:     "Sharma Traders Pvt Ltd",
		BusinessType:  "private_limited",
		Address:       "14 MG Road",
		City:          "Bengaluru",
		State:         "Karnataka",
		Pincode:       "560001",
		ContactEmail:  "owner@sharmatraders.in",
		ContactPhone:  "+919876543210",
		AccountNumber: "123456789012",
		IFSC:          "HDFC0001234",
		AccountHolder: "Sharma Traders Pvt Ltd",
	}
}

func TestSubmitApplication(t *testing.T) {
	t.Run("successful submission", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/applications", r.URL.Path)
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
			assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

			var payload map[string]interface{}
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, "Sharma Traders Pvt Ltd", payload["legalName"])

			json.NewEncoder(w).Encode(Application{
				ApplicationID:           "APP-2201",
				Success:                 true,
				Message:                 "received",
				EstimatedProcessingTime: "3-5 business days",
			})
		}))
		defer server.Close()

		client := NewClient(Config{BaseURL: server.URL, APIKey: "test-key"})
		app, err := client.SubmitApplication(context.Background(), testProfile())

		assert.NoError(t, err)
		assert.Equal(t, "APP-2201", app.ApplicationID)
		assert.Equal(t, "3-5 business days", app.EstimatedProcessingTime)
	})

	t.Run("non-2xx response is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := NewClient(Config{BaseURL: server.URL})
		_, err := client.SubmitApplication(context.Background(), testProfile())
		assert.Error(t, err)
	})

	t.Run("success false in a 200 body is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(Application{Success: false, Message: "risk check failed"})
		}))
		defer server.Close()

		client := NewClient(Config{BaseURL: server.URL})
		_, err := client.SubmitApplication(context.Background(), testProfile())
		assert.ErrorIs(t, err, ErrRejected)
		assert.Contains(t, err.Error(), "risk check failed")
	})

	t.Run("missing base URL", func(t *testing.T) {
		client := NewClient(Config{})
		_, err := client.SubmitApplication(context.Background(), testProfile())
		assert.ErrorIs(t, err, ErrNotConfigured)
	})
}
