// Package bank wraps the partner bank's merchant application API.
package bank

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"veridesk/internal/models"

	"github.com/google/uuid"
)

// Client errors
var (
	ErrNotConfigured = errors.New("bank API is not configured")
	ErrRejected      = errors.New("bank rejected the application")
)

// DefaultTimeout bounds the outbound application call
const DefaultTimeout = 30 * time.Second

// Application is the bank's answer to a submitted merchant profile.
type Application struct {
	ApplicationID           string `json:"applicationId"`
	Success                 bool   `json:"success"`
	Message                 string `json:"message"`
	EstimatedProcessingTime string `json:"estimatedProcessingTime"`
}

// Service submits merchant applications to the partner bank.
type Service interface {
	SubmitApplication(ctx context.Context, profile *models.MerchantProfile) (*Application, error)
}

// Config holds bank API connection settings
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a bank application client
func NewClient(cfg Config) Service {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

type applicationRequest struct {
	LegalName     string `json:"legalName"`
	TradeName     string `json:"tradeName,omitempty"`
	BusinessType  string `json:"businessType"`
	CategoryCode  string `json:"categoryCode,omitempty"`
	GSTIN         string `json:"gstin,omitempty"`
	Address       string `json:"address"`
	City          string `json:"city"`
	State         string `json:"state"`
	Pincode       string `json:"pincode"`
	ContactEmail  string `json:"contactEmail"`
	ContactPhone  string `json:"contactPhone"`
	AccountNumber string `json:"accountNumber"`
	IFSC          string `json:"ifsc"`
	AccountHolder string `json:"accountHolder"`
}

// SubmitApplication sends the profile to the bank. The call is made
// once; retrying is left to the admin re-invoking the action.
func (c *client) SubmitApplication(ctx context.Context, profile *models.MerchantProfile) (*Application, error) {
	if c.baseURL == "" {
		return nil, ErrNotConfigured
	}

	payload := applicationRequest{
		LegalName:     profile.LegalName,
		TradeName:     profile.TradeName,
		BusinessType:  profile.BusinessType,
		CategoryCode:  profile.CategoryCode,
		GSTIN:         profile.GSTIN,
		Address:       profile.Address,
		City:          profile.City,
		State:         profile.State,
		Pincode:       profile.Pincode,
		ContactEmail:  profile.ContactEmail,
		ContactPhone:  profile.ContactPhone,
		AccountNumber: profile.AccountNumber,
		IFSC:          profile.IFSC,
		AccountHolder: profile.AccountHolder,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal application: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/applications", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bank request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("bank returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var app Application
	if err := json.Unmarshal(respBody, &app); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if !app.Success {
		return nil, fmt.Errorf("%w: %s", ErrRejected, app.Message)
	}
	return &app, nil
}
