// internal/common/staff/client.go
package staff

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"boreal-workers/internal/common/config"
	"boreal-workers/internal/common/errors"
	commonhttp "boreal-workers/internal/common/http"
	"boreal-workers/internal/models"

	"golang.org/x/oauth2/clientcredentials"
)

// Doer is the request-execution surface the client needs; *http.Client and
// the shared commonhttp.Client both satisfy it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the staff-side loan origination API. With a token URL
// configured, calls authenticate with the client-credentials flow and the
// oauth2 transport caches and refreshes the token; without one (local dev
// against a stub) requests go out unauthenticated.
type Client struct {
	baseURL    string
	httpClient Doer
}

// ApplicationRecord is the payload for creating an application on the staff side.
type ApplicationRecord struct {
	IdempotencyKey    string                    `json:"idempotencyKey"`
	ContactEmail      string                    `json:"contactEmail"`
	ContactPhone      string                    `json:"contactPhone,omitempty"`
	Intake            models.Intake             `json:"intake"`
	MatchedProductIDs []string                  `json:"matchedProductIds"`
	RequiredDocuments []models.RequiredDocument `json:"requiredDocuments"`
}

// CreateApplicationResponse holds the staff API's answer to a create call.
type CreateApplicationResponse struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

// Lead is a lightweight CRM-style record for follow-up before an application exists.
type Lead struct {
	ID        string `json:"id,omitempty"`
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Source    string `json:"source,omitempty"`
}

// NewClient creates a staff API client from config.
func NewClient(cfg config.StaffAPIConfig) *Client {
	timeout := time.Duration(cfg.Timeout) * time.Millisecond

	var httpClient Doer
	if cfg.TokenURL != "" {
		cc := clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
		}
		oauthClient := cc.Client(context.Background())
		oauthClient.Timeout = timeout
		httpClient = oauthClient
	} else {
		httpClient = commonhttp.NewClient(timeout)
	}

	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: httpClient,
	}
}

// NewClientWithHTTP creates a client with a caller-provided http.Client. Used
// in tests to bypass the token exchange.
func NewClientWithHTTP(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

// FetchCatalog retrieves the full lender product catalog as raw records.
// Normalization happens on our side, not the staff side.
func (c *Client) FetchCatalog(ctx context.Context) ([]map[string]interface{}, error) {
	url := fmt.Sprintf("%s/lender-products", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewCatalogFetchFailedError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, errors.NewCatalogFetchFailedError(
			fmt.Errorf("catalog fetch failed (status %d): %s", resp.StatusCode, string(body)))
	}

	var result struct {
		Data []map[string]interface{} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}

	return result.Data, nil
}

// CreateApplication submits an application record. The idempotency key rides
// both in the body and in the Idempotency-Key header so retries of the same
// submission collapse server-side. A 409 means the key was already used; the
// response body still carries the original application id.
func (c *Client) CreateApplication(ctx context.Context, record *ApplicationRecord) (*CreateApplicationResponse, error) {
	url := fmt.Sprintf("%s/applications", c.baseURL)

	jsonData, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal application: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if record.IdempotencyKey != "" {
		req.Header.Set("Idempotency-Key", record.IdempotencyKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewStaffAPIFailedError("create_application", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusCreated, http.StatusOK:
		var createResp CreateApplicationResponse
		if err := json.Unmarshal(body, &createResp); err != nil {
			return nil, fmt.Errorf("failed to unmarshal response: %w", err)
		}
		return &createResp, nil

	case http.StatusConflict:
		var createResp CreateApplicationResponse
		if err := json.Unmarshal(body, &createResp); err != nil {
			return nil, errors.NewDuplicateSubmissionError("")
		}
		createResp.Duplicate = true
		return &createResp, errors.NewDuplicateSubmissionError(createResp.ID)

	default:
		return nil, errors.NewStaffAPIFailedError("create_application",
			fmt.Errorf("application create failed (status %d): %s", resp.StatusCode, string(body)))
	}
}

// CreateLead registers a follow-up lead with the staff CRM.
func (c *Client) CreateLead(ctx context.Context, lead *Lead) (string, error) {
	url := fmt.Sprintf("%s/leads", c.baseURL)

	jsonData, err := json.Marshal(lead)
	if err != nil {
		return "", fmt.Errorf("failed to marshal lead: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.NewStaffAPIFailedError("create_lead", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return "", errors.NewStaffAPIFailedError("create_lead",
			fmt.Errorf("lead create failed (status %d): %s", resp.StatusCode, string(body)))
	}

	var created Lead
	if err := json.Unmarshal(body, &created); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return created.ID, nil
}
