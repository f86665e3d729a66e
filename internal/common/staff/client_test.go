// internal/common/staff/client_test.go
package staff

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	commonErrors "boreal-workers/internal/common/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchCatalog(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/lender-products", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]interface{}{
				{"id": "lp-1", "productName": "Working Capital"},
				{"id": "lp-2", "productName": "Term Loan"},
			},
		})
	}))
	defer server.Close()

	client := NewClientWithHTTP(server.URL, server.Client())
	records, err := client.FetchCatalog(context.Background())

	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, "lp-1", records[0]["id"])
}

func TestFetchCatalog_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClientWithHTTP(server.URL, server.Client())
	_, err := client.FetchCatalog(context.Background())

	require.Error(t, err)
	var stdErr *commonErrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, commonErrors.ErrCodeCatalogFetchFailed, stdErr.Code)
}

func TestCreateApplication_SendsIdempotencyKey(t *testing.T) {
	var gotHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("Idempotency-Key")

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(CreateApplicationResponse{ID: "app-123", Status: "submitted"})
	}))
	defer server.Close()

	client := NewClientWithHTTP(server.URL, server.Client())
	resp, err := client.CreateApplication(context.Background(), &ApplicationRecord{
		IdempotencyKey: "key-abc",
		ContactEmail:   "jane@acme.com",
	})

	require.NoError(t, err)
	assert.Equal(t, "key-abc", gotHeader)
	assert.Equal(t, "app-123", resp.ID)
	assert.False(t, resp.Duplicate)
}

func TestCreateApplication_ConflictMeansDuplicate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(CreateApplicationResponse{ID: "app-original", Status: "submitted"})
	}))
	defer server.Close()

	client := NewClientWithHTTP(server.URL, server.Client())
	resp, err := client.CreateApplication(context.Background(), &ApplicationRecord{IdempotencyKey: "key-abc"})

	require.Error(t, err)
	var stdErr *commonErrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, commonErrors.ErrCodeDuplicateSubmission, stdErr.Code)

	require.NotNil(t, resp)
	assert.True(t, resp.Duplicate)
	assert.Equal(t, "app-original", resp.ID)
}

func TestCreateLead(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/leads", r.URL.Path)

		var lead Lead
		require.NoError(t, json.NewDecoder(r.Body).Decode(&lead))
		lead.ID = "lead-42"

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(lead)
	}))
	defer server.Close()

	client := NewClientWithHTTP(server.URL, server.Client())
	id, err := client.CreateLead(context.Background(), &Lead{Email: "jane@acme.com", Source: "intake-wizard"})

	require.NoError(t, err)
	assert.Equal(t, "lead-42", id)
}
