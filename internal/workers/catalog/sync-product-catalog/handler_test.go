// internal/workers/catalog/sync-product-catalog/handler_test.go
package syncproductcatalog

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"boreal-workers/internal/common/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	records []map[string]interface{}
	err     error
}

func (s *stubSource) FetchCatalog(context.Context) ([]map[string]interface{}, error) {
	return s.records, s.err
}

func newTestHandler(t *testing.T, source CatalogSource) (*Handler, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	cfg := &Config{
		CacheKey: "catalog:products",
		CacheTTL: time.Hour,
		Index:    "lender-products",
		Timeout:  10 * time.Second,
	}
	return NewHandler(cfg, source, client, nil, logger.NewTestLogger(t)), mr
}

func TestExecute_NormalizesAndCaches(t *testing.T) {
	source := &stubSource{records: []map[string]interface{}{
		{"productId": "lp-1", "productName": "Working Capital", "country": "CANADA", "minAmount": "10000", "maxAmount": "500000"},
		{"id": "lp-2", "name": "US Term Loan", "country": "USA", "min_amount": 25000.0},
	}}
	h, mr := newTestHandler(t, source)

	output, err := h.Execute(context.Background(), &Input{})

	require.NoError(t, err)
	assert.Equal(t, 2, output.ProductCount)
	assert.Equal(t, 0, output.SkippedCount)

	stored, err := mr.Get("catalog:products")
	require.NoError(t, err)

	var cached cachedCatalog
	require.NoError(t, json.Unmarshal([]byte(stored), &cached))
	require.Len(t, cached.Products, 2)
	assert.Equal(t, "lp-1", cached.Products[0].ID)
	assert.Equal(t, "CA", cached.Products[0].Country)
	assert.Equal(t, 10000.0, cached.Products[0].MinAmount)
	assert.True(t, cached.Products[1].Unbounded(), "absent maxAmount caches as unbounded")
}

func TestExecute_SkipsInvertedRanges(t *testing.T) {
	source := &stubSource{records: []map[string]interface{}{
		{"id": "lp-good", "minAmount": 1000.0, "maxAmount": 5000.0},
		{"id": "lp-bad", "minAmount": 9000.0, "maxAmount": 5000.0},
	}}
	h, _ := newTestHandler(t, source)

	output, err := h.Execute(context.Background(), &Input{})

	require.NoError(t, err)
	assert.Equal(t, 1, output.ProductCount)
	assert.Equal(t, 1, output.SkippedCount)
}

func TestExecute_SkipsRecordsWithoutID(t *testing.T) {
	source := &stubSource{records: []map[string]interface{}{
		{"productName": "Mystery Product"},
		{"id": "lp-1"},
	}}
	h, _ := newTestHandler(t, source)

	output, err := h.Execute(context.Background(), &Input{})

	require.NoError(t, err)
	assert.Equal(t, 1, output.ProductCount)
	assert.Equal(t, 1, output.SkippedCount)
}

func TestExecute_DeduplicatesByID(t *testing.T) {
	source := &stubSource{records: []map[string]interface{}{
		{"id": "lp-1", "name": "First"},
		{"id": "lp-1", "name": "Second"},
	}}
	h, mr := newTestHandler(t, source)

	output, err := h.Execute(context.Background(), &Input{})

	require.NoError(t, err)
	assert.Equal(t, 1, output.ProductCount)

	stored, _ := mr.Get("catalog:products")
	var cached cachedCatalog
	require.NoError(t, json.Unmarshal([]byte(stored), &cached))
	assert.Equal(t, "First", cached.Products[0].Name, "first record wins")
}

func TestExecute_FetchFailure(t *testing.T) {
	h, _ := newTestHandler(t, &stubSource{err: errors.New("staff api down")})

	_, err := h.Execute(context.Background(), &Input{})

	assert.ErrorIs(t, err, ErrCatalogFetchFailed)
}

func TestExecute_EmptyCatalog(t *testing.T) {
	h, mr := newTestHandler(t, &stubSource{})

	output, err := h.Execute(context.Background(), &Input{})

	require.NoError(t, err)
	assert.Equal(t, 0, output.ProductCount)
	assert.True(t, mr.Exists("catalog:products"), "empty catalog still overwrites the cache")
}
