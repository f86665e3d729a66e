// internal/models/product_test.go
package models

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductJSON_UnboundedRoundTrip(t *testing.T) {
	p := Product{ID: "lp-unbounded", MinAmount: 5000, MaxAmount: math.Inf(1), Active: true}

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "maxAmount", "no upper bound serializes as an absent field")

	var decoded Product
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.Unbounded())
	assert.Equal(t, p.ID, decoded.ID)
	assert.Equal(t, p.MinAmount, decoded.MinAmount)
}

func TestProductJSON_BoundedRoundTrip(t *testing.T) {
	p := Product{ID: "lp-capped", MinAmount: 5000, MaxAmount: 150000, Active: true}

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"maxAmount":150000`)

	var decoded Product
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 150000.0, decoded.MaxAmount)
}

func TestProductJSON_NullMaxAmountIsUnbounded(t *testing.T) {
	var decoded Product
	require.NoError(t, json.Unmarshal([]byte(`{"id":"lp-null","maxAmount":null}`), &decoded))
	assert.True(t, decoded.Unbounded())
}

func TestProductJSON_SliceMarshal(t *testing.T) {
	products := []Product{
		{ID: "lp-1", MaxAmount: 800000, Active: true},
		{ID: "lp-2", MaxAmount: math.Inf(1), Active: true},
	}

	data, err := json.Marshal(products)
	require.NoError(t, err)

	var decoded []Product
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 2)
	assert.False(t, decoded[0].Unbounded())
	assert.True(t, decoded[1].Unbounded())
}
