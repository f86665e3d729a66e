// internal/models/product.go
package models

import (
	"encoding/json"
	"math"
)

// Product is the canonical lender-product record produced by the product
// normalizer from a raw catalog payload. MaxAmount is +Inf when the source
// declared no upper bound; a large-but-finite sentinel would mis-filter
// requests at the top of the catalog range.
type Product struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	LenderName string   `json:"lenderName"`
	Country    string   `json:"country"`
	Category   string   `json:"category"`
	MinAmount  float64  `json:"minAmount"`
	MaxAmount  float64  `json:"maxAmount"`
	MinRevenue float64  `json:"minRevenue,omitempty"`
	Industries []string `json:"industries,omitempty"`
	Active     bool     `json:"active"`

	// DocumentIDs lists document categories the lender declares as required
	// for this product, unioned into the compiled requirement list.
	DocumentIDs []string `json:"requiredDocuments,omitempty"`

	// Raw preserves unrecognized source fields for downstream debugging.
	// It never participates in filtering.
	Raw map[string]interface{} `json:"raw,omitempty"`
}

// MarshalJSON writes an unbounded product with the maxAmount field absent.
// encoding/json rejects +Inf, and the wire format treats a missing
// maxAmount as "no upper bound" anyway.
func (p Product) MarshalJSON() ([]byte, error) {
	type alias Product
	wire := struct {
		alias
		MaxAmount *float64 `json:"maxAmount,omitempty"`
	}{alias: alias(p)}
	if !p.Unbounded() {
		wire.MaxAmount = &p.MaxAmount
	}
	return json.Marshal(wire)
}

// UnmarshalJSON maps an absent or null maxAmount back to +Inf, so a
// cache or job-variable round trip preserves unboundedness.
func (p *Product) UnmarshalJSON(data []byte) error {
	type alias Product
	wire := struct {
		*alias
		MaxAmount *float64 `json:"maxAmount"`
	}{alias: (*alias)(p)}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	if wire.MaxAmount != nil {
		p.MaxAmount = *wire.MaxAmount
	} else {
		p.MaxAmount = math.Inf(1)
	}
	return nil
}

// Unbounded reports whether the product declares no upper funding limit.
func (p Product) Unbounded() bool {
	return math.IsInf(p.MaxAmount, 1)
}

// HasValidRange reports whether MinAmount <= MaxAmount. The normalizer does
// not enforce this; the catalog sync logs and skips violations.
func (p Product) HasValidRange() bool {
	return p.MinAmount <= p.MaxAmount
}
