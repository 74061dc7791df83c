package core

import (
	sdkmath "cosmossdk.io/math"
)

// Price a token's value per unit in the common quote currency. Decimals
// absorbs the token's own decimal precision plus the multiplier's scale.
type Price struct {
	Multiplier sdkmath.Int `json:"multiplier"`
	Decimals   uint8       `json:"decimals"`
}

// AssetPrice one snapshot entry; a nil Price is dropped when the working
// price map is built.
type AssetPrice struct {
	AssetID string `json:"asset_id"`
	Price   *Price `json:"price,omitempty"`
}

// PriceSnapshot oracle prices observed at one instant, delivered alongside an
// action batch.
type PriceSnapshot struct {
	// nanoseconds
	Timestamp          uint64       `json:"timestamp"`
	RecencyDurationSec uint32       `json:"recency_duration_sec"`
	Prices             []AssetPrice `json:"prices"`
}

// PriceBook the working price map built from a validated snapshot.
type PriceBook struct {
	Timestamp uint64
	prices    map[string]Price
}

// NewPriceBook builds the working map, dropping assets with no price.
func NewPriceBook(snapshot *PriceSnapshot) *PriceBook {
	book := &PriceBook{
		Timestamp: snapshot.Timestamp,
		prices:    make(map[string]Price, len(snapshot.Prices)),
	}

	for _, p := range snapshot.Prices {
		if p.Price == nil {
			continue
		}
		book.prices[p.AssetID] = *p.Price
	}

	return book
}

// Get price for the token; ErrMissingPrice when the snapshot carried none.
func (b *PriceBook) Get(tokenID string) (Price, error) {
	p, ok := b.prices[tokenID]
	if !ok {
		return Price{}, ErrMissingPrice
	}
	return p, nil
}

// Has reports whether the book carries a price for the token.
func (b *PriceBook) Has(tokenID string) bool {
	_, ok := b.prices[tokenID]
	return ok
}
