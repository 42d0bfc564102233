package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote is the normalized, provider-agnostic price snapshot for one item.
// Monetary fields are decimal values, never formatted strings.
type Quote struct {
	Source    string          `json:"source"`
	ItemName  string          `json:"item_name"`
	BuyPrice  decimal.Decimal `json:"buy_price"`
	SellPrice decimal.Decimal `json:"sell_price"`
	Volume    int64           `json:"volume"`
	Currency  string          `json:"currency"`
	Timestamp time.Time       `json:"timestamp"`
}

// PriceLevel is one order book level.
type PriceLevel struct {
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity"`
}

// OrderBook is the normalized depth snapshot: bids descending by price, asks
// ascending, spread = lowest ask - highest bid.
type OrderBook struct {
	Source    string          `json:"source"`
	ItemName  string          `json:"item_name"`
	Bids      []PriceLevel    `json:"bids"`
	Asks      []PriceLevel    `json:"asks"`
	Spread    decimal.Decimal `json:"spread"`
	Currency  string          `json:"currency"`
	Timestamp time.Time       `json:"timestamp"`
}

// QuoteRequest is the aggregation entry point's input. ItemKey identifies the
// item logically; per-provider identifiers are optional overrides.
type QuoteRequest struct {
	ItemKey             string `json:"item_key" validate:"required"`
	SteamMarketHashName string `json:"steam_market_hash_name" validate:"omitempty"`
	BuffGoodsID         string `json:"buff_goods_id" validate:"omitempty,numeric"`
	Currency            string `json:"currency" validate:"omitempty,iso4217"`
}
