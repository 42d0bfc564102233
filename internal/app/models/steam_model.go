package models

// SteamPriceOverviewResponse mirrors the Steam community market priceoverview
// endpoint. Prices come back as formatted strings ("$2.34", "2,34€") and
// volume with thousands separators ("1,234"). Steam signals business failure
// with success=false on an HTTP 200.
type SteamPriceOverviewResponse struct {
	Success     bool   `json:"success"`
	LowestPrice string `json:"lowest_price"`
	Volume      string `json:"volume"`
	MedianPrice string `json:"median_price"`
}
