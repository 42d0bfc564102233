package models

// BuffResponse is the Buff API envelope. Business failures arrive with an
// HTTP 200 and a non-"OK" code.
type BuffResponse[T any] struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
	Data T      `json:"data"`
}

// BuffGoodsInfo is the data payload of the goods info endpoint. Prices are
// plain decimal strings in CNY.
type BuffGoodsInfo struct {
	Name         string `json:"name"`
	SellMinPrice string `json:"sell_min_price"`
	BuyMaxPrice  string `json:"buy_max_price"`
	SellNum      int64  `json:"sell_num"`
	BuyNum       int64  `json:"buy_num"`
}

// BuffOrder is one resting order in the depth payload.
type BuffOrder struct {
	Price string `json:"price"`
	Num   int64  `json:"num"`
}

// BuffDepth is the data payload of the depth endpoint. Upstream ordering is
// not guaranteed; normalization sorts both sides.
type BuffDepth struct {
	Name       string      `json:"name"`
	SellOrders []BuffOrder `json:"sell_orders"`
	BuyOrders  []BuffOrder `json:"buy_orders"`
}
