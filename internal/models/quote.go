package models

import "time"

// Quote is a point-in-time snapshot for one symbol, normalized from the
// provider's GLOBAL_QUOTE response. Never cached; fetched fresh per request.
type Quote struct {
	Symbol        string    `json:"symbol"`
	Price         float64   `json:"price"`
	PreviousClose float64   `json:"previous_close,omitempty"`
	Change        float64   `json:"change,omitempty"`
	ChangePct     float64   `json:"change_percent"`
	Volume        int64     `json:"volume,omitempty"`
	TradingDay    string    `json:"latest_trading_day,omitempty"`
	FetchedAt     time.Time `json:"fetched_at"`
}

// Recommendation is a derived, ephemeral ranking entry.
type Recommendation struct {
	Symbol    string  `json:"symbol"`
	ChangePct float64 `json:"change_percent"`
}
