package models

import "time"

// Holding is one position in a portfolio. Symbol is upper-cased on import;
// Quantity is always >= 1.
type Holding struct {
	Symbol   string `json:"symbol"`
	Quantity int    `json:"quantity"`
}

// Portfolio is the ordered set of holdings owned by one user. It is only
// ever mutated by a full-replace import.
type Portfolio struct {
	Username   string    `json:"username"`
	Holdings   []Holding `json:"holdings"`
	ImportedAt time.Time `json:"imported_at"`
}

// ImportFormat selects which variant of an ImportRequest is populated.
type ImportFormat string

const (
	ImportFormatText  ImportFormat = "text"  // multi-line "SYMBOL,QUANTITY"
	ImportFormatTable ImportFormat = "table" // structured rows
)

// HoldingRow is one record of the tabular import form.
type HoldingRow struct {
	Symbol   string `json:"symbol"`
	Quantity int    `json:"quantity"`
}

// ImportRequest is a tagged union over the two accepted import forms.
// Exactly one of Text or Rows is meaningful, selected by Format.
type ImportRequest struct {
	Format ImportFormat
	Text   string
	Rows   []HoldingRow
}
