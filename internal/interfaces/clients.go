package interfaces

import (
	"context"

	"github.com/bobmcallan/folio/internal/models"
)

// QuoteClient fetches live quotes from the external market-data provider.
type QuoteClient interface {
	// GetQuote returns a canonical quote for the symbol.
	// Fails with common.ErrNoData when the provider has no quote for the
	// symbol, and common.ErrUnavailable on transport-level failure.
	GetQuote(ctx context.Context, symbol string) (*models.Quote, error)
}
