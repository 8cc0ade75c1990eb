// Package recommend ranks a user's holdings by today's percent change.
package recommend

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/models"
)

// topN is the number of top performers returned.
const topN = 3

// DefaultFetchTimeout bounds each per-symbol quote fetch. A timeout converts
// to an Unavailable failure for that symbol alone.
const DefaultFetchTimeout = 10 * time.Second

// Service implements RecommendService. Each call is a stateless best-effort
// read: quotes are fetched fresh for every holding, holdings whose fetch
// fails are skipped (logged, never surfaced as partial errors), and the
// survivors are ranked by percent change.
type Service struct {
	portfolios   interfaces.PortfolioStore
	quotes       interfaces.QuoteClient
	logger       *common.Logger
	fetchTimeout time.Duration
}

// NewService creates a new recommendation service.
func NewService(portfolios interfaces.PortfolioStore, quotes interfaces.QuoteClient, logger *common.Logger) *Service {
	return &Service{
		portfolios:   portfolios,
		quotes:       quotes,
		logger:       logger,
		fetchTimeout: DefaultFetchTimeout,
	}
}

// Recommend returns up to three holdings ranked by percent change descending.
// Ties keep the original portfolio order.
func (s *Service) Recommend(ctx context.Context, username string) ([]models.Recommendation, error) {
	portfolio, err := s.portfolios.Get(ctx, username)
	if err != nil {
		return nil, err
	}

	// Fan out one fetch per holding into an index-aligned slice so the
	// portfolio order survives for stable tie-breaking.
	results := make([]*models.Quote, len(portfolio.Holdings))
	var wg sync.WaitGroup
	for i, holding := range portfolio.Holdings {
		wg.Add(1)
		go func(i int, symbol string) {
			defer wg.Done()
			fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
			defer cancel()
			quote, err := s.quotes.GetQuote(fetchCtx, symbol)
			if err != nil {
				s.logger.Warn().
					Err(err).
					Str("symbol", symbol).
					Str("username", username).
					Msg("Quote fetch failed, skipping holding")
				return
			}
			results[i] = quote
		}(i, holding.Symbol)
	}
	wg.Wait()

	recs := make([]models.Recommendation, 0, len(results))
	for i, quote := range results {
		if quote == nil {
			continue
		}
		recs = append(recs, models.Recommendation{
			Symbol:    portfolio.Holdings[i].Symbol,
			ChangePct: quote.ChangePct,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].ChangePct > recs[j].ChangePct
	})

	if len(recs) > topN {
		recs = recs[:topN]
	}
	return recs, nil
}

// Ensure Service implements RecommendService
var _ interfaces.RecommendService = (*Service)(nil)
