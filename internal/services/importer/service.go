// Package importer parses raw portfolio uploads into validated holdings.
package importer

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/models"
)

// Service implements the import pipeline. Parsing is all-or-nothing: any
// malformed line or row aborts the whole import and nothing is committed.
type Service struct {
	portfolios interfaces.PortfolioStore
	logger     *common.Logger
}

// NewService creates a new import service.
func NewService(portfolios interfaces.PortfolioStore, logger *common.Logger) *Service {
	return &Service{portfolios: portfolios, logger: logger}
}

// Parse validates an import request and returns the holdings in input order.
func (s *Service) Parse(req models.ImportRequest) ([]models.Holding, error) {
	switch req.Format {
	case models.ImportFormatText:
		return parseText(req.Text)
	case models.ImportFormatTable:
		return parseTable(req.Rows)
	default:
		return nil, fmt.Errorf("unknown import format '%s': %w", req.Format, common.ErrInvalidInput)
	}
}

// Import parses the request and, only if every record is valid, replaces the
// user's stored portfolio. A parse failure leaves any prior portfolio intact.
func (s *Service) Import(ctx context.Context, username string, req models.ImportRequest) ([]models.Holding, error) {
	holdings, err := s.Parse(req)
	if err != nil {
		return nil, err
	}
	if err := s.portfolios.Replace(ctx, username, holdings); err != nil {
		return nil, err
	}
	s.logger.Info().
		Str("username", username).
		Str("format", string(req.Format)).
		Int("holdings", len(holdings)).
		Msg("Portfolio imported")
	return holdings, nil
}

// parseText parses the delimited-text form: one "SYMBOL,QUANTITY" per
// non-blank line, split once on the first comma, both parts trimmed.
func parseText(text string) ([]models.Holding, error) {
	var holdings []models.Holding
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(strings.TrimSuffix(raw, "\r"))
		if line == "" {
			continue
		}
		symbol, qty, ok := strings.Cut(line, ",")
		if !ok {
			return nil, fmt.Errorf("invalid format in line: %s: %w", line, common.ErrMalformedLine)
		}
		h, err := makeHolding(symbol, qty)
		if err != nil {
			return nil, fmt.Errorf("invalid format in line: %s: %w", line, common.ErrMalformedLine)
		}
		holdings = append(holdings, h)
	}
	return holdings, nil
}

// parseTable parses the tabular form: structured rows carrying symbol and
// quantity fields, e.g. spreadsheet rows decoded client-side.
func parseTable(rows []models.HoldingRow) ([]models.Holding, error) {
	holdings := make([]models.Holding, 0, len(rows))
	for i, row := range rows {
		h, err := makeHolding(row.Symbol, strconv.Itoa(row.Quantity))
		if err != nil {
			return nil, fmt.Errorf("invalid row %d (symbol=%q quantity=%d): %w",
				i+1, row.Symbol, row.Quantity, common.ErrMalformedRow)
		}
		holdings = append(holdings, h)
	}
	return holdings, nil
}

// makeHolding applies the shared validity rules: non-empty symbol
// (case-normalized to upper) and a strictly positive integer quantity.
func makeHolding(symbol, quantity string) (models.Holding, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return models.Holding{}, fmt.Errorf("empty symbol")
	}
	qty, err := strconv.Atoi(strings.TrimSpace(quantity))
	if err != nil {
		return models.Holding{}, fmt.Errorf("quantity is not an integer: %w", err)
	}
	if qty < 1 {
		return models.Holding{}, fmt.Errorf("quantity must be at least 1")
	}
	return models.Holding{Symbol: symbol, Quantity: qty}, nil
}

// Ensure Service implements ImportService
var _ interfaces.ImportService = (*Service)(nil)
