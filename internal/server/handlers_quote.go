package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/bobmcallan/folio/internal/common"
)

// validateSymbol normalizes and checks a ticker symbol from a query
// parameter. Rejects empty values and anything outside the safe character
// set (letters, digits, dot, hyphen).
func validateSymbol(symbol string) (string, string) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return "", "Symbol parameter is missing"
	}
	if len(symbol) > 16 {
		return "", "symbol must be 16 characters or fewer"
	}
	for _, c := range symbol {
		valid := (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '.' || c == '-'
		if !valid {
			return "", "symbol contains invalid characters"
		}
	}
	return symbol, ""
}

// handleGetStockPrice handles GET /api/get-stock-price?symbol=S.
func (s *Server) handleGetStockPrice(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	symbol, errMsg := validateSymbol(r.URL.Query().Get("symbol"))
	if errMsg != "" {
		WriteError(w, http.StatusBadRequest, errMsg)
		return
	}

	quote, err := s.app.QuoteClient.GetQuote(r.Context(), symbol)
	switch {
	case err == nil:
		WriteJSON(w, http.StatusOK, quote)
	case errors.Is(err, common.ErrNoData):
		WriteErrorWithCode(w, http.StatusBadRequest, "Invalid symbol or data not available", "no_data")
	case errors.Is(err, common.ErrUnavailable):
		s.logger.Warn().Err(err).Str("symbol", symbol).Msg("Quote provider unavailable")
		WriteErrorWithCode(w, http.StatusBadGateway, "Quote provider unavailable", "unavailable")
	default:
		s.logger.Error().Err(err).Str("symbol", symbol).Msg("Failed to fetch quote")
		WriteError(w, http.StatusInternalServerError, "failed to fetch quote")
	}
}
