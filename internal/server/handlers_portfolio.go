package server

import (
	"errors"
	"net/http"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/models"
)

// handleImportPortfolio handles POST /api/import-portfolio.
// The body carries exactly one of the two import forms: raw delimited text
// in "portfolioData", or structured rows in "holdings". The format is
// chosen by the request, never sniffed from content.
func (s *Server) handleImportPortfolio(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	identity, ok := identityFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, "Token is missing")
		return
	}

	var req struct {
		PortfolioData *string             `json:"portfolioData"`
		Holdings      []models.HoldingRow `json:"holdings"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	var importReq models.ImportRequest
	switch {
	case req.Holdings != nil:
		importReq = models.ImportRequest{Format: models.ImportFormatTable, Rows: req.Holdings}
	case req.PortfolioData != nil:
		importReq = models.ImportRequest{Format: models.ImportFormatText, Text: *req.PortfolioData}
	default:
		WriteError(w, http.StatusBadRequest, "No portfolio data provided")
		return
	}

	holdings, err := s.app.Importer.Import(r.Context(), identity, importReq)
	switch {
	case err == nil:
		WriteJSON(w, http.StatusOK, map[string]interface{}{
			"message":  "Portfolio imported successfully",
			"holdings": len(holdings),
		})
	case errors.Is(err, common.ErrMalformedLine):
		WriteErrorWithCode(w, http.StatusBadRequest, err.Error(), "malformed_line")
	case errors.Is(err, common.ErrMalformedRow):
		WriteErrorWithCode(w, http.StatusBadRequest, err.Error(), "malformed_row")
	case errors.Is(err, common.ErrInvalidInput):
		WriteError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error().Err(err).Str("username", identity).Msg("Failed to import portfolio")
		WriteError(w, http.StatusInternalServerError, "failed to import portfolio")
	}
}

// handleGetPortfolio handles GET /api/get-portfolio.
func (s *Server) handleGetPortfolio(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	identity, ok := identityFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, "Token is missing")
		return
	}

	portfolio, err := s.app.Store.Get(r.Context(), identity)
	switch {
	case err == nil:
		WriteJSON(w, http.StatusOK, map[string]interface{}{
			"portfolio": portfolio.Holdings,
		})
	case errors.Is(err, common.ErrNotFound):
		WriteErrorWithCode(w, http.StatusNotFound, "No portfolio found", "not_found")
	default:
		s.logger.Error().Err(err).Str("username", identity).Msg("Failed to read portfolio")
		WriteError(w, http.StatusInternalServerError, "failed to read portfolio")
	}
}

// handleGetRecommendations handles GET /api/get-recommendations.
func (s *Server) handleGetRecommendations(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	identity, ok := identityFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, "Token is missing")
		return
	}

	recs, err := s.app.Recommender.Recommend(r.Context(), identity)
	switch {
	case err == nil:
		if recs == nil {
			recs = []models.Recommendation{}
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{
			"recommendations": recs,
		})
	case errors.Is(err, common.ErrNotFound):
		WriteErrorWithCode(w, http.StatusNotFound, "No portfolio found", "not_found")
	default:
		s.logger.Error().Err(err).Str("username", identity).Msg("Failed to compute recommendations")
		WriteError(w, http.StatusInternalServerError, "failed to compute recommendations")
	}
}
