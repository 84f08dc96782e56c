package handlers

import (
	"errors"
	"net/http"

	"github.com/jaidev/gold-tracker-backend/internal/api/request"
	"github.com/jaidev/gold-tracker-backend/internal/api/response"
	"github.com/jaidev/gold-tracker-backend/internal/apperrors"
	"github.com/jaidev/gold-tracker-backend/internal/service"
	"github.com/jaidev/gold-tracker-backend/internal/validation"
)

// PortfolioHandler handles HTTP requests for portfolio endpoints.
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler with the provided service dependency.
func NewPortfolioHandler(portfolioService *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
	}
}

// SubmitTrade handles POST requests to buy or sell against a priced date.
// All failures are reported before any state change; a rejected trade
// leaves the portfolio untouched.
//
// Endpoint: POST /api/portfolio/trades
// Request Body: SubmitTradeRequest (date, kind, exactly one of amount/grams)
// Response: 201 Created with Trade
// Error: 400 Bad Request if validation fails or the request body is invalid
// Error: 404 Not Found if the date has no recorded rate
// Error: 409 Conflict for insufficient balance or an already-traded date
// Error: 500 Internal Server Error if persistence fails
func (h *PortfolioHandler) SubmitTrade(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.SubmitTradeRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateSubmitTrade(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	trade, err := h.portfolioService.SubmitTrade(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrRateNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrRateNotFound.Error(), err.Error())
		case errors.Is(err, apperrors.ErrInsufficientBalance):
			response.RespondError(w, http.StatusConflict, apperrors.ErrInsufficientBalance.Error(), err.Error())
		case errors.Is(err, apperrors.ErrDateAlreadyTraded):
			response.RespondError(w, http.StatusConflict, apperrors.ErrDateAlreadyTraded.Error(), err.Error())
		case errors.Is(err, apperrors.ErrInvalidInput),
			errors.Is(err, apperrors.ErrInvalidDate),
			errors.Is(err, apperrors.ErrInvalidRate),
			errors.Is(err, apperrors.ErrInvalidKind):
			response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToSubmitTrade.Error(), err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusCreated, trade)
}

// Summary handles GET requests to retrieve the portfolio totals and the
// valuation against today's rate.
//
// Endpoint: GET /api/portfolio/summary
// Response: 200 OK with PortfolioSummary
// Error: 500 Internal Server Error if retrieval fails
func (h *PortfolioHandler) Summary(w http.ResponseWriter, _ *http.Request) {
	summary, err := h.portfolioService.GetSummary()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePortfolio.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}

// Transactions handles GET requests to retrieve the full trade history in
// submission order.
//
// Endpoint: GET /api/portfolio/transactions
// Response: 200 OK with array of Trade
// Error: 500 Internal Server Error if retrieval fails
func (h *PortfolioHandler) Transactions(w http.ResponseWriter, _ *http.Request) {
	transactions, err := h.portfolioService.GetTransactions()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePortfolio.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transactions)
}

// ValuationHistory handles GET requests to retrieve the materialized daily
// valuation series.
//
// Endpoint: GET /api/portfolio/history
// Response: 200 OK with array of ValuationSnapshot
// Error: 500 Internal Server Error if retrieval fails
func (h *PortfolioHandler) ValuationHistory(w http.ResponseWriter, _ *http.Request) {
	snapshots, err := h.portfolioService.ValuationHistory()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveHistory.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, snapshots)
}
