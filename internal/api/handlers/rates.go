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

// RateHandler handles HTTP requests for gold rate endpoints. It serves as
// the HTTP layer adapter, parsing requests and delegating business logic
// to the rateService.
type RateHandler struct {
	rateService *service.RateService
}

// NewRateHandler creates a new RateHandler with the provided service dependency.
func NewRateHandler(rateService *service.RateService) *RateHandler {
	return &RateHandler{
		rateService: rateService,
	}
}

// CreateRate handles POST requests to record a gold rate observation.
// A submission for an already-recorded date overwrites the prior value.
//
// Endpoint: POST /api/rates
// Request Body: CreateRateRequest (date, rate; both free text)
// Response: 201 Created with RateObservation
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if the write fails
func (h *RateHandler) CreateRate(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateRateRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateRate(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	observation, err := h.rateService.CreateRate(r.Context(), req.Date, req.Rate)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToSaveRate.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, observation)
}

// ListRates handles GET requests to retrieve all rate observations sorted
// by date ascending.
//
// Endpoint: GET /api/rates
// Response: 200 OK with array of RateObservation
// Error: 500 Internal Server Error if retrieval fails
func (h *RateHandler) ListRates(w http.ResponseWriter, _ *http.Request) {
	observations, err := h.rateService.ListRates()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveRates.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, observations)
}

// History handles GET requests to retrieve rate observations for a time
// period, annotated with per-point changes.
//
// Endpoint: GET /api/rates/history?period={day|week|month}
// Response: 200 OK with array of RatePoint
// Error: 400 Bad Request for an unknown period
// Error: 500 Internal Server Error if retrieval fails
func (h *RateHandler) History(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")

	points, err := h.rateService.History(period)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidInput) {
			response.RespondError(w, http.StatusBadRequest, "invalid period", err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveRates.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, points)
}

// CurrentRate handles GET requests to retrieve today's observation.
//
// Endpoint: GET /api/rates/current
// Response: 200 OK with RateObservation
// Error: 404 Not Found if today has no observation
// Error: 500 Internal Server Error if retrieval fails
func (h *RateHandler) CurrentRate(w http.ResponseWriter, _ *http.Request) {
	observation, err := h.rateService.CurrentRate()
	if err != nil {
		if errors.Is(err, apperrors.ErrRateNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrRateNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveRates.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, observation)
}

// ExportCSV handles GET requests to download all observations as CSV.
//
// Endpoint: GET /api/rates/export
// Response: 200 OK, text/csv attachment
// Error: 500 Internal Server Error if retrieval fails
func (h *RateHandler) ExportCSV(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="gold_rates.csv"`)

	if err := h.rateService.ExportCSV(w); err != nil {
		// Headers may already be written; the truncated body signals failure.
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToExportRates.Error(), err.Error())
	}
}

// ImportCSVResponse reports how many observations a CSV import wrote.
type ImportCSVResponse struct {
	Imported int `json:"imported"`
}

// ImportCSV handles POST requests to bulk-load observations from a
// date,rate CSV body.
//
// Endpoint: POST /api/rates/import
// Response: 200 OK with ImportCSVResponse
// Error: 400 Bad Request for bad headers or an invalid row
// Error: 500 Internal Server Error if a write fails
func (h *RateHandler) ImportCSV(w http.ResponseWriter, r *http.Request) {
	imported, err := h.rateService.ImportCSV(r.Context(), r.Body)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidCSVHeaders),
			errors.Is(err, apperrors.ErrInvalidDate),
			errors.Is(err, apperrors.ErrInvalidRate):
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrFailedToImportRates.Error(), err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToImportRates.Error(), err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, ImportCSVResponse{Imported: imported})
}
