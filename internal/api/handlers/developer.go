package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/jaidev/gold-tracker-backend/internal/api/request"
	"github.com/jaidev/gold-tracker-backend/internal/api/response"
	"github.com/jaidev/gold-tracker-backend/internal/apperrors"
	"github.com/jaidev/gold-tracker-backend/internal/service"
)

// DeveloperHandler handles HTTP requests for the developer namespace:
// provider configuration and manually triggered fetches.
type DeveloperHandler struct {
	providerService *service.ProviderService
}

// NewDeveloperHandler creates a new DeveloperHandler with the provided service dependency.
func NewDeveloperHandler(providerService *service.ProviderService) *DeveloperHandler {
	return &DeveloperHandler{
		providerService: providerService,
	}
}

// ProviderConfigResponse returns the stored provider settings with the
// token masked.
type ProviderConfigResponse struct {
	Endpoint  string `json:"endpoint"`
	Token     string `json:"token"`
	UpdatedAt string `json:"updatedAt"`
}

// GetProviderConfig handles GET requests to retrieve the provider settings.
//
// Endpoint: GET /api/developer/provider
// Response: 200 OK with ProviderConfigResponse (token masked)
// Error: 404 Not Found if no provider is configured
// Error: 500 Internal Server Error if retrieval fails
func (h *DeveloperHandler) GetProviderConfig(w http.ResponseWriter, _ *http.Request) {
	config, err := h.providerService.GetConfig()
	if err != nil {
		if errors.Is(err, apperrors.ErrProviderNotConfigured) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrProviderNotConfigured.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveProviderConfig.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, ProviderConfigResponse{
		Endpoint:  config.Endpoint,
		Token:     maskToken(config.Token),
		UpdatedAt: config.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

// SetProviderConfig handles POST requests to store the provider settings.
// The token is encrypted before it reaches the database.
//
// Endpoint: POST /api/developer/provider
// Request Body: SetProviderConfigRequest (endpoint, token)
// Response: 204 No Content
// Error: 400 Bad Request if the body is invalid or fields are missing
// Error: 500 Internal Server Error if the write fails
func (h *DeveloperHandler) SetProviderConfig(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.SetProviderConfigRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if strings.TrimSpace(req.Endpoint) == "" || strings.TrimSpace(req.Token) == "" {
		response.RespondError(w, http.StatusBadRequest, "validation failed", "endpoint and token are required")
		return
	}

	if err := h.providerService.SetConfig(r.Context(), req); err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToUpdateProviderConfig.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// TriggerFetch handles POST requests to fetch today's spot price from the
// provider immediately, outside the daily schedule.
//
// Endpoint: POST /api/developer/provider/fetch
// Response: 200 OK with the ingested RateObservation
// Error: 404 Not Found if no provider is configured
// Error: 502 Bad Gateway if the provider call fails
func (h *DeveloperHandler) TriggerFetch(w http.ResponseWriter, r *http.Request) {
	observation, err := h.providerService.FetchToday(r.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrProviderNotConfigured) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrProviderNotConfigured.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusBadGateway, apperrors.ErrFailedToFetchRate.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, observation)
}

func maskToken(token string) string {
	if len(token) <= 4 {
		return "****"
	}
	return "****" + token[len(token)-4:]
}
