package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jaidev/gold-tracker-backend/internal/api/handlers"
	custommiddleware "github.com/jaidev/gold-tracker-backend/internal/api/middleware"
	"github.com/jaidev/gold-tracker-backend/internal/config"
	"github.com/jaidev/gold-tracker-backend/internal/service"
	"github.com/jaidev/gold-tracker-backend/internal/stream"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	systemService *service.SystemService,
	rateService *service.RateService,
	portfolioService *service.PortfolioService,
	providerService *service.ProviderService,
	hub *stream.Hub,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	allowedOrigin := func(req *http.Request) bool {
		origin := req.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, allowed := range cfg.CORS.AllowedOrigins {
			if origin == allowed {
				return true
			}
		}
		return false
	}

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/rates", func(r chi.Router) {
			rateHandler := handlers.NewRateHandler(rateService)
			r.Get("/", rateHandler.ListRates)
			r.Post("/", rateHandler.CreateRate)
			r.Get("/history", rateHandler.History)
			r.Get("/current", rateHandler.CurrentRate)
			r.Get("/export", rateHandler.ExportCSV)
			r.Post("/import", rateHandler.ImportCSV)
		})

		r.Route("/portfolio", func(r chi.Router) {
			portfolioHandler := handlers.NewPortfolioHandler(portfolioService)
			r.Get("/summary", portfolioHandler.Summary)
			r.Get("/transactions", portfolioHandler.Transactions)
			r.Get("/history", portfolioHandler.ValuationHistory)
			r.Post("/trades", portfolioHandler.SubmitTrade)
		})

		// Developer namespace, guarded by the internal API key
		r.Route("/developer", func(r chi.Router) {
			r.Use(custommiddleware.APIKeyMiddleware)
			developerHandler := handlers.NewDeveloperHandler(providerService)
			r.Get("/provider", developerHandler.GetProviderConfig)
			r.Post("/provider", developerHandler.SetProviderConfig)
			r.Post("/provider/fetch", developerHandler.TriggerFetch)
		})

		streamHandler := handlers.NewStreamHandler(hub, allowedOrigin)
		r.Get("/stream/{topic}", streamHandler.Subscribe)
	})

	return r
}
