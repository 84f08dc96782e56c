package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jaidev/gold-tracker-backend/internal/api"
	"github.com/jaidev/gold-tracker-backend/internal/config"
	"github.com/jaidev/gold-tracker-backend/internal/database"
	"github.com/jaidev/gold-tracker-backend/internal/goldapi"
	"github.com/jaidev/gold-tracker-backend/internal/repository"
	"github.com/jaidev/gold-tracker-backend/internal/scheduler"
	"github.com/jaidev/gold-tracker-backend/internal/service"
	"github.com/jaidev/gold-tracker-backend/internal/stream"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection and bring the schema up to date
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Realtime hub for the rate and portfolio topics
	hub := stream.NewHub()

	// Create repositories
	rateRepo := repository.NewRateRepository(db)
	portfolioRepo := repository.NewPortfolioRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)
	providerRepo := repository.NewProviderRepository(db)

	// Create services
	systemService := service.NewSystemService(db)
	rateService := service.NewRateService(rateRepo, hub)
	portfolioService := service.NewPortfolioService(portfolioRepo, rateRepo, snapshotRepo, hub)
	snapshotService := service.NewSnapshotService(snapshotRepo, portfolioRepo, rateRepo)
	providerService, err := service.NewProviderService(providerRepo, rateService, goldapi.NewClient(), cfg.Provider.EncryptionKey)
	if err != nil {
		log.Fatalf("Failed to create provider service: %v", err)
	}

	// Seed the hub so early subscribers receive the stored state
	if err := rateService.PublishCurrent(); err != nil {
		log.Printf("Failed to seed rate topic: %v", err)
	}
	if err := portfolioService.PublishCurrent(); err != nil {
		log.Printf("Failed to seed portfolio topic: %v", err)
	}

	// Create router
	router := api.NewRouter(systemService, rateService, portfolioService, providerService, hub, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if cfg.Scheduler.Enabled {
		jobs, err := scheduler.New(cfg.Scheduler.Spec, providerService, snapshotService)
		if err != nil {
			log.Fatalf("Failed to create scheduler: %v", err)
		}
		jobs.Start()
		group.Go(func() error {
			<-ctx.Done()
			jobs.Stop()
			return nil
		})
		log.Printf("Daily jobs scheduled: %s", cfg.Scheduler.Spec)
	}

	group.Go(func() error {
		<-ctx.Done()
		log.Println("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Fatalf("Server error: %v", err)
	}

	log.Println("Server exited")
}
