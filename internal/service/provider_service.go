package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/jaidev/gold-tracker-backend/internal/api/request"
	"github.com/jaidev/gold-tracker-backend/internal/goldapi"
	"github.com/jaidev/gold-tracker-backend/internal/model"
	"github.com/jaidev/gold-tracker-backend/internal/repository"
)

// ProviderService manages the remote gold-price provider: its stored
// configuration (token encrypted at rest) and on-demand or scheduled
// fetches of today's spot price.
type ProviderService struct {
	providerRepo *repository.ProviderRepository
	rateService  *RateService
	client       *goldapi.Client
	keys         []*fernet.Key
}

// NewProviderService creates a new ProviderService. encryptionKey is a
// base64 fernet key; when empty, provider configuration is disabled and
// SetConfig fails.
func NewProviderService(
	providerRepo *repository.ProviderRepository,
	rateService *RateService,
	client *goldapi.Client,
	encryptionKey string,
) (*ProviderService, error) {
	s := &ProviderService{
		providerRepo: providerRepo,
		rateService:  rateService,
		client:       client,
	}

	if encryptionKey != "" {
		keys, err := fernet.DecodeKeys(encryptionKey)
		if err != nil {
			return nil, fmt.Errorf("invalid provider encryption key: %w", err)
		}
		s.keys = keys
	}

	return s, nil
}

// SetConfig encrypts the access token and stores the provider settings.
func (s *ProviderService) SetConfig(ctx context.Context, req request.SetProviderConfigRequest) error {
	if len(s.keys) == 0 {
		return fmt.Errorf("provider encryption key is not configured")
	}

	encrypted, err := fernet.EncryptAndSign([]byte(req.Token), s.keys[0])
	if err != nil {
		return fmt.Errorf("failed to encrypt provider token: %w", err)
	}

	return s.providerRepo.SetConfig(ctx, req.Endpoint, string(encrypted))
}

// GetConfig returns the stored provider settings with the token decrypted.
// Returns apperrors.ErrProviderNotConfigured when nothing is stored.
func (s *ProviderService) GetConfig() (model.ProviderConfig, error) {
	endpoint, encryptedToken, updatedAt, err := s.providerRepo.GetConfig()
	if err != nil {
		return model.ProviderConfig{}, err
	}

	token := fernet.VerifyAndDecrypt([]byte(encryptedToken), 0, s.keys)
	if token == nil {
		return model.ProviderConfig{}, fmt.Errorf("failed to decrypt provider token")
	}

	return model.ProviderConfig{
		Endpoint:  endpoint,
		Token:     string(token),
		UpdatedAt: updatedAt,
	}, nil
}

// FetchToday queries the provider for the current spot price and ingests
// it as today's observation, overwriting an existing one.
func (s *ProviderService) FetchToday(ctx context.Context) (*model.RateObservation, error) {
	config, err := s.GetConfig()
	if err != nil {
		return nil, err
	}

	spot, err := s.client.FetchSpotPrice(ctx, config.Endpoint, config.Token)
	if err != nil {
		return nil, err
	}

	today := time.Now().UTC().Format("2006-01-02")
	return s.rateService.Ingest(ctx, today, spot.PricePerGram)
}
