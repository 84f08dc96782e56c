package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jaidev/gold-tracker-backend/internal/apperrors"
)

// ProviderRepository provides data access methods for the provider_config
// table. The token column holds the fernet-encrypted access token; callers
// handle encryption and decryption.
type ProviderRepository struct {
	db *sql.DB
}

// NewProviderRepository creates a new ProviderRepository with the provided database connection.
func NewProviderRepository(db *sql.DB) *ProviderRepository {
	return &ProviderRepository{db: db}
}

// SetConfig stores the provider endpoint and encrypted token, replacing any
// prior configuration.
func (r *ProviderRepository) SetConfig(ctx context.Context, endpoint, encryptedToken string) error {
	query := `
		INSERT INTO provider_config (id, endpoint, token_encrypted, updated_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			endpoint = excluded.endpoint,
			token_encrypted = excluded.token_encrypted,
			updated_at = excluded.updated_at
	`

	_, err := r.db.ExecContext(ctx, query, endpoint, encryptedToken, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to store provider config: %w", err)
	}

	return nil
}

// GetConfig retrieves the provider endpoint, encrypted token, and last
// update time. Returns apperrors.ErrProviderNotConfigured when no
// configuration has been stored.
func (r *ProviderRepository) GetConfig() (endpoint, encryptedToken string, updatedAt time.Time, err error) {
	var updatedAtStr string

	err = r.db.QueryRow(`SELECT endpoint, token_encrypted, updated_at FROM provider_config WHERE id = 1`).
		Scan(&endpoint, &encryptedToken, &updatedAtStr)
	if errors.Is(err, sql.ErrNoRows) {
		return "", "", time.Time{}, apperrors.ErrProviderNotConfigured
	}
	if err != nil {
		return "", "", time.Time{}, fmt.Errorf("failed to query provider config: %w", err)
	}

	updatedAt, err = ParseTime(updatedAtStr)
	if err != nil {
		return "", "", time.Time{}, err
	}

	return endpoint, encryptedToken, updatedAt, nil
}
