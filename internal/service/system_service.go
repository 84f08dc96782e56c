package service

import (
	"database/sql"
	"fmt"

	"github.com/jaidev/gold-tracker-backend/internal/database"
	"github.com/jaidev/gold-tracker-backend/internal/model"
	"github.com/jaidev/gold-tracker-backend/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	db *sql.DB
}

// NewSystemService creates a new SystemService
func NewSystemService(db *sql.DB) *SystemService {
	return &SystemService{
		db: db,
	}
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

// CheckVersion returns the application version and current schema version.
func (s *SystemService) CheckVersion() (model.VersionInfo, error) {
	schemaVersion, err := database.SchemaVersion(s.db)
	if err != nil {
		return model.VersionInfo{}, err
	}

	return model.VersionInfo{
		AppVersion: version.Version,
		DbVersion:  fmt.Sprintf("%d", schemaVersion),
	}, nil
}
