package service

import (
	"database/sql"
	"runtime"

	"github.com/arambaladev/StockPortfolio/internal/database"
	"github.com/arambaladev/StockPortfolio/internal/model"
)

// SystemService handles health and version reporting.
type SystemService struct {
	db *sql.DB
}

// NewSystemService creates a new SystemService with the provided database connection.
func NewSystemService(db *sql.DB) *SystemService {
	return &SystemService{db: db}
}

// Health reports application and database health.
func (s *SystemService) Health() model.HealthStatus {
	status := model.HealthStatus{Status: "ok", Database: "ok"}
	if err := database.HealthCheck(s.db); err != nil {
		status.Status = "degraded"
		status.Database = err.Error()
	}
	return status
}

// Version reports the application version.
func (s *SystemService) Version() model.VersionInfo {
	return model.VersionInfo{
		Version:   model.Version,
		GoVersion: runtime.Version(),
	}
}
