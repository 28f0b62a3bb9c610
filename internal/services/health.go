package services

import (
	"context"

	"estatedesk/internal/database"
)

// HealthService implements the health check
type HealthService struct{}

// NewHealthService creates a new health service
func NewHealthService() *HealthService {
	return &HealthService{}
}

// HealthResult reports service and database status
type HealthResult struct {
	Status   string `json:"status"`
	Service  string `json:"service"`
	Database string `json:"database"`
}

// Check reports overall health including a database ping
func (s *HealthService) Check(ctx context.Context) *HealthResult {
	result := &HealthResult{
		Status:   "healthy",
		Service:  "EstateDesk API",
		Database: "up",
	}
	if err := database.HealthCheck(); err != nil {
		result.Status = "degraded"
		result.Database = "down"
	}
	return result
}
