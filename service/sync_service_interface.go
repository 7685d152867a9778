package service

import (
	"context"

	"board-customizer/models"
)

// SyncServiceInterface defines the contract for synchronization operations
type SyncServiceInterface interface {
	// SyncCustomizer mirrors the CMS document into PostgreSQL and warms the texture cache:
	// inserted = new rows, updated = existing rows refreshed, deleted = rows no longer in the CMS,
	// total = options seen in the CMS, warmed = textures cached
	SyncCustomizer(ctx context.Context) (models.SyncStats, error)
}
