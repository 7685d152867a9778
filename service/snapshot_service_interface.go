package service

import "context"

// SnapshotServiceInterface defines the contract for board preview snapshots
type SnapshotServiceInterface interface {
	Capture(ctx context.Context, pagePath string) ([]byte, error)
}
