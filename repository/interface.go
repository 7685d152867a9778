package repository

import (
	"context"

	"board-customizer/models"
)

// CustomizerRepositoryInterface defines the contract for the CMS mirror
type CustomizerRepositoryInterface interface {
	GetBoardCustomizer(ctx context.Context) (*models.BoardCustomizer, error)
	ReplaceBoardCustomizer(ctx context.Context, doc *models.BoardCustomizer) (inserted int, updated int, deleted int, err error)
}
