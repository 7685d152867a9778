package service

import (
	"context"
	"errors"
	"fmt"

	"board-customizer/models"
	"board-customizer/repository"
)

// ErrContentUnavailable is returned when the customizer document cannot be loaded
var ErrContentUnavailable = errors.New("customizer content unavailable")

// ContentProvider loads the board customizer document
type ContentProvider interface {
	GetBoardCustomizer(ctx context.Context) (*models.BoardCustomizer, error)
}

// DatabaseContentProvider reads the document from the Postgres mirror
// Implements ContentProvider
type DatabaseContentProvider struct {
	repository repository.CustomizerRepositoryInterface
}

// NewDatabaseContentProvider creates a new DatabaseContentProvider
func NewDatabaseContentProvider(repo repository.CustomizerRepositoryInterface) *DatabaseContentProvider {
	return &DatabaseContentProvider{repository: repo}
}

// Ensure DatabaseContentProvider implements ContentProvider
var _ ContentProvider = (*DatabaseContentProvider)(nil)

// GetBoardCustomizer returns the mirrored document
func (p *DatabaseContentProvider) GetBoardCustomizer(ctx context.Context) (*models.BoardCustomizer, error) {
	doc, err := p.repository.GetBoardCustomizer(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrContentUnavailable, err)
	}
	return doc, nil
}
