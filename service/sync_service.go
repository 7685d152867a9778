package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"board-customizer/models"
	"board-customizer/repository"
	"board-customizer/utils"
)

// SyncService handles synchronization between the CMS and PostgreSQL
// Implements SyncServiceInterface
type SyncService struct {
	cms         ContentProvider
	repository  repository.CustomizerRepositoryInterface
	textures    TextureServiceInterface
	warmupLimit int
}

// NewSyncService creates a new SyncService
// textures may be nil when the texture proxy is disabled
func NewSyncService(cms ContentProvider, repo repository.CustomizerRepositoryInterface, textures TextureServiceInterface, warmupLimit int) *SyncService {
	return &SyncService{
		cms:         cms,
		repository:  repo,
		textures:    textures,
		warmupLimit: warmupLimit,
	}
}

// Ensure SyncService implements SyncServiceInterface
var _ SyncServiceInterface = (*SyncService)(nil)

// SyncCustomizer pulls the singleton from the CMS and mirrors it into PostgreSQL
func (s *SyncService) SyncCustomizer(ctx context.Context) (models.SyncStats, error) {
	log.Info().Msg("🔄 Starting customizer synchronization")

	doc, err := s.cms.GetBoardCustomizer(ctx)
	if err != nil {
		return models.SyncStats{}, fmt.Errorf("failed to fetch customizer from CMS: %w", err)
	}

	stats := models.SyncStats{
		Total: len(doc.Wheels) + len(doc.Decks) + len(doc.Textures),
	}
	log.Info().Msgf("📦 Processing %d options from the CMS", stats.Total)

	stats.Inserted, stats.Updated, stats.Deleted, err = s.repository.ReplaceBoardCustomizer(ctx, doc)
	if err != nil {
		return models.SyncStats{}, fmt.Errorf("failed to mirror customizer: %w", err)
	}

	if s.textures != nil {
		stats.Warmed, err = s.textures.Warm(ctx, TextureSources(doc), s.warmupLimit)
		if err != nil {
			log.Warn().Err(err).Msg("⚠️  Texture warmup incomplete")
		}
	}

	log.Info().Msgf("✓ Synchronization completed: %d inserted, %d updated, %d deleted, %d warmed (total: %d)",
		stats.Inserted, stats.Updated, stats.Deleted, stats.Warmed, stats.Total)
	return stats, nil
}

// TextureSources returns the distinct remote texture sources of the wheel and deck lists
func TextureSources(doc *models.BoardCustomizer) []string {
	seen := make(map[string]bool)
	var srcs []string
	for _, options := range [][]models.CustomizerOption{doc.Wheels, doc.Decks} {
		for _, opt := range options {
			src, ok := utils.ImageSrc(opt.Texture)
			if !ok || seen[src] || strings.HasPrefix(src, "/") {
				continue
			}
			seen[src] = true
			srcs = append(srcs, src)
		}
	}
	return srcs
}
