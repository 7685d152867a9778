package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"board-customizer/db"
	"board-customizer/models"
)

// ErrNoDatabase is returned when the repository is used without a configured database
var ErrNoDatabase = errors.New("database not configured")

// Option list names as stored in customizer_options.list
const (
	listWheels   = "wheels"
	listDecks    = "decks"
	listTextures = "textures"
)

// CustomizerRepository handles database operations for the mirrored option lists
// Implements CustomizerRepositoryInterface
type CustomizerRepository struct{}

// NewCustomizerRepository creates a new CustomizerRepository
func NewCustomizerRepository() *CustomizerRepository {
	return &CustomizerRepository{}
}

// Ensure CustomizerRepository implements CustomizerRepositoryInterface
var _ CustomizerRepositoryInterface = (*CustomizerRepository)(nil)

func optionLists(doc *models.BoardCustomizer) map[string][]models.CustomizerOption {
	return map[string][]models.CustomizerOption{
		listWheels:   doc.Wheels,
		listDecks:    doc.Decks,
		listTextures: doc.Textures,
	}
}

// GetBoardCustomizer rebuilds the customizer document from the mirrored rows
func (r *CustomizerRepository) GetBoardCustomizer(ctx context.Context) (*models.BoardCustomizer, error) {
	if db.DB == nil {
		return nil, ErrNoDatabase
	}

	query := `
		SELECT document_id, list, uid, label, texture_url, texture_alt, width, height, color
		FROM customizer_options
		ORDER BY list ASC, position ASC, id ASC
	`

	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		log.Error().Err(err).Msg("❌ Error querying customizer options")
		return nil, fmt.Errorf("failed to query customizer options: %w", err)
	}
	defer rows.Close()

	doc := &models.BoardCustomizer{
		Wheels:   []models.CustomizerOption{},
		Decks:    []models.CustomizerOption{},
		Textures: []models.CustomizerOption{},
	}
	for rows.Next() {
		var documentID, list string
		var opt models.CustomizerOption
		err := rows.Scan(
			&documentID,
			&list,
			&opt.UID,
			&opt.Label,
			&opt.Texture.URL,
			&opt.Texture.Alt,
			&opt.Texture.Dimensions.Width,
			&opt.Texture.Dimensions.Height,
			&opt.Color,
		)
		if err != nil {
			log.Error().Err(err).Msg("❌ Error scanning customizer option")
			continue
		}
		if doc.ID == "" {
			doc.ID = documentID
		}

		switch list {
		case listWheels:
			doc.Wheels = append(doc.Wheels, opt)
		case listDecks:
			doc.Decks = append(doc.Decks, opt)
		case listTextures:
			doc.Textures = append(doc.Textures, opt)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate customizer options: %w", err)
	}

	log.Debug().Msgf("✓ Loaded %d wheels, %d decks, %d textures from database", len(doc.Wheels), len(doc.Decks), len(doc.Textures))
	return doc, nil
}

// ReplaceBoardCustomizer upserts every option of the document and deletes rows no longer present
// Runs in a single transaction so readers never see a half-synced mirror
func (r *CustomizerRepository) ReplaceBoardCustomizer(ctx context.Context, doc *models.BoardCustomizer) (inserted int, updated int, deleted int, err error) {
	if db.DB == nil {
		return 0, 0, 0, ErrNoDatabase
	}

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				log.Error().Err(rbErr).Msg("❌ Rollback failed")
			}
		}
	}()

	upsert := `
		INSERT INTO customizer_options (
			document_id, list, uid, label, texture_url, texture_alt, width, height, color, position, synced_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now())
		ON CONFLICT (list, uid) DO UPDATE SET
			document_id = EXCLUDED.document_id,
			label = EXCLUDED.label,
			texture_url = EXCLUDED.texture_url,
			texture_alt = EXCLUDED.texture_alt,
			width = EXCLUDED.width,
			height = EXCLUDED.height,
			color = EXCLUDED.color,
			position = EXCLUDED.position,
			synced_at = now()
		RETURNING (xmax = 0) AS inserted
	`

	for list, options := range optionLists(doc) {
		uids := make([]string, 0, len(options))
		for position, opt := range options {
			var wasInserted bool
			err = tx.QueryRowContext(ctx, upsert,
				doc.ID,
				list,
				opt.UID,
				opt.Label,
				opt.Texture.URL,
				opt.Texture.Alt,
				opt.Texture.Dimensions.Width,
				opt.Texture.Dimensions.Height,
				opt.Color,
				position,
			).Scan(&wasInserted)
			if err != nil {
				return 0, 0, 0, fmt.Errorf("failed to upsert %s option %s: %w", list, opt.UID, err)
			}
			if wasInserted {
				inserted++
			} else {
				updated++
			}
			uids = append(uids, opt.UID)
		}

		result, execErr := tx.ExecContext(ctx,
			`DELETE FROM customizer_options WHERE list = $1 AND NOT (uid = ANY($2))`,
			list, uids,
		)
		if execErr != nil {
			err = fmt.Errorf("failed to delete stale %s options: %w", list, execErr)
			return 0, 0, 0, err
		}
		if n, raErr := result.RowsAffected(); raErr == nil {
			deleted += int(n)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, 0, 0, fmt.Errorf("failed to commit sync: %w", err)
	}

	log.Info().Msgf("💾 Customizer mirror updated: %d inserted, %d updated, %d deleted", inserted, updated, deleted)
	return inserted, updated, deleted, nil
}
