package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog/log"
)

// DB holds the database connection
// It stays nil when no database is configured
var DB *sql.DB

// schema mirrors the CMS option lists; list is one of wheels, decks, textures
const schema = `
CREATE TABLE IF NOT EXISTS customizer_options (
	id          BIGSERIAL PRIMARY KEY,
	document_id TEXT NOT NULL DEFAULT '',
	list        TEXT NOT NULL CHECK (list IN ('wheels', 'decks', 'textures')),
	uid         TEXT NOT NULL,
	label       TEXT NOT NULL DEFAULT '',
	texture_url TEXT NOT NULL DEFAULT '',
	texture_alt TEXT NOT NULL DEFAULT '',
	width       INTEGER NOT NULL DEFAULT 0,
	height      INTEGER NOT NULL DEFAULT 0,
	color       TEXT NOT NULL DEFAULT '',
	position    INTEGER NOT NULL DEFAULT 0,
	synced_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (list, uid)
);

CREATE INDEX IF NOT EXISTS idx_customizer_options_list ON customizer_options(list, position);
`

// InitDB opens and pings the database, then applies the schema
func InitDB(ctx context.Context, connStr string) error {
	if connStr == "" {
		return fmt.Errorf("database connection string is empty")
	}

	conn, err := sql.Open("pgx", connStr)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}
	conn.SetMaxOpenConns(10)
	conn.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := conn.ExecContext(ctx, schema); err != nil {
		conn.Close()
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	DB = conn
	log.Info().Msg("✓ Database connection established successfully")
	return nil
}

// CloseDB closes the database connection
func CloseDB() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
