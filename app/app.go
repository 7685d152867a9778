package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"board-customizer/app/controller"
	"board-customizer/app/router"
	"board-customizer/config"
	"board-customizer/customizer"
	"board-customizer/db"
	"board-customizer/repository"
	"board-customizer/service"
)

// App holds the wired application
type App struct {
	Handler  http.Handler
	sessions *service.SessionService
}

// Initialize initializes the application
func Initialize(ctx context.Context, cfg *config.Config) (*App, error) {
	// Initialize CMS client
	cms := service.NewCMSService(cfg.CMS, service.NewHTTPClient(cfg.CMS.Timeout))

	// Initialize database connection when configured
	var repo repository.CustomizerRepositoryInterface
	if cfg.Database.URL != "" {
		if err := db.InitDB(ctx, cfg.Database.URL); err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		repo = repository.NewCustomizerRepository()
	} else {
		log.Warn().Msg("⚠️  database.url not set, CMS sync is disabled")
	}

	var content service.ContentProvider = cms
	if cfg.Content.Source == config.SourceDatabase {
		content = service.NewDatabaseContentProvider(repo)
	}
	log.Info().Msgf("📚 Content source: %s", cfg.Content.Source)

	// Initialize Drive service for drive:// textures
	var drive service.DriveServiceInterface
	if cfg.Drive.CredentialsFile != "" {
		driveService, err := service.NewDriveService(ctx, cfg.Drive.CredentialsFile)
		if err != nil {
			return nil, err
		}
		drive = driveService
	}

	// Initialize texture proxy
	resolver := customizer.TextureResolver{}
	var textures service.TextureServiceInterface
	var textureController *controller.TextureController
	if cfg.Textures.Proxy {
		if err := service.EnsureCacheDir(cfg.Textures.CacheDir); err != nil {
			return nil, err
		}
		textureService := service.NewTextureService(cfg.Textures, service.NewHTTPClient(0), drive)
		resolver = textureService.Resolver()
		textures = textureService
		textureController = controller.NewTextureController(textureService)
	}

	// Initialize snapshot renderer
	var snapshots service.SnapshotServiceInterface
	if cfg.Snapshot.Enabled {
		snapshots = service.NewSnapshotService(cfg.Snapshot, cfg.Server.BaseURL)
	}

	pages, err := service.NewPageService()
	if err != nil {
		return nil, err
	}

	sessions := service.NewSessionService(cfg.Sessions.TTL, controller.BuildPath, resolver)

	// Create controllers
	controllers := &router.Controllers{
		Customizer: controller.NewCustomizerController(content, sessions, pages, snapshots, resolver, cfg.CMS.Timeout),
		Session:    controller.NewSessionController(sessions),
		Texture:    textureController,
	}
	if repo != nil {
		syncService := service.NewSyncService(cms, repo, textures, cfg.Textures.WarmupLimit)
		controllers.Sync = controller.NewSyncController(syncService)
	}

	if missing := missingAssets(cfg.Server.StaticDir); len(missing) > 0 {
		log.Warn().Strs("missing", missing).Msgf("⚠️  Static assets not found in %s, fallback textures will 404", cfg.Server.StaticDir)
	}

	handler := router.SetupRoutes(controllers, router.Options{
		StaticDir:       cfg.Server.StaticDir,
		AllowAllOrigins: cfg.Server.AllowAllOrigins,
	})

	return &App{
		Handler:  handler,
		sessions: sessions,
	}, nil
}

// Run starts background work and blocks until ctx is cancelled
func (a *App) Run(ctx context.Context) {
	a.sessions.Run(ctx)
}

// Close releases the database connection
func (a *App) Close() {
	if err := db.CloseDB(); err != nil {
		log.Error().Err(err).Msg("❌ Failed to close database")
	}
}
