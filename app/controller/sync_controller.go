package controller

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"board-customizer/repository"
	"board-customizer/service"
)

// SyncController handles the CMS to database synchronization
type SyncController struct {
	syncService service.SyncServiceInterface
}

// NewSyncController creates a new SyncController
func NewSyncController(syncService service.SyncServiceInterface) *SyncController {
	return &SyncController{syncService: syncService}
}

// Sync handles POST /admin/customizer/sync
// Returns {"inserted", "updated", "deleted", "total", "warmed"}
func (c *SyncController) Sync(w http.ResponseWriter, r *http.Request) {
	stats, err := c.syncService.SyncCustomizer(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("❌ Customizer sync failed")
		switch {
		case errors.Is(err, service.ErrContentUnavailable):
			writeError(w, http.StatusBadGateway, err.Error())
		case errors.Is(err, repository.ErrNoDatabase):
			writeError(w, http.StatusServiceUnavailable, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
