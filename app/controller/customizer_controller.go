package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"board-customizer/customizer"
	"board-customizer/models"
	"board-customizer/service"
)

const (
	// BuildPath is the customizer page route
	BuildPath = "/build"
	// SnapshotPath is the PNG preview route
	SnapshotPath = "/build/snapshot.png"

	pageTitle = "Build your board"
)

// CustomizerController handles the customizer page and its content
type CustomizerController struct {
	content        service.ContentProvider
	sessions       service.SessionServiceInterface
	pages          *service.PageService
	snapshots      service.SnapshotServiceInterface
	textures       customizer.TextureResolver
	contentTimeout time.Duration
}

// NewCustomizerController creates a new CustomizerController
// snapshots may be nil when snapshots are disabled
func NewCustomizerController(
	content service.ContentProvider,
	sessions service.SessionServiceInterface,
	pages *service.PageService,
	snapshots service.SnapshotServiceInterface,
	textures customizer.TextureResolver,
	contentTimeout time.Duration,
) *CustomizerController {
	return &CustomizerController{
		content:        content,
		sessions:       sessions,
		pages:          pages,
		snapshots:      snapshots,
		textures:       textures,
		contentTimeout: contentTimeout,
	}
}

func (c *CustomizerController) fetchContent(ctx context.Context) (*models.BoardCustomizer, error) {
	if c.contentTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.contentTimeout)
		defer cancel()
	}
	return c.content.GetBoardCustomizer(ctx)
}

// Index handles GET / by redirecting to the customizer
func (c *CustomizerController) Index(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, BuildPath, http.StatusFound)
}

// BuildPage handles GET /build
// Query parameters wheel, deck, truck and bolt preselect options by uid
func (c *CustomizerController) BuildPage(w http.ResponseWriter, r *http.Request) {
	doc, err := c.fetchContent(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("❌ Failed to load customizer content")
		c.renderError(w, http.StatusBadGateway, "We couldn't load the board builder. Please try again in a moment.")
		return
	}

	query := r.URL.Query()
	page := models.BuildPage{Title: pageTitle}

	if query.Get("snapshot") == "1" {
		page.Snapshot = true
		page.Scene = customizer.BuildScene(customizer.SceneInput{
			Doc:       doc,
			Selection: customizer.ResolveSelection(doc, query),
			Textures:  c.textures,
		})
	} else {
		sess := c.sessions.Create(doc, query)
		resp := c.sessions.Response(sess)
		page.SessionID = sess.ID
		page.Selection = resp.Selection
		page.Scene = resp.Scene
		page.Controls = resp.Controls
		page.APIPath = "/api/sessions/" + sess.ID
		page.SocketPath = page.APIPath + "/ws"
		if c.snapshots != nil {
			page.SnapshotURL = customizer.SelectionHref(SnapshotPath, resp.Selection)
		}
	}

	html, err := c.pages.RenderBuildPage(page)
	if err != nil {
		log.Error().Err(err).Msg("❌ Failed to render customizer page")
		c.renderError(w, http.StatusInternalServerError, "Something went wrong while rendering the page.")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(html)
}

// GetCustomizer handles GET /api/customizer
// Returns the option lists as loaded from the content source
func (c *CustomizerController) GetCustomizer(w http.ResponseWriter, r *http.Request) {
	doc, err := c.fetchContent(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("❌ Failed to load customizer content")
		writeError(w, http.StatusBadGateway, "customizer content unavailable")
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// Snapshot handles GET /build/snapshot.png
// Renders the board for the query's selection with headless Chrome
func (c *CustomizerController) Snapshot(w http.ResponseWriter, r *http.Request) {
	if c.snapshots == nil {
		http.Error(w, "Snapshots are disabled", http.StatusNotFound)
		return
	}

	doc, err := c.fetchContent(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("❌ Failed to load customizer content")
		http.Error(w, "Customizer content unavailable", http.StatusBadGateway)
		return
	}

	// key the capture on the resolved selection so unknown uids share the default render
	pagePath := customizer.SelectionHref(BuildPath, customizer.ResolveSelection(doc, r.URL.Query()))
	png, err := c.snapshots.Capture(r.Context(), pagePath)
	if err != nil {
		log.Error().Err(err).Msgf("❌ Snapshot failed for %s", pagePath)
		status := http.StatusBadGateway
		if errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusGatewayTimeout
		}
		http.Error(w, "Failed to render snapshot", status)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=600")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func (c *CustomizerController) renderError(w http.ResponseWriter, status int, message string) {
	html, err := c.pages.RenderErrorPage(models.ErrorPage{
		Title:   "Board builder unavailable",
		Status:  status,
		Message: message,
	})
	if err != nil {
		log.Error().Err(err).Msg("❌ Failed to render error page")
		http.Error(w, message, status)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(html)
}
