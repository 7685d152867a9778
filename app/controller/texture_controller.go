package controller

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"board-customizer/customizer"
	"board-customizer/service"
)

// TextureController serves resized textures through the proxy
type TextureController struct {
	textures service.TextureServiceInterface
}

// NewTextureController creates a new TextureController
func NewTextureController(textures service.TextureServiceInterface) *TextureController {
	return &TextureController{textures: textures}
}

// GetTexture handles GET /textures?src=<url>&size=thumb|medium|full
func (c *TextureController) GetTexture(w http.ResponseWriter, r *http.Request) {
	src := r.URL.Query().Get("src")
	if src == "" {
		http.Error(w, "src parameter is required", http.StatusBadRequest)
		return
	}
	size := r.URL.Query().Get("size")
	if size == "" {
		size = customizer.SizeFull
	}
	if !service.ValidSize(size) {
		http.Error(w, "size must be thumb, medium or full", http.StatusBadRequest)
		return
	}

	data, contentType, err := c.textures.GetTexture(r.Context(), src, size)
	if err != nil {
		if errors.Is(err, service.ErrTextureNotAllowed) {
			http.Error(w, "Texture source not allowed", http.StatusForbidden)
			return
		}
		log.Error().Err(err).Msgf("❌ Failed to serve texture %s", src)
		http.Error(w, "Failed to load texture", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
