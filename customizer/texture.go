package customizer

import (
	"strings"

	"board-customizer/models"
	"board-customizer/utils"
)

// Texture sizes understood by the texture proxy
const (
	SizeThumb  = "thumb"
	SizeMedium = "medium"
	SizeFull   = "full"
)

// URLRewriter maps a resolved image source to the URL the browser should load
type URLRewriter func(src string, size string) string

// TextureResolver turns option references into renderable texture URLs and colors
type TextureResolver struct {
	// Rewrite is optional; without it drive:// references are not renderable
	Rewrite URLRewriter
}

// ResolveImage resolves an image field to a browser URL
func (r TextureResolver) ResolveImage(field models.ImageField, size string) (string, bool) {
	src, ok := utils.ImageSrc(field)
	if !ok {
		return "", false
	}
	if r.Rewrite == nil {
		if strings.HasPrefix(src, utils.DriveScheme) {
			return "", false
		}
		return src, true
	}
	out := r.Rewrite(src, size)
	return out, out != ""
}

// TextureURLs resolves every texture of a list, skipping unresolvable entries
func (r TextureResolver) TextureURLs(options []models.CustomizerOption) []string {
	urls := make([]string, 0, len(options))
	for _, opt := range options {
		if u, ok := r.ResolveImage(opt.Texture, SizeFull); ok {
			urls = append(urls, u)
		}
	}
	return urls
}

// TextureURL resolves the texture of the selected option
// An option with a texture that fails to resolve gets the default texture
// An option without a texture gets the first list texture, then the default
func (r TextureResolver) TextureURL(selected models.CustomizerOption, listURLs []string, fallback string) string {
	if !selected.Texture.IsEmpty() {
		if u, ok := r.ResolveImage(selected.Texture, SizeFull); ok {
			return u
		}
		return fallback
	}
	if len(listURLs) > 0 && listURLs[0] != "" {
		return listURLs[0]
	}
	return fallback
}

// Color resolves the finish color of a truck or bolt option
func Color(selected models.CustomizerOption, fallback string) string {
	if c := utils.NormalizeHexColor(selected.Color); c != "" {
		return c
	}
	return fallback
}

// DefaultColor returns the fallback color of a colored category
func DefaultColor(category models.Category) string {
	switch category {
	case models.CategoryTruck:
		return DefaultTruckColor
	case models.CategoryBolt:
		return DefaultBoltColor
	}
	return ""
}
