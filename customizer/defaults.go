// Package customizer holds the board builder state: default selection
// resolution, the selection store and its observers (3D preview and
// controls panel), camera framing and texture fallbacks.
package customizer

import "board-customizer/models"

// Fallback assets used when the CMS has no options or a reference cannot be resolved
const (
	DefaultWheelTexture = "/skateboard/SkateWheel1.png"
	DefaultDeckTexture  = "/skateboard/Deck.webp"
	DefaultTruckColor   = "#6F6E6A"
	DefaultBoltColor    = "#6F6E6A"

	EnvironmentColor = "#3B3A3A"
	EnvironmentFile  = "/hdr/warehouse-512.hdr"
	FloorNormalMap   = "/concrete-normal.avif"

	FallbackUID   = "default"
	FallbackLabel = "Default"
)

// StaticAssets lists the files the page loads from the static directory
func StaticAssets() []string {
	return []string{DefaultWheelTexture, DefaultDeckTexture, EnvironmentFile, FloorNormalMap}
}

// FallbackOption returns the built-in option for a category with an empty list
func FallbackOption(category models.Category) models.CustomizerOption {
	opt := models.CustomizerOption{UID: FallbackUID, Label: FallbackLabel}
	switch category {
	case models.CategoryWheel:
		opt.Texture = models.ImageField{URL: DefaultWheelTexture}
	case models.CategoryDeck:
		opt.Texture = models.ImageField{URL: DefaultDeckTexture}
	case models.CategoryTruck:
		opt.Color = DefaultTruckColor
	case models.CategoryBolt:
		opt.Color = DefaultBoltColor
	}
	return opt
}

// IsFallback reports whether an option is a built-in fallback
func IsFallback(opt models.CustomizerOption) bool {
	return opt.UID == FallbackUID
}
