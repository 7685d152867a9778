package models

// Category identifies one customizable part of the board
type Category string

const (
	CategoryWheel Category = "wheel"
	CategoryDeck  Category = "deck"
	CategoryTruck Category = "truck"
	CategoryBolt  Category = "bolt"
)

// Categories lists every category in display order
var Categories = []Category{CategoryWheel, CategoryDeck, CategoryTruck, CategoryBolt}

// ParseCategory converts a raw string (e.g. from a URL path) into a Category
func ParseCategory(s string) (Category, bool) {
	switch Category(s) {
	case CategoryWheel, CategoryDeck, CategoryTruck, CategoryBolt:
		return Category(s), true
	}
	return "", false
}

// ImageDimensions holds the pixel size reported by the CMS for an image
type ImageDimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ImageField represents an image reference coming from the CMS
// An empty URL means the option carries no texture
type ImageField struct {
	URL        string          `json:"url,omitempty"`
	Alt        string          `json:"alt,omitempty"`
	Dimensions ImageDimensions `json:"dimensions"`
}

// IsEmpty reports whether the field references no image
func (f ImageField) IsEmpty() bool {
	return f.URL == ""
}

// CustomizerOption represents one selectable item (a wheel design, a deck design, a truck/bolt finish)
type CustomizerOption struct {
	UID     string     `json:"uid"`
	Label   string     `json:"label"`
	Texture ImageField `json:"texture"`
	Color   string     `json:"color,omitempty"` // Hex color, used by truck and bolt finishes
}

// BoardCustomizer is the "board_customizer" singleton document
// Textures is the shared list used for both truck and bolt finishes
type BoardCustomizer struct {
	ID                  string             `json:"id"`
	LastPublicationDate string             `json:"lastPublicationDate,omitempty"`
	Wheels              []CustomizerOption `json:"wheels"`
	Decks               []CustomizerOption `json:"decks"`
	Textures            []CustomizerOption `json:"textures"`
}

// OptionsFor returns the option list a category selects from
func (b *BoardCustomizer) OptionsFor(category Category) []CustomizerOption {
	if b == nil {
		return nil
	}
	switch category {
	case CategoryWheel:
		return b.Wheels
	case CategoryDeck:
		return b.Decks
	case CategoryTruck, CategoryBolt:
		return b.Textures
	}
	return nil
}

// FindOption looks up an option by uid inside a category's list
func (b *BoardCustomizer) FindOption(category Category, uid string) (CustomizerOption, bool) {
	for _, opt := range b.OptionsFor(category) {
		if opt.UID == uid {
			return opt, true
		}
	}
	return CustomizerOption{}, false
}
