package customizer

import (
	"net/url"
	"sync"

	"board-customizer/models"
)

var headings = map[models.Category]string{
	models.CategoryWheel: "Wheels",
	models.CategoryDeck:  "Decks",
	models.CategoryTruck: "Trucks",
	models.CategoryBolt:  "Bolts",
}

// BuildControls builds the swatch groups for a selection
// Only options present in the document lists are offered
func BuildControls(doc *models.BoardCustomizer, selection models.Selection, basePath string, textures TextureResolver) []models.ControlGroup {
	groups := make([]models.ControlGroup, 0, len(models.Categories))
	for _, category := range models.Categories {
		current := selection.Get(category)
		options := doc.OptionsFor(category)

		group := models.ControlGroup{
			Category: category,
			Heading:  headings[category],
			Swatches: make([]models.Swatch, 0, len(options)),
		}
		for _, opt := range options {
			swatch := models.Swatch{
				UID:      opt.UID,
				Label:    opt.Label,
				Selected: opt.UID == current.UID,
				Href:     SelectionHref(basePath, selection.With(category, opt)),
			}
			if category == models.CategoryTruck || category == models.CategoryBolt {
				swatch.Color = Color(opt, DefaultColor(category))
			} else if u, ok := textures.ResolveImage(opt.Texture, SizeThumb); ok {
				swatch.ImageURL = u
			}
			group.Swatches = append(group.Swatches, swatch)
		}
		groups = append(groups, group)
	}
	return groups
}

// SelectionHref encodes a selection as query parameters on basePath
// Fallback options are left out so they resolve again on the next load
func SelectionHref(basePath string, selection models.Selection) string {
	q := url.Values{}
	for _, category := range models.Categories {
		opt := selection.Get(category)
		if opt.UID == "" || IsFallback(opt) {
			continue
		}
		q.Set(string(category), opt.UID)
	}
	if len(q) == 0 {
		return basePath
	}
	return basePath + "?" + q.Encode()
}

// Controls observes a Store and keeps the swatch groups in sync with it
type Controls struct {
	doc      *models.BoardCustomizer
	basePath string
	textures TextureResolver

	mu          sync.RWMutex
	groups      []models.ControlGroup
	unsubscribe func()
}

// NewControls builds the initial swatch groups and subscribes to the store
func NewControls(store *Store, doc *models.BoardCustomizer, basePath string, textures TextureResolver) *Controls {
	c := &Controls{
		doc:      doc,
		basePath: basePath,
		textures: textures,
	}
	c.groups = BuildControls(doc, store.Selection(), basePath, textures)
	c.unsubscribe = store.Subscribe(func(change Change) {
		groups := BuildControls(c.doc, change.Selection, c.basePath, c.textures)
		c.mu.Lock()
		c.groups = groups
		c.mu.Unlock()
	})
	return c
}

// Groups returns the current swatch groups
func (c *Controls) Groups() []models.ControlGroup {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.groups
}

// Close detaches the controls from its store
func (c *Controls) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
}
