package customizer

import (
	"net/url"
	"strings"

	"board-customizer/models"
)

// Defaults carries the optional initial option of each category
// A nil entry falls back to the first option of the list, then to FallbackOption
type Defaults struct {
	Wheel *models.CustomizerOption
	Deck  *models.CustomizerOption
	Truck *models.CustomizerOption
	Bolt  *models.CustomizerOption
}

func (d Defaults) get(category models.Category) *models.CustomizerOption {
	switch category {
	case models.CategoryWheel:
		return d.Wheel
	case models.CategoryDeck:
		return d.Deck
	case models.CategoryTruck:
		return d.Truck
	case models.CategoryBolt:
		return d.Bolt
	}
	return nil
}

func (d *Defaults) set(category models.Category, opt *models.CustomizerOption) {
	switch category {
	case models.CategoryWheel:
		d.Wheel = opt
	case models.CategoryDeck:
		d.Deck = opt
	case models.CategoryTruck:
		d.Truck = opt
	case models.CategoryBolt:
		d.Bolt = opt
	}
}

// Complete fills every missing default from the document lists
func (d Defaults) Complete(doc *models.BoardCustomizer) models.Selection {
	var sel models.Selection
	for _, category := range models.Categories {
		if opt := d.get(category); opt != nil {
			sel = sel.With(category, *opt)
			continue
		}
		sel = sel.With(category, ResolveOption(category, doc.OptionsFor(category), ""))
	}
	return sel
}

// ResolveOption picks the option named by uid, else the first entry, else the fallback
func ResolveOption(category models.Category, options []models.CustomizerOption, uid string) models.CustomizerOption {
	if uid != "" {
		for _, opt := range options {
			if opt.UID == uid {
				return opt
			}
		}
	}
	if len(options) > 0 {
		return options[0]
	}
	return FallbackOption(category)
}

// DefaultsFromQuery picks the options named by the wheel/deck/truck/bolt query parameters
// Unknown or absent identifiers leave the category unset
func DefaultsFromQuery(doc *models.BoardCustomizer, query url.Values) Defaults {
	var d Defaults
	for _, category := range models.Categories {
		uid := strings.TrimSpace(query.Get(string(category)))
		if uid == "" {
			continue
		}
		if opt, ok := doc.FindOption(category, uid); ok {
			d.set(category, &opt)
		}
	}
	return d
}

// ResolveSelection computes the initial selection for a page load
func ResolveSelection(doc *models.BoardCustomizer, query url.Values) models.Selection {
	return DefaultsFromQuery(doc, query).Complete(doc)
}
