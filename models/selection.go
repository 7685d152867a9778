package models

// Selection holds the currently selected option for each category
type Selection struct {
	Wheel CustomizerOption `json:"wheel"`
	Deck  CustomizerOption `json:"deck"`
	Truck CustomizerOption `json:"truck"`
	Bolt  CustomizerOption `json:"bolt"`
}

// Get returns the option selected for a category
func (s Selection) Get(category Category) CustomizerOption {
	switch category {
	case CategoryWheel:
		return s.Wheel
	case CategoryDeck:
		return s.Deck
	case CategoryTruck:
		return s.Truck
	case CategoryBolt:
		return s.Bolt
	}
	return CustomizerOption{}
}

// With returns a copy of the selection with one slot replaced
func (s Selection) With(category Category, option CustomizerOption) Selection {
	switch category {
	case CategoryWheel:
		s.Wheel = option
	case CategoryDeck:
		s.Deck = option
	case CategoryTruck:
		s.Truck = option
	case CategoryBolt:
		s.Bolt = option
	}
	return s
}

// UIDs returns the selected uid per category, keyed by the query parameter name
func (s Selection) UIDs() map[string]string {
	return map[string]string{
		string(CategoryWheel): s.Wheel.UID,
		string(CategoryDeck):  s.Deck.UID,
		string(CategoryTruck): s.Truck.UID,
		string(CategoryBolt):  s.Bolt.UID,
	}
}

// SelectOptionRequest represents the request body for changing one selection
// Example: {"uid": "deck-galaxy"}
type SelectOptionRequest struct {
	UID string `json:"uid"`
}
