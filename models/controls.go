package models

// Swatch represents one selectable option rendered by the controls panel
type Swatch struct {
	UID      string `json:"uid"`
	Label    string `json:"label"`
	ImageURL string `json:"imageUrl,omitempty"`
	Color    string `json:"color,omitempty"`
	Selected bool   `json:"selected"`
	Href     string `json:"href"`
}

// ControlGroup is the list of swatches for one category
type ControlGroup struct {
	Category Category `json:"category"`
	Heading  string   `json:"heading"`
	Swatches []Swatch `json:"swatches"`
}

// SessionResponse represents the state of a customizer session
// Example response:
// {
//   "id": "2b1c...",
//   "selection": {"wheel": {...}, "deck": {...}, "truck": {...}, "bolt": {...}},
//   "scene": {...},
//   "controls": [{"category": "wheel", "heading": "Wheels", "swatches": [...]}]
// }
type SessionResponse struct {
	ID        string         `json:"id"`
	Selection Selection      `json:"selection"`
	Scene     Scene          `json:"scene"`
	Controls  []ControlGroup `json:"controls"`
}

// SyncStats is returned by the CMS sync endpoint
type SyncStats struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Deleted  int `json:"deleted"`
	Total    int `json:"total"`
	Warmed   int `json:"warmed"`
}
