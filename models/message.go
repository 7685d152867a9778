package models

// Message types exchanged on the session socket
const (
	MessageSelect      = "select"
	MessageCameraStart = "camera_start"
	MessageScene       = "scene"
	MessageError       = "error"
)

// ClientMessage is sent by the browser over the session socket
// Example: {"type": "select", "category": "deck", "uid": "d2"}
type ClientMessage struct {
	Type     string `json:"type"`
	Category string `json:"category,omitempty"`
	UID      string `json:"uid,omitempty"`
}

// ServerMessage is pushed to the browser after every selection or camera change
type ServerMessage struct {
	Type      string         `json:"type"`
	Scene     *Scene         `json:"scene,omitempty"`
	Controls  []ControlGroup `json:"controls,omitempty"`
	Selection *Selection     `json:"selection,omitempty"`
	Error     string         `json:"error,omitempty"`
}
