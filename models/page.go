package models

// BuildPage is the data rendered by the customizer page template
type BuildPage struct {
	Title       string
	SessionID   string
	Selection   Selection
	Scene       Scene
	Controls    []ControlGroup
	SocketPath  string
	APIPath     string
	SnapshotURL string
	// Snapshot hides everything but the preview for headless captures
	Snapshot bool
}

// ErrorPage is the data rendered by the generic error template
type ErrorPage struct {
	Title   string
	Status  int
	Message string
}
