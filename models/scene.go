package models

// Vec3 is a position or direction in scene space
type Vec3 [3]float32

// CameraDirective is a (target, position) pair for the camera controls
// Smooth asks the renderer to animate the transition
type CameraDirective struct {
	Category Category `json:"category"`
	Target   Vec3     `json:"target"`
	Position Vec3     `json:"position"`
	Smooth   bool     `json:"smooth"`
}

// CameraRig describes the camera and its orbit limits
type CameraRig struct {
	Position       Vec3     `json:"position"`
	FOV            float32  `json:"fov"`
	MinDistance    float32  `json:"minDistance"`
	MaxDistance    float32  `json:"maxDistance"`
	ColliderMeshes []string `json:"colliderMeshes"`
}

// Fog describes linear scene fog
type Fog struct {
	Color string  `json:"color"`
	Near  float32 `json:"near"`
	Far   float32 `json:"far"`
}

// Environment describes the lighting backdrop of the scene
type Environment struct {
	File       string  `json:"file"`
	Intensity  float32 `json:"intensity"`
	Background string  `json:"background"`
	Fog        Fog     `json:"fog"`
}

// DirectionalLight describes a shadow casting light
type DirectionalLight struct {
	Position   Vec3    `json:"position"`
	LookAt     Vec3    `json:"lookAt"`
	Intensity  float32 `json:"intensity"`
	CastShadow bool    `json:"castShadow"`
}

// FloorMaterial is the tiled normal-mapped material of the stage floor
type FloorMaterial struct {
	Color      string     `json:"color"`
	Roughness  float32    `json:"roughness"`
	NormalMap  string     `json:"normalMap"`
	Repeat     [2]float32 `json:"repeat"`
	Anisotropy int        `json:"anisotropy"`
	Wrap       string     `json:"wrap"`
}

// Floor is the visible ground disc
type Floor struct {
	Radius   float32       `json:"radius"`
	Segments int           `json:"segments"`
	Position Vec3          `json:"position"`
	Rotation Vec3          `json:"rotation"`
	Material FloorMaterial `json:"material"`
}

// Collider is the invisible plane used to constrain camera panning
type Collider struct {
	Name     string     `json:"name"`
	Size     [2]float32 `json:"size"`
	Rotation Vec3       `json:"rotation"`
	Visible  bool       `json:"visible"`
}

// Board carries the resolved surfaces of the skateboard model
type Board struct {
	Pose             string   `json:"pose"`
	WheelTextureURL  string   `json:"wheelTextureUrl"`
	DeckTextureURL   string   `json:"deckTextureUrl"`
	TruckColor       string   `json:"truckColor"`
	BoltColor        string   `json:"boltColor"`
	WheelTextureURLs []string `json:"wheelTextureUrls"`
	DeckTextureURLs  []string `json:"deckTextureUrls"`
}

// Scene is the declarative description handed to the browser renderer
type Scene struct {
	Camera      CameraRig          `json:"camera"`
	Environment Environment        `json:"environment"`
	Lights      []DirectionalLight `json:"lights"`
	Floor       Floor              `json:"floor"`
	Collider    Collider           `json:"collider"`
	Board       Board              `json:"board"`
	Framing     *CameraDirective   `json:"framing,omitempty"`
}
