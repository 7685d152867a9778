package customizer

import (
	"github.com/go-gl/mathgl/mgl32"

	"board-customizer/models"
)

// Camera rig limits
const (
	CameraFOV         = 50
	CameraMinDistance = 0.2
	CameraMaxDistance = 4
)

// FloorColliderName names the invisible plane registered with the camera controls
const FloorColliderName = "floor-collider"

var (
	cameraStart = mgl32.Vec3{2.5, 1, 0}
	// lays planes flat on the ground
	groundRotation = models.Vec3{mgl32.DegToRad(-90), 0, 0}
)

// SceneInput is everything the scene description is derived from
type SceneInput struct {
	Doc            *models.BoardCustomizer
	Selection      models.Selection
	Textures       TextureResolver
	ColliderMeshes []string
	Framing        *models.CameraDirective
}

// BuildScene describes the whole 3D scene for the current state
func BuildScene(in SceneInput) models.Scene {
	wheelURLs := in.Textures.TextureURLs(in.Doc.OptionsFor(models.CategoryWheel))
	deckURLs := in.Textures.TextureURLs(in.Doc.OptionsFor(models.CategoryDeck))

	colliders := make([]string, len(in.ColliderMeshes))
	copy(colliders, in.ColliderMeshes)

	return models.Scene{
		Camera: models.CameraRig{
			Position:       models.Vec3(cameraStart),
			FOV:            CameraFOV,
			MinDistance:    CameraMinDistance,
			MaxDistance:    CameraMaxDistance,
			ColliderMeshes: colliders,
		},
		Environment: models.Environment{
			File:       EnvironmentFile,
			Intensity:  0.6,
			Background: EnvironmentColor,
			Fog:        models.Fog{Color: EnvironmentColor, Near: 3, Far: 10},
		},
		Lights: []models.DirectionalLight{{
			Position:   models.Vec3{1, 1, 1},
			LookAt:     models.Vec3{0, 0, 0},
			Intensity:  1.6,
			CastShadow: true,
		}},
		Floor: models.Floor{
			Radius:   20,
			Segments: 32,
			Position: models.Vec3{0, -0.005, 0},
			Rotation: groundRotation,
			Material: models.FloorMaterial{
				Color:      EnvironmentColor,
				Roughness:  0.75,
				NormalMap:  FloorNormalMap,
				Repeat:     [2]float32{30, 30},
				Anisotropy: 8,
				Wrap:       "repeat",
			},
		},
		Collider: models.Collider{
			Name:     FloorColliderName,
			Size:     [2]float32{6, 6},
			Rotation: groundRotation,
			Visible:  false,
		},
		Board: models.Board{
			Pose:             "side",
			WheelTextureURL:  in.Textures.TextureURL(in.Selection.Wheel, wheelURLs, DefaultWheelTexture),
			DeckTextureURL:   in.Textures.TextureURL(in.Selection.Deck, deckURLs, DefaultDeckTexture),
			TruckColor:       Color(in.Selection.Truck, DefaultTruckColor),
			BoltColor:        Color(in.Selection.Bolt, DefaultBoltColor),
			WheelTextureURLs: wheelURLs,
			DeckTextureURLs:  deckURLs,
		},
		Framing: in.Framing,
	}
}
