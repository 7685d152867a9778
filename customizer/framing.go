package customizer

import (
	"github.com/go-gl/mathgl/mgl32"

	"board-customizer/models"
)

type framing struct {
	target   mgl32.Vec3
	position mgl32.Vec3
}

// framings frames the part that was just changed
var framings = map[models.Category]framing{
	models.CategoryDeck: {
		target:   mgl32.Vec3{0, 0.3, 0},
		position: mgl32.Vec3{1.5, 0.8, 0},
	},
	models.CategoryTruck: {
		target:   mgl32.Vec3{-0.12, 0.29, 0.57},
		position: mgl32.Vec3{0.1, 0.25, 0.9},
	},
	models.CategoryWheel: {
		target:   mgl32.Vec3{-0.08, 0.54, 0.64},
		position: mgl32.Vec3{0.09, 1, 0.9},
	},
	models.CategoryBolt: {
		target:   mgl32.Vec3{-0.25, 0.3, 0.62},
		position: mgl32.Vec3{-0.5, 0.35, 0.8},
	},
}

// Framing returns the camera directive for the category that last changed
func Framing(category models.Category) (models.CameraDirective, bool) {
	f, ok := framings[category]
	if !ok {
		return models.CameraDirective{}, false
	}
	return clampDirective(models.CameraDirective{
		Category: category,
		Target:   models.Vec3(f.target),
		Position: models.Vec3(f.position),
		Smooth:   true,
	}), true
}

// clampDirective moves the position along the view ray so the camera stays
// within the orbit limits
func clampDirective(d models.CameraDirective) models.CameraDirective {
	dist := Distance(d)
	if dist == 0 || (dist >= CameraMinDistance && dist <= CameraMaxDistance) {
		return d
	}
	limit := float32(CameraMaxDistance)
	if dist < CameraMinDistance {
		limit = CameraMinDistance
	}
	target := mgl32.Vec3(d.Target)
	offset := mgl32.Vec3(d.Position).Sub(target)
	d.Position = models.Vec3(target.Add(offset.Mul(limit / dist)))
	return d
}

// Distance returns the camera distance implied by a directive
func Distance(d models.CameraDirective) float32 {
	return mgl32.Vec3(d.Position).Sub(mgl32.Vec3(d.Target)).Len()
}
