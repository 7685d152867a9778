package customizer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"board-customizer/models"
)

func TestTextureURL(t *testing.T) {
	r := TextureResolver{}
	list := []string{"https://cdn.example.com/first.png"}

	assert.Equal(t, "https://cdn.example.com/own.png",
		r.TextureURL(models.CustomizerOption{Texture: models.ImageField{URL: "https://cdn.example.com/own.png"}}, list, DefaultWheelTexture))
	assert.Equal(t, DefaultWheelTexture,
		r.TextureURL(models.CustomizerOption{Texture: models.ImageField{URL: "mailto:x"}}, list, DefaultWheelTexture))
	assert.Equal(t, "https://cdn.example.com/first.png",
		r.TextureURL(models.CustomizerOption{UID: "color-only"}, list, DefaultWheelTexture))
	assert.Equal(t, DefaultDeckTexture,
		r.TextureURL(models.CustomizerOption{UID: "color-only"}, nil, DefaultDeckTexture))
}

func TestTextureResolver_RewriteRoutesThroughProxy(t *testing.T) {
	r := TextureResolver{Rewrite: func(src, size string) string {
		return "/textures?size=" + size + "&src=" + src
	}}

	u, ok := r.ResolveImage(models.ImageField{URL: "drive://abc"}, SizeThumb)

	assert.True(t, ok)
	assert.Equal(t, "/textures?size=thumb&src=drive://abc", u)
}

func TestTextureURLs_SkipsUnresolvable(t *testing.T) {
	opts := []models.CustomizerOption{
		{UID: "a", Texture: models.ImageField{URL: "https://cdn.example.com/a.png"}},
		{UID: "b"},
		{UID: "c", Texture: models.ImageField{URL: "drive://c"}},
	}

	assert.Equal(t, []string{"https://cdn.example.com/a.png"}, TextureResolver{}.TextureURLs(opts))
}

func TestColor(t *testing.T) {
	assert.Equal(t, "#ABCDEF", Color(models.CustomizerOption{Color: "#abcdef"}, DefaultTruckColor))
	assert.Equal(t, DefaultTruckColor, Color(models.CustomizerOption{}, DefaultTruckColor))
	assert.Equal(t, DefaultBoltColor, Color(models.CustomizerOption{Color: "blue"}, DefaultBoltColor))
}
