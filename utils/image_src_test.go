package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"board-customizer/models"
)

func TestImageSrc(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
		ok   bool
	}{
		{"empty", "", "", false},
		{"blank", "   ", "", false},
		{"https", "https://images.prismic.io/board/deck.png?auto=format", "https://images.prismic.io/board/deck.png?auto=format", true},
		{"relative path", "/skateboard/Deck.webp", "/skateboard/Deck.webp", true},
		{"protocol relative", "//cdn.example.com/a.png", "", false},
		{"ftp", "ftp://example.com/a.png", "", false},
		{"no host", "https:///a.png", "", false},
		{"drive", "drive://1AbC", "drive://1AbC", true},
		{"drive without id", "drive://", "", false},
		{"garbage", "not a url", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ImageSrc(models.ImageField{URL: tt.url})
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDriveFileID(t *testing.T) {
	assert.Equal(t, "abc123", DriveFileID("drive://abc123"))
	assert.Equal(t, "", DriveFileID("drive://abc/def"))
	assert.Equal(t, "", DriveFileID("https://example.com"))
}

func TestNormalizeHexColor(t *testing.T) {
	assert.Equal(t, "#6F6E6A", NormalizeHexColor("#6f6e6a"))
	assert.Equal(t, "#FFF", NormalizeHexColor("fff"))
	assert.Equal(t, "", NormalizeHexColor("red"))
	assert.Equal(t, "", NormalizeHexColor(""))
	assert.Equal(t, "", NormalizeHexColor("#12345"))
}
