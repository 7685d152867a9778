package service

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog/log"
	_ "golang.org/x/image/webp"

	"board-customizer/customizer"
)

const (
	// Quality settings
	qualityThumb  = 60
	qualityMedium = 80
	qualityFull   = 90
	// Size settings (max dimension)
	maxSizeThumb  = 128
	maxSizeMedium = 1024
	maxSizeFull   = 2048
)

// Content types produced by OptimizeImage
const (
	ContentTypeJPEG = "image/jpeg"
	ContentTypePNG  = "image/png"
)

// sizeSettings returns max dimension and JPEG quality for a texture size
func sizeSettings(size string) (maxDim int, quality int) {
	switch size {
	case customizer.SizeThumb:
		return maxSizeThumb, qualityThumb
	case customizer.SizeMedium:
		return maxSizeMedium, qualityMedium
	case customizer.SizeFull:
		return maxSizeFull, qualityFull
	default:
		log.Warn().Msgf("⚠️  Unknown size '%s', defaulting to medium", size)
		return maxSizeMedium, qualityMedium
	}
}

// ValidSize reports whether size is one of the texture sizes
func ValidSize(size string) bool {
	switch size {
	case customizer.SizeThumb, customizer.SizeMedium, customizer.SizeFull:
		return true
	}
	return false
}

// EnsureCacheDir ensures the cache directory exists, creates it if it doesn't
func EnsureCacheDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	return nil
}

// GetCachePath returns the cache file path for a texture source, size and content type
func GetCachePath(dir, src, size, contentType string) string {
	sum := sha256.Sum256([]byte(src))
	ext := ".jpg"
	if contentType == ContentTypePNG {
		ext = ".png"
	}
	filename := fmt.Sprintf("texture_%s_%s%s", hex.EncodeToString(sum[:12]), size, ext)
	return filepath.Join(dir, filename)
}

// CacheExists checks if a cached image exists
func CacheExists(cachePath string) bool {
	_, err := os.Stat(cachePath)
	return err == nil
}

// ReadFromCache reads an image from the cache
func ReadFromCache(cachePath string) ([]byte, error) {
	data, err := os.ReadFile(cachePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read from cache: %w", err)
	}
	return data, nil
}

// SaveToCache saves an image to the cache
func SaveToCache(cachePath string, imageData []byte) error {
	dir := filepath.Dir(cachePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	// write then rename so concurrent readers never see a partial file
	tmp, err := os.CreateTemp(dir, ".texture-*")
	if err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	if _, err := tmp.Write(imageData); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	if err := os.Rename(tmp.Name(), cachePath); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write to cache: %w", err)
	}

	log.Debug().Msgf("✓ Image cached: %s", cachePath)
	return nil
}

// hasAlpha reports whether the image carries any non-opaque pixel
func hasAlpha(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return !o.Opaque()
	}
	return false
}

// OptimizeImage resizes an image to the max dimension of size and re-encodes it
// imageData: raw image bytes (PNG, JPEG, WebP)
// size: "thumb", "medium" or "full"
// Images with transparency stay PNG, everything else becomes JPEG
func OptimizeImage(imageData []byte, size string) ([]byte, string, error) {
	img, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}

	log.Debug().Msgf("📸 Image decoded: format=%s, bounds=%v", format, img.Bounds())

	maxDim, quality := sizeSettings(size)

	bounds := img.Bounds()
	if bounds.Dx() > maxDim || bounds.Dy() > maxDim {
		img = imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
		log.Debug().Msgf("🔄 Resized image: %dx%d -> %dx%d", bounds.Dx(), bounds.Dy(), img.Bounds().Dx(), img.Bounds().Dy())
	}

	var buf bytes.Buffer
	contentType := ContentTypeJPEG
	if hasAlpha(img) {
		contentType = ContentTypePNG
		err = imaging.Encode(&buf, img, imaging.PNG, imaging.PNGCompressionLevel(png.DefaultCompression))
	} else {
		err = imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality))
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode image: %w", err)
	}

	log.Debug().Msgf("✓ Image optimized: size=%s, type=%s, output_size=%d bytes", size, contentType, buf.Len())
	return buf.Bytes(), contentType, nil
}
