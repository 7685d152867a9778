package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"board-customizer/config"
	"board-customizer/customizer"
	"board-customizer/utils"
)

// TexturePath is the route serving proxied textures
const TexturePath = "/textures"

// maxTextureBytes caps a single source image download
const maxTextureBytes = 32 << 20

var (
	// ErrTextureNotAllowed is returned for sources outside the allowed hosts
	ErrTextureNotAllowed = errors.New("texture source not allowed")
	// ErrTextureUnavailable is returned when a source cannot be fetched or decoded
	ErrTextureUnavailable = errors.New("texture unavailable")
)

// TextureService fetches, resizes and caches remote textures
// Implements TextureServiceInterface
type TextureService struct {
	client       *http.Client
	drive        DriveServiceInterface
	cacheDir     string
	allowedHosts map[string]bool

	// one in-flight build per cache entry
	builds singleflight.Group
}

// NewTextureService creates a new TextureService
// drive may be nil, in which case drive:// references are rejected
func NewTextureService(cfg config.TexturesConfig, client *http.Client, drive DriveServiceInterface) *TextureService {
	if client == nil {
		client = NewHTTPClient(0)
	}
	hosts := make(map[string]bool, len(cfg.AllowedHosts))
	for _, h := range cfg.AllowedHosts {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			hosts[h] = true
		}
	}
	return &TextureService{
		client:       client,
		drive:        drive,
		cacheDir:     cfg.CacheDir,
		allowedHosts: hosts,
	}
}

// Ensure TextureService implements TextureServiceInterface
var _ TextureServiceInterface = (*TextureService)(nil)

// Allowed reports whether src may be served by the proxy
func (s *TextureService) Allowed(src string) bool {
	if strings.HasPrefix(src, utils.DriveScheme) {
		return s.drive != nil && utils.DriveFileID(src) != ""
	}
	u, err := url.Parse(src)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return false
	}
	return s.allowedHosts[strings.ToLower(u.Hostname())]
}

// ProxyURL rewrites a resolved image source to the proxy route
// Site-relative paths pass through; sources the proxy refuses resolve to ""
func (s *TextureService) ProxyURL(src string, size string) string {
	if strings.HasPrefix(src, "/") && !strings.HasPrefix(src, "//") {
		return src
	}
	if !s.Allowed(src) {
		return ""
	}
	params := url.Values{}
	params.Set("src", src)
	params.Set("size", size)
	return TexturePath + "?" + params.Encode()
}

// Resolver returns a texture resolver routing images through the proxy
func (s *TextureService) Resolver() customizer.TextureResolver {
	return customizer.TextureResolver{Rewrite: s.ProxyURL}
}

type texture struct {
	data        []byte
	contentType string
}

// GetTexture returns the optimized texture for src at size, building and caching it on a miss
func (s *TextureService) GetTexture(ctx context.Context, src string, size string) ([]byte, string, error) {
	if !ValidSize(size) {
		return nil, "", fmt.Errorf("invalid texture size %q", size)
	}
	if !s.Allowed(src) {
		return nil, "", fmt.Errorf("%w: %s", ErrTextureNotAllowed, src)
	}

	v, err, _ := s.builds.Do(src+"|"+size, func() (interface{}, error) {
		return s.buildTexture(ctx, src, size)
	})
	if err != nil {
		return nil, "", err
	}
	t := v.(texture)
	return t.data, t.contentType, nil
}

// buildTexture serves a cached texture or fetches, optimizes and caches the source
func (s *TextureService) buildTexture(ctx context.Context, src string, size string) (texture, error) {
	for _, contentType := range []string{ContentTypeJPEG, ContentTypePNG} {
		cachePath := GetCachePath(s.cacheDir, src, size, contentType)
		if CacheExists(cachePath) {
			data, err := ReadFromCache(cachePath)
			if err == nil {
				return texture{data: data, contentType: contentType}, nil
			}
			log.Warn().Err(err).Msgf("⚠️  Cache read failed for %s", cachePath)
		}
	}

	raw, err := s.fetchOriginal(ctx, src)
	if err != nil {
		return texture{}, fmt.Errorf("%w: %v", ErrTextureUnavailable, err)
	}

	optimized, contentType, err := OptimizeImage(raw, size)
	if err != nil {
		return texture{}, fmt.Errorf("%w: %v", ErrTextureUnavailable, err)
	}

	if err := SaveToCache(GetCachePath(s.cacheDir, src, size, contentType), optimized); err != nil {
		log.Warn().Err(err).Msgf("⚠️  Failed to cache texture %s", src)
	}
	return texture{data: optimized, contentType: contentType}, nil
}

func (s *TextureService) fetchOriginal(ctx context.Context, src string) ([]byte, error) {
	if strings.HasPrefix(src, utils.DriveScheme) {
		return s.drive.DownloadImage(ctx, utils.DriveFileID(src))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", src, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, src)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxTextureBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", src, err)
	}
	return data, nil
}

// Warm builds the full-size and thumbnail cache entries for every source
// Failures are logged and skipped; returns the number of sources warmed
func (s *TextureService) Warm(ctx context.Context, srcs []string, limit int) (int, error) {
	if limit <= 0 {
		limit = 4
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)

	var mu sync.Mutex
	warmed := 0
	for _, src := range srcs {
		src := src
		if !s.Allowed(src) {
			continue
		}
		eg.Go(func() error {
			for _, size := range []string{customizer.SizeFull, customizer.SizeThumb} {
				if _, _, err := s.GetTexture(egCtx, src, size); err != nil {
					if egCtx.Err() != nil {
						return egCtx.Err()
					}
					log.Warn().Err(err).Msgf("⚠️  Failed to warm texture %s (%s)", src, size)
					return nil
				}
			}
			mu.Lock()
			warmed++
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return warmed, fmt.Errorf("texture warmup interrupted: %w", err)
	}
	log.Info().Msgf("🔥 Warmed %d/%d textures", warmed, len(srcs))
	return warmed, nil
}
