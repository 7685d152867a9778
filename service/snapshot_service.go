package service

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"

	"board-customizer/config"
)

// SnapshotReadySelector matches the preview once the browser has applied the scene
const SnapshotReadySelector = `#preview[data-scene-ready="true"]`

// snapshotEntry is a cached PNG
type snapshotEntry struct {
	png       []byte
	expiresAt time.Time
}

// captureFunc renders pageURL and returns a PNG of the preview element
type captureFunc func(ctx context.Context, pageURL string) ([]byte, error)

// SnapshotService renders PNG previews of a board configuration with headless Chrome
// Implements SnapshotServiceInterface
type SnapshotService struct {
	baseURL    string
	chromePath string
	timeout    time.Duration
	width      int64
	height     int64
	ttl        time.Duration

	mu    sync.Mutex
	cache map[string]snapshotEntry

	capture captureFunc
	now     func() time.Time
}

// NewSnapshotService creates a new SnapshotService
func NewSnapshotService(cfg config.SnapshotConfig, baseURL string) *SnapshotService {
	s := &SnapshotService{
		baseURL:    strings.TrimRight(baseURL, "/"),
		chromePath: cfg.ChromePath,
		timeout:    cfg.Timeout,
		width:      cfg.Width,
		height:     cfg.Height,
		ttl:        cfg.CacheTTL,
		cache:      make(map[string]snapshotEntry),
		now:        time.Now,
	}
	s.capture = s.captureWithChrome
	return s
}

// Ensure SnapshotService implements SnapshotServiceInterface
var _ SnapshotServiceInterface = (*SnapshotService)(nil)

// detectChromePath detects the path to Chrome/Chromium executable
// Checks the configured path and CHROME_PATH first, then common installation paths
func detectChromePath(configured string) string {
	for _, candidate := range []string{configured, os.Getenv("CHROME_PATH")} {
		if candidate == "" {
			continue
		}
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// Capture returns a PNG of the preview for the page at pagePath (e.g. "/build?deck=d2")
// Results are cached per path until the cache TTL expires
func (s *SnapshotService) Capture(ctx context.Context, pagePath string) ([]byte, error) {
	if png, ok := s.cached(pagePath); ok {
		log.Debug().Msgf("📸 Snapshot cache hit: %s", pagePath)
		return png, nil
	}

	pageURL := s.baseURL + pagePath
	if strings.Contains(pagePath, "?") {
		pageURL += "&snapshot=1"
	} else {
		pageURL += "?snapshot=1"
	}

	start := s.now()
	png, err := s.capture(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to capture snapshot: %w", err)
	}
	log.Info().Msgf("📸 Snapshot rendered for %s in %s (%d bytes)", pagePath, s.now().Sub(start).Round(time.Millisecond), len(png))

	s.store(pagePath, png)
	return png, nil
}

func (s *SnapshotService) cached(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.cache[key]
	if !ok {
		return nil, false
	}
	if !s.now().Before(entry.expiresAt) {
		delete(s.cache, key)
		return nil, false
	}
	return entry.png, true
}

func (s *SnapshotService) store(key string, png []byte) {
	if s.ttl <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for k, entry := range s.cache {
		if !now.Before(entry.expiresAt) {
			delete(s.cache, k)
		}
	}
	s.cache[key] = snapshotEntry{png: png, expiresAt: now.Add(s.ttl)}
}

func (s *SnapshotService) captureWithChrome(ctx context.Context, pageURL string) ([]byte, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	// WebGL needs a software GL backend in headless mode
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
		chromedp.Flag("use-angle", "swiftshader"),
		chromedp.Flag("enable-unsafe-swiftshader", true),
		chromedp.Flag("ignore-gpu-blocklist", true),
		chromedp.WindowSize(int(s.width), int(s.height)),
	)
	if chromePath := detectChromePath(s.chromePath); chromePath != "" {
		log.Debug().Msgf("🔍 Using Chrome at: %s", chromePath)
		opts = append(opts, chromedp.ExecPath(chromePath))
	} else {
		log.Warn().Msg("⚠️  Chrome not found in common paths, letting chromedp auto-detect")
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctxTimeout, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	var buf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.ActionFunc(func(ctx context.Context) error {
			return page.Enable().Do(ctx)
		}),
		chromedp.EmulateViewport(s.width, s.height),
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body"),
		chromedp.WaitVisible(SnapshotReadySelector, chromedp.ByQuery),
		chromedp.Screenshot("#preview", &buf, chromedp.ByQuery),
	)
	if err != nil {
		return nil, err
	}
	if len(buf) == 0 {
		return nil, fmt.Errorf("empty screenshot for %s", pageURL)
	}
	return buf, nil
}
