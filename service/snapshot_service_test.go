package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"board-customizer/config"
)

func newTestSnapshotService(ttl time.Duration) (*SnapshotService, *[]string) {
	svc := NewSnapshotService(config.SnapshotConfig{
		Enabled:  true,
		Timeout:  time.Second,
		Width:    1200,
		Height:   630,
		CacheTTL: ttl,
	}, "http://localhost:8080/")

	var urls []string
	svc.capture = func(ctx context.Context, pageURL string) ([]byte, error) {
		urls = append(urls, pageURL)
		return []byte("png:" + pageURL), nil
	}
	return svc, &urls
}

func TestSnapshotService_CaptureBuildsPageURL(t *testing.T) {
	svc, urls := newTestSnapshotService(time.Minute)

	_, err := svc.Capture(context.Background(), "/build?deck=d2")
	require.NoError(t, err)
	_, err = svc.Capture(context.Background(), "/build")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"http://localhost:8080/build?deck=d2&snapshot=1",
		"http://localhost:8080/build?snapshot=1",
	}, *urls)
}

func TestSnapshotService_CachesUntilExpiry(t *testing.T) {
	svc, urls := newTestSnapshotService(10 * time.Minute)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	first, err := svc.Capture(context.Background(), "/build?deck=d2")
	require.NoError(t, err)
	second, err := svc.Capture(context.Background(), "/build?deck=d2")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, *urls, 1)

	now = now.Add(11 * time.Minute)
	_, err = svc.Capture(context.Background(), "/build?deck=d2")
	require.NoError(t, err)
	assert.Len(t, *urls, 2)
}

func TestSnapshotService_CaptureError(t *testing.T) {
	svc, _ := newTestSnapshotService(time.Minute)
	svc.capture = func(ctx context.Context, pageURL string) ([]byte, error) {
		return nil, errors.New("chrome not found")
	}

	_, err := svc.Capture(context.Background(), "/build")
	assert.Error(t, err)
	_, ok := svc.cached("/build")
	assert.False(t, ok, "failures are not cached")
}
