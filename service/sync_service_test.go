package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"board-customizer/models"
)

type fakeContent struct {
	doc *models.BoardCustomizer
	err error
}

func (f *fakeContent) GetBoardCustomizer(ctx context.Context) (*models.BoardCustomizer, error) {
	return f.doc, f.err
}

type fakeRepository struct {
	stored *models.BoardCustomizer
	err    error
}

func (f *fakeRepository) GetBoardCustomizer(ctx context.Context) (*models.BoardCustomizer, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.stored, nil
}

func (f *fakeRepository) ReplaceBoardCustomizer(ctx context.Context, doc *models.BoardCustomizer) (int, int, int, error) {
	if f.err != nil {
		return 0, 0, 0, f.err
	}
	f.stored = doc
	return 4, 2, 1, nil
}

type fakeTextures struct {
	warmed []string
}

func (f *fakeTextures) ProxyURL(src, size string) string { return src }

func (f *fakeTextures) GetTexture(ctx context.Context, src, size string) ([]byte, string, error) {
	return nil, "", errors.New("not used")
}

func (f *fakeTextures) Warm(ctx context.Context, srcs []string, limit int) (int, error) {
	f.warmed = srcs
	return len(srcs), nil
}

func TestSyncService_SyncCustomizer(t *testing.T) {
	doc := sessionTestDoc()
	doc.Decks = append(doc.Decks, models.CustomizerOption{UID: "d3", Texture: doc.Decks[0].Texture})
	doc.Wheels = append(doc.Wheels, models.CustomizerOption{UID: "w3", Texture: models.ImageField{URL: "/skateboard/SkateWheel1.png"}})

	repo := &fakeRepository{}
	textures := &fakeTextures{}
	svc := NewSyncService(&fakeContent{doc: doc}, repo, textures, 4)

	stats, err := svc.SyncCustomizer(context.Background())
	require.NoError(t, err)

	assert.Equal(t, models.SyncStats{Inserted: 4, Updated: 2, Deleted: 1, Total: 8, Warmed: 4}, stats)
	assert.Same(t, doc, repo.stored)
	assert.Equal(t, []string{
		"https://images.prismic.io/board/w1.png",
		"https://images.prismic.io/board/w2.png",
		"https://images.prismic.io/board/d1.png",
		"https://images.prismic.io/board/d2.png",
	}, textures.warmed, "local and duplicate sources are skipped")
}

func TestSyncService_WithoutTextureProxy(t *testing.T) {
	svc := NewSyncService(&fakeContent{doc: sessionTestDoc()}, &fakeRepository{}, nil, 4)

	stats, err := svc.SyncCustomizer(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Warmed)
}

func TestSyncService_Errors(t *testing.T) {
	_, err := NewSyncService(&fakeContent{err: ErrContentUnavailable}, &fakeRepository{}, nil, 4).
		SyncCustomizer(context.Background())
	assert.ErrorIs(t, err, ErrContentUnavailable)

	dbErr := errors.New("connection refused")
	_, err = NewSyncService(&fakeContent{doc: sessionTestDoc()}, &fakeRepository{err: dbErr}, nil, 4).
		SyncCustomizer(context.Background())
	assert.ErrorIs(t, err, dbErr)
}

func TestDatabaseContentProvider(t *testing.T) {
	doc := sessionTestDoc()
	got, err := NewDatabaseContentProvider(&fakeRepository{stored: doc}).GetBoardCustomizer(context.Background())
	require.NoError(t, err)
	assert.Same(t, doc, got)

	_, err = NewDatabaseContentProvider(&fakeRepository{err: errors.New("down")}).GetBoardCustomizer(context.Background())
	assert.ErrorIs(t, err, ErrContentUnavailable)
}
