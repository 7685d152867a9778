package service

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"board-customizer/customizer"
	"board-customizer/models"
)

func sessionTestDoc() *models.BoardCustomizer {
	img := func(name string) models.ImageField {
		return models.ImageField{URL: "https://images.prismic.io/board/" + name + ".png"}
	}
	return &models.BoardCustomizer{
		ID: "doc",
		Wheels: []models.CustomizerOption{
			{UID: "w1", Label: "W1", Texture: img("w1")},
			{UID: "w2", Label: "W2", Texture: img("w2")},
		},
		Decks: []models.CustomizerOption{
			{UID: "d1", Label: "D1", Texture: img("d1")},
			{UID: "d2", Label: "D2", Texture: img("d2")},
		},
		Textures: []models.CustomizerOption{
			{UID: "t1", Label: "T1", Color: "#111111"},
			{UID: "t2", Label: "T2", Color: "#222222"},
		},
	}
}

func newTestSessionService() *SessionService {
	return NewSessionService(time.Minute, "/build", customizer.TextureResolver{})
}

func TestSessionService_CreateFromQuery(t *testing.T) {
	svc := newTestSessionService()
	sess := svc.Create(sessionTestDoc(), url.Values{"deck": {"d2"}, "bolt": {"t2"}})

	assert.NotEmpty(t, sess.ID)
	sel := sess.Store.Selection()
	assert.Equal(t, "w1", sel.Wheel.UID)
	assert.Equal(t, "d2", sel.Deck.UID)
	assert.Equal(t, "t1", sel.Truck.UID)
	assert.Equal(t, "t2", sel.Bolt.UID)

	resp := svc.Response(sess)
	assert.Equal(t, sess.ID, resp.ID)
	assert.Nil(t, resp.Scene.Framing)
	assert.Len(t, resp.Controls, 4)

	got, err := svc.Get(sess.ID)
	require.NoError(t, err)
	assert.Same(t, sess, got)
}

func TestSessionService_Select(t *testing.T) {
	svc := newTestSessionService()
	sess := svc.Create(sessionTestDoc(), nil)

	var pushed []models.Scene
	sess.Preview.OnUpdate(func(scene models.Scene) {
		pushed = append(pushed, scene)
		// controls are refreshed before scene listeners run
		for _, group := range sess.Controls.Groups() {
			if group.Category != models.CategoryDeck {
				continue
			}
			for _, sw := range group.Swatches {
				assert.Equal(t, sw.UID == "d2", sw.Selected)
			}
		}
	})

	_, err := svc.Select(sess.ID, "deck", "d2")
	require.NoError(t, err)
	require.Len(t, pushed, 1)
	require.NotNil(t, pushed[0].Framing)
	assert.Equal(t, models.CategoryDeck, pushed[0].Framing.Category)
	assert.Equal(t, "https://images.prismic.io/board/d2.png", pushed[0].Board.DeckTextureURL)

	_, err = svc.Select(sess.ID, "deck", "d2")
	require.NoError(t, err)
	assert.Len(t, pushed, 1, "re-selecting the same option is a no-op")

	_, err = svc.Select(sess.ID, "deck", "nope")
	assert.ErrorIs(t, err, ErrOptionNotFound)

	_, err = svc.Select(sess.ID, "griptape", "g1")
	assert.ErrorIs(t, err, ErrUnknownCategory)

	_, err = svc.Select("missing", "deck", "d1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionService_StartCamera(t *testing.T) {
	svc := newTestSessionService()
	sess := svc.Create(sessionTestDoc(), nil)

	_, registered, err := svc.StartCamera(sess.ID)
	require.NoError(t, err)
	assert.True(t, registered)
	assert.Equal(t, []string{customizer.FloorColliderName}, sess.Preview.Scene().Camera.ColliderMeshes)

	_, registered, err = svc.StartCamera(sess.ID)
	require.NoError(t, err)
	assert.False(t, registered)
	assert.Len(t, sess.Preview.Scene().Camera.ColliderMeshes, 1)

	_, _, err = svc.StartCamera("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionService_Sweep(t *testing.T) {
	svc := newTestSessionService()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	idle := svc.Create(sessionTestDoc(), nil)
	active := svc.Create(sessionTestDoc(), nil)

	now = now.Add(45 * time.Second)
	_, err := svc.Get(active.ID)
	require.NoError(t, err)

	now = now.Add(30 * time.Second)
	assert.Equal(t, 1, svc.Sweep())
	assert.Equal(t, 1, svc.Len())

	_, err = svc.Get(idle.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = svc.Get(active.ID)
	assert.NoError(t, err)
}

func TestSessionService_AttachedSessionSurvivesSweep(t *testing.T) {
	svc := newTestSessionService()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	sess := svc.Create(sessionTestDoc(), nil)
	attached, release, err := svc.Attach(sess.ID)
	require.NoError(t, err)
	assert.Same(t, sess, attached)

	now = now.Add(10 * time.Minute)
	assert.Equal(t, 0, svc.Sweep())

	_, err = svc.Select(sess.ID, "deck", "d2")
	require.NoError(t, err)

	now = now.Add(10 * time.Minute)
	release()
	release()
	assert.Equal(t, 0, svc.Sweep())

	now = now.Add(2 * time.Minute)
	assert.Equal(t, 1, svc.Sweep())
	assert.Equal(t, 0, svc.Len())

	_, _, err = svc.Attach(sess.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionService_RunStopsOnCancel(t *testing.T) {
	svc := newTestSessionService()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("janitor did not stop")
	}
}
