package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"board-customizer/customizer"
	"board-customizer/models"
)

func TestPageService_RenderBuildPage(t *testing.T) {
	pages, err := NewPageService()
	require.NoError(t, err)

	svc := newTestSessionService()
	sess := svc.Create(sessionTestDoc(), nil)
	resp := svc.Response(sess)

	html, err := pages.RenderBuildPage(models.BuildPage{
		Title:      "Build your board",
		SessionID:  sess.ID,
		Selection:  resp.Selection,
		Scene:      resp.Scene,
		Controls:   resp.Controls,
		SocketPath: "/api/sessions/" + sess.ID + "/ws",
		APIPath:    "/api/sessions/" + sess.ID,
	})
	require.NoError(t, err)
	body := string(html)

	assert.Contains(t, body, `<title>Build your board</title>`)
	assert.Contains(t, body, `data-session-id="`+sess.ID+`"`)
	assert.Contains(t, body, `<a class="button add-to-cart" href="">Add to cart</a>`)
	assert.Contains(t, body, `id="loading"`)
	assert.Contains(t, body, `data-category="deck" data-uid="d2"`)
	assert.Contains(t, body, `href="/build?bolt=t1&amp;deck=d2&amp;truck=t1&amp;wheel=w1"`)
	assert.Contains(t, body, `background-color: #222222`)
	assert.Contains(t, body, `"wheelTextureUrl":"https://images.prismic.io/board/w1.png"`)
	assert.Contains(t, body, `<footer class="site-footer">`)
	assert.Equal(t, 4, strings.Count(body, `<section class="control-group"`))
}

func TestPageService_RenderSnapshotPage(t *testing.T) {
	pages, err := NewPageService()
	require.NoError(t, err)

	scene := customizer.BuildScene(customizer.SceneInput{Doc: sessionTestDoc()})
	html, err := pages.RenderBuildPage(models.BuildPage{Title: "Snapshot", Scene: scene, Snapshot: true})
	require.NoError(t, err)
	body := string(html)

	assert.Contains(t, body, `<body class="snapshot">`)
	assert.Contains(t, body, `id="preview"`)
	assert.NotContains(t, body, `Add to cart`)
	assert.NotContains(t, body, `site-header`)
}

func TestPageService_RenderErrorPage(t *testing.T) {
	pages, err := NewPageService()
	require.NoError(t, err)

	html, err := pages.RenderErrorPage(models.ErrorPage{Title: "Error", Status: 502, Message: "The board builder is unavailable <right now>"})
	require.NoError(t, err)
	assert.Contains(t, string(html), "The board builder is unavailable &lt;right now&gt;")
	assert.Contains(t, string(html), `href="/build"`)
}
