package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"board-customizer/config"
)

const prismicAPIResponse = `{
	"refs": [
		{"id": "preview", "ref": "preview-ref", "isMasterRef": false},
		{"id": "master", "ref": "master-ref", "isMasterRef": true}
	]
}`

const prismicSearchFixture = `{
	"results": [{
		"id": "Zx1",
		"type": "board_customizer",
		"last_publication_date": "2026-01-02T10:00:00+0000",
		"data": {
			"wheels": [
				{"uid": "w1", "texture": {"url": "https://images.prismic.io/board/w1.png", "alt": "Red", "dimensions": {"width": 512, "height": 512}}},
				{"uid": "", "texture": {"url": "https://images.prismic.io/board/orphan.png"}},
				{"uid": "w1", "texture": {"url": "https://images.prismic.io/board/dup.png"}}
			],
			"decks": [
				{"uid": "d1", "label": "Galaxy", "texture": {"url": "https://images.prismic.io/board/d1.png"}},
				{"uid": "d2", "texture": {}}
			],
			"texture": [
				{"uid": "t1", "color": "#aabbcc"},
				{"uid": "t2", "colors": "112233"},
				{"uid": "t3", "hex_value": "#FFF"},
				{"uid": "t4", "color": "not-a-color"}
			]
		}
	}]
}`

type recordedQueries struct {
	mu      sync.Mutex
	queries []url.Values
}

func (r *recordedQueries) add(q url.Values) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries = append(r.queries, q)
}

func (r *recordedQueries) all() []url.Values {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]url.Values(nil), r.queries...)
}

func newPrismicServer(t *testing.T, search string) (*httptest.Server, *recordedQueries) {
	t.Helper()
	recorded := &recordedQueries{}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v2", func(w http.ResponseWriter, r *http.Request) {
		recorded.add(r.URL.Query())
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(prismicAPIResponse))
	})
	mux.HandleFunc("/api/v2/documents/search", func(w http.ResponseWriter, r *http.Request) {
		recorded.add(r.URL.Query())
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(search))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, recorded
}

func newTestCMSService(srvURL, token string) *CMSService {
	return NewCMSService(config.CMSConfig{
		APIURL:       srvURL + "/api/v2",
		AccessToken:  token,
		DocumentType: "board_customizer",
		Timeout:      5 * time.Second,
	}, nil)
}

func TestCMSService_GetBoardCustomizer(t *testing.T) {
	srv, requests := newPrismicServer(t, prismicSearchFixture)
	svc := newTestCMSService(srv.URL, "secret")

	doc, err := svc.GetBoardCustomizer(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Zx1", doc.ID)
	assert.Equal(t, "2026-01-02T10:00:00+0000", doc.LastPublicationDate)

	require.Len(t, doc.Wheels, 1, "items without uid and duplicates are dropped")
	assert.Equal(t, "w1", doc.Wheels[0].UID)
	assert.Equal(t, "w1", doc.Wheels[0].Label)
	assert.Equal(t, "https://images.prismic.io/board/w1.png", doc.Wheels[0].Texture.URL)
	assert.Equal(t, 512, doc.Wheels[0].Texture.Dimensions.Width)

	require.Len(t, doc.Decks, 2)
	assert.Equal(t, "Galaxy", doc.Decks[0].Label)
	assert.True(t, doc.Decks[1].Texture.IsEmpty())

	require.Len(t, doc.Textures, 4)
	assert.Equal(t, "#AABBCC", doc.Textures[0].Color)
	assert.Equal(t, "#112233", doc.Textures[1].Color)
	assert.Equal(t, "#FFF", doc.Textures[2].Color)
	assert.Equal(t, "", doc.Textures[3].Color)

	queries := requests.all()
	require.Len(t, queries, 2)
	assert.Equal(t, "secret", queries[0].Get("access_token"))
	search := queries[1]
	assert.Equal(t, "master-ref", search.Get("ref"))
	assert.Equal(t, `[[at(document.type,"board_customizer")]]`, search.Get("q"))
	assert.Equal(t, "secret", search.Get("access_token"))
}

func TestCMSService_NoDocument(t *testing.T) {
	srv, _ := newPrismicServer(t, `{"results": []}`)
	svc := newTestCMSService(srv.URL, "")

	_, err := svc.GetBoardCustomizer(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrContentUnavailable))
}

func TestCMSService_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestCMSService(srv.URL, "").GetBoardCustomizer(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrContentUnavailable)
}

func TestCMSService_NoMasterRef(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"refs": [{"id": "preview", "ref": "x", "isMasterRef": false}]}`))
	}))
	defer srv.Close()

	_, err := newTestCMSService(srv.URL, "").GetBoardCustomizer(context.Background())
	assert.ErrorIs(t, err, ErrContentUnavailable)
}

func TestCMSService_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	_, err := newTestCMSService(addr, "").GetBoardCustomizer(context.Background())
	assert.ErrorIs(t, err, ErrContentUnavailable)
}
