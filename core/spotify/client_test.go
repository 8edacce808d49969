package spotify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchPlaylistsBody = `{
  "playlists": {
    "items": [
      {"id": "pl1", "name": "Rainy Focus", "tracks": {"total": 42}},
      {"id": "", "name": "ghost entry", "tracks": {"total": 12}},
      {"id": "pl2", "name": "Mega Mix", "tracks": {"total": 900}}
    ]
  }
}`

const playlistTracksBody = `{
  "items": [
    {"track": {"id": "t1", "name": "Night Drive", "popularity": 61, "preview_url": "https://p/1",
      "external_urls": {"spotify": "https://open.spotify.com/track/t1"},
      "artists": [{"name": "Neon Owl"}]}},
    {"track": {"id": "t2", "name": "", "artists": [{"name": "Nameless"}]}},
    {"track": {"id": "t3", "name": "No Artist Song", "artists": []}},
    {"track": {"id": "t4", "name": "Quiet Hours", "popularity": 0,
      "external_urls": {"spotify": "https://open.spotify.com/track/t4"},
      "artists": [{"name": "Foglight"}]}}
  ]
}`

func newCatalogFixture(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	api := httptest.NewServer(handler)
	t.Cleanup(api.Close)

	accounts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"tok","token_type":"Bearer","expires_in":3600}`))
	}))
	t.Cleanup(accounts.Close)

	tokens := NewTokenCache("id", "secret", accounts.URL, 50*time.Minute)
	return NewClient(api.URL, "US", tokens)
}

func TestSearchPlaylists(t *testing.T) {
	client := newCatalogFixture(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search", r.URL.Path)
		require.Equal(t, "playlist", r.URL.Query().Get("type"))
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(searchPlaylistsBody))
	})

	playlists, err := client.SearchPlaylists(context.Background(), "rainy lofi", 10)
	require.NoError(t, err)

	require.Len(t, playlists, 2, "entries without an id are dropped")
	assert.Equal(t, "pl1", playlists[0].ID)
	assert.Equal(t, 42, playlists[0].TrackTotal)
	assert.Equal(t, "pl2", playlists[1].ID)
}

func TestPlaylistTracksFiltersUnresolvable(t *testing.T) {
	client := newCatalogFixture(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/playlists/pl1/tracks", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(playlistTracksBody))
	})

	tracks, err := client.PlaylistTracks(context.Background(), "pl1", 20)
	require.NoError(t, err)

	require.Len(t, tracks, 2, "tracks without title or primary artist are dropped")
	assert.Equal(t, "Night Drive", tracks[0].Title)
	assert.Equal(t, "Neon Owl", tracks[0].Artist)
	assert.Equal(t, 61, tracks[0].Popularity)
	assert.True(t, tracks[0].HasPreview)

	assert.Equal(t, "Quiet Hours", tracks[1].Title)
	assert.Equal(t, 50, tracks[1].Popularity, "unknown popularity defaults to 50")
	assert.False(t, tracks[1].HasPreview)
}

func TestCatalogErrorOnServerFailure(t *testing.T) {
	client := newCatalogFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.SearchPlaylists(context.Background(), "anything", 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCatalog)
}

func TestUnauthorizedTriggersTokenRefresh(t *testing.T) {
	attempt := 0
	client := newCatalogFixture(t, func(w http.ResponseWriter, r *http.Request) {
		attempt++
		if attempt == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(searchPlaylistsBody))
	})

	playlists, err := client.SearchPlaylists(context.Background(), "retry me", 10)
	require.NoError(t, err)
	assert.Len(t, playlists, 2)
	assert.Equal(t, 2, attempt)
}
