package spotify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"MoodFM/logger"
	"MoodFM/model"

	"github.com/go-resty/resty/v2"
)

// ErrCatalog indicates a catalog call failed after all bounded attempts.
var ErrCatalog = errors.New("spotify: catalog request failed")

// Client talks to the Spotify Web API using tokens from a TokenCache.
type Client struct {
	http    *resty.Client
	tokens  *TokenCache
	baseURL string
	market  string
}

// NewClient constructs a catalog client. GET calls carry one bounded retry
// with backoff; retrying them is safe because they are idempotent.
func NewClient(baseURL, market string, tokens *TokenCache) *Client {
	httpClient := resty.New().
		SetTimeout(10 * time.Second).
		SetRetryCount(1).
		SetRetryWaitTime(500 * time.Millisecond).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return r.StatusCode() == http.StatusTooManyRequests ||
				r.StatusCode() >= http.StatusInternalServerError
		})
	return &Client{
		http:    httpClient,
		tokens:  tokens,
		baseURL: baseURL,
		market:  market,
	}
}

// get performs an authorized GET, refreshing the token once on a 401.
func (c *Client) get(ctx context.Context, url string, params map[string]string, out interface{}) error {
	token, err := c.tokens.GetToken(ctx)
	if err != nil {
		return err
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetQueryParams(params).
		SetResult(out).
		Get(url)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCatalog, err)
	}

	if resp.StatusCode() == http.StatusUnauthorized {
		c.tokens.Invalidate()
		token, err = c.tokens.GetToken(ctx)
		if err != nil {
			return err
		}
		resp, err = c.http.R().
			SetContext(ctx).
			SetAuthToken(token).
			SetQueryParams(params).
			SetResult(out).
			Get(url)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrCatalog, err)
		}
	}

	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrCatalog, resp.StatusCode())
	}
	return nil
}

// SearchPlaylists searches the catalog for playlist-type results.
func (c *Client) SearchPlaylists(ctx context.Context, query string, limit int) ([]model.CatalogPlaylist, error) {
	logger.Debug("[Spotify] playlist search", logger.String("query", query))

	var result model.SpotifySearchResponse
	err := c.get(ctx, c.baseURL+"/search", map[string]string{
		"q":      query,
		"type":   "playlist",
		"limit":  strconv.Itoa(limit),
		"market": c.market,
	}, &result)
	if err != nil {
		return nil, err
	}

	playlists := make([]model.CatalogPlaylist, 0, len(result.Playlists.Items))
	for _, item := range result.Playlists.Items {
		if item.ID == "" {
			continue
		}
		playlists = append(playlists, model.CatalogPlaylist{
			ID:         item.ID,
			Name:       item.Name,
			TrackTotal: item.Tracks.Total,
		})
	}
	return playlists, nil
}

// PlaylistTracks fetches up to limit tracks of a playlist.
func (c *Client) PlaylistTracks(ctx context.Context, playlistID string, limit int) ([]model.CatalogTrack, error) {
	logger.Debug("[Spotify] playlist tracks", logger.String("playlist_id", playlistID))

	var result model.SpotifyPlaylistTracksResponse
	url := fmt.Sprintf("%s/playlists/%s/tracks", c.baseURL, playlistID)
	err := c.get(ctx, url, map[string]string{
		"limit":  strconv.Itoa(limit),
		"market": c.market,
	}, &result)
	if err != nil {
		return nil, err
	}

	tracks := make([]model.CatalogTrack, 0, len(result.Items))
	for _, item := range result.Items {
		if t, ok := mapTrack(item.Track); ok {
			tracks = append(tracks, t)
		}
	}
	return tracks, nil
}

// SearchTracks searches the catalog for track-type results.
func (c *Client) SearchTracks(ctx context.Context, query string, limit int) ([]model.CatalogTrack, error) {
	logger.Debug("[Spotify] track search", logger.String("query", query))

	var result model.SpotifySearchResponse
	err := c.get(ctx, c.baseURL+"/search", map[string]string{
		"q":      query,
		"type":   "track",
		"limit":  strconv.Itoa(limit),
		"market": c.market,
	}, &result)
	if err != nil {
		return nil, err
	}

	tracks := make([]model.CatalogTrack, 0, len(result.Tracks.Items))
	for _, item := range result.Tracks.Items {
		if t, ok := mapTrack(item); ok {
			tracks = append(tracks, t)
		}
	}
	return tracks, nil
}

// mapTrack converts a wire track to the domain shape. Tracks without a
// resolvable title and primary artist are dropped.
func mapTrack(t model.SpotifyTrack) (model.CatalogTrack, bool) {
	if t.Name == "" || len(t.Artists) == 0 || t.Artists[0].Name == "" {
		return model.CatalogTrack{}, false
	}
	popularity := t.Popularity
	if popularity <= 0 {
		popularity = 50
	}
	return model.CatalogTrack{
		Title:      t.Name,
		Artist:     t.Artists[0].Name,
		URL:        t.ExternalUrls["spotify"],
		Popularity: popularity,
		HasPreview: t.PreviewURL != "",
	}, true
}
