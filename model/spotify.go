package model

// Wire types for the Spotify Web API responses the service consumes.

// SpotifyTokenResponse is the client-credentials grant response.
type SpotifyTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// SpotifySearchResponse wraps playlist- and track-type search results.
type SpotifySearchResponse struct {
	Playlists SpotifyPlaylistPage `json:"playlists"`
	Tracks    SpotifyTrackPage    `json:"tracks"`
}

type SpotifyPlaylistPage struct {
	Items []SpotifyPlaylist `json:"items"`
}

type SpotifyPlaylist struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Tracks struct {
		Total int `json:"total"`
	} `json:"tracks"`
}

type SpotifyTrackPage struct {
	Items []SpotifyTrack `json:"items"`
}

// SpotifyPlaylistTracksResponse is the playlist-tracks listing.
type SpotifyPlaylistTracksResponse struct {
	Items []struct {
		Track SpotifyTrack `json:"track"`
	} `json:"items"`
}

type SpotifyTrack struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Popularity   int               `json:"popularity"`
	PreviewURL   string            `json:"preview_url"`
	ExternalUrls map[string]string `json:"external_urls"`
	Artists      []struct {
		Name string `json:"name"`
	} `json:"artists"`
}
