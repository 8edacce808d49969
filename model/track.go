package model

// TrackCandidate is one catalog track considered for the playlist.
// Energy and valence for search-derived candidates are approximated, since
// the catalog search endpoint does not expose true audio features.
type TrackCandidate struct {
	Name       string  `json:"name"` // "title – primary artist"
	URL        string  `json:"url"`
	Energy     float64 `json:"energy"`
	Valence    float64 `json:"valence"`
	Popularity int     `json:"popularity"` // 0-100, 50 when unknown
}

// ScoredTrack pairs a candidate with its mood-closeness score. Used only
// for ranking within one request.
type ScoredTrack struct {
	TrackCandidate
	Score float64
}

// CatalogPlaylist is a playlist search hit, mapped from the catalog wire
// format.
type CatalogPlaylist struct {
	ID         string
	Name       string
	TrackTotal int
}

// CatalogTrack is a raw catalog track, mapped from the wire format before
// candidate synthesis.
type CatalogTrack struct {
	Title      string
	Artist     string
	URL        string
	Popularity int
	HasPreview bool
}
