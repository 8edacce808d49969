package curator

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"
	"sync"

	"MoodFM/logger"
	"MoodFM/model"

	"golang.org/x/sync/errgroup"
)

const (
	maxTracks         = 15
	maxQueries        = 2
	playlistsPerQuery = 2
	tracksPerPlaylist = 20
	searchLimit       = 10

	// Playlist sources outside this range are either trivially small or
	// unmanageably large.
	minPlaylistSize = 10
	maxPlaylistSize = 200
)

// Catalog is the search surface of the music catalog.
type Catalog interface {
	SearchPlaylists(ctx context.Context, query string, limit int) ([]model.CatalogPlaylist, error)
	PlaylistTracks(ctx context.Context, playlistID string, limit int) ([]model.CatalogTrack, error)
	SearchTracks(ctx context.Context, query string, limit int) ([]model.CatalogTrack, error)
}

// ScoringConfig holds the tunable constants of the ranking heuristic. The
// defaults (0.4/0.4/0.2, jitter width 0.4 with -0.2 bias) carry no documented
// derivation and are exposed through configuration.
type ScoringConfig struct {
	EnergyWeight     float64
	ValenceWeight    float64
	PopularityWeight float64
	JitterWidth      float64
	JitterBias       float64
}

// Engine collects candidate tracks from the catalog, scores them against the
// target mood and selects the best. Per-query and per-playlist failures are
// absorbed; the engine errors only when nothing at all can be fetched,
// including the genre-only fallback.
type Engine struct {
	catalog Catalog
	scoring ScoringConfig
}

// NewEngine constructs an Engine.
func NewEngine(catalog Catalog, scoring ScoringConfig) *Engine {
	return &Engine{
		catalog: catalog,
		scoring: scoring,
	}
}

// buildQueries derives candidate search strings from a profile. Only the
// first maxQueries are issued, bounding request volume.
func buildQueries(profile model.MoodProfile) []string {
	genres := strings.Join(profile.SeedGenres, " ")
	queries := []string{
		profile.Mood + " " + genres,
		genres + " playlist",
		profile.Mood + " music",
	}
	if len(profile.SeedGenres) > 0 {
		queries = append(queries, profile.SeedGenres[0]+" vibes")
	}
	return queries
}

// Recommend returns up to maxTracks candidates ranked by mood closeness.
func (e *Engine) Recommend(ctx context.Context, profile model.MoodProfile) ([]model.TrackCandidate, error) {
	queries := buildQueries(profile)
	if len(queries) > maxQueries {
		queries = queries[:maxQueries]
	}

	var mu sync.Mutex
	var candidates []model.TrackCandidate

	for _, query := range queries {
		playlists, err := e.catalog.SearchPlaylists(ctx, query, searchLimit)
		if err != nil {
			logger.Warn("[Engine] playlist search failed, skipping query",
				logger.String("query", query),
				logger.ErrorField(err))
			continue
		}

		var qualifying []model.CatalogPlaylist
		for _, pl := range playlists {
			if pl.TrackTotal > minPlaylistSize && pl.TrackTotal < maxPlaylistSize {
				qualifying = append(qualifying, pl)
				if len(qualifying) == playlistsPerQuery {
					break
				}
			}
		}

		// Sub-fetches are independent; order only matters at final sort.
		g, gctx := errgroup.WithContext(ctx)
		for _, pl := range qualifying {
			pl := pl
			g.Go(func() error {
				tracks, err := e.catalog.PlaylistTracks(gctx, pl.ID, tracksPerPlaylist)
				if err != nil {
					logger.Warn("[Engine] playlist fetch failed, skipping playlist",
						logger.String("playlist_id", pl.ID),
						logger.ErrorField(err))
					return nil
				}
				mu.Lock()
				for _, t := range tracks {
					candidates = append(candidates, e.synthesizeCandidate(t, profile))
				}
				mu.Unlock()
				return nil
			})
		}
		_ = g.Wait()
	}

	unique := dedupeByName(candidates)
	ranked := e.rank(unique, profile)
	if len(ranked) > maxTracks {
		ranked = ranked[:maxTracks]
	}
	if len(ranked) > 0 {
		logger.Info("[Engine] candidates selected",
			logger.Int("collected", len(candidates)),
			logger.Int("selected", len(ranked)))
		return ranked, nil
	}

	return e.fallbackSearch(ctx, profile)
}

// fallbackSearch issues a direct genre-filtered track search when scored
// selection produced nothing. Candidates carry the target features exactly:
// with no siblings to rank against, approximation buys nothing.
func (e *Engine) fallbackSearch(ctx context.Context, profile model.MoodProfile) ([]model.TrackCandidate, error) {
	if len(profile.SeedGenres) == 0 {
		return nil, fmt.Errorf("curator: no seed genre available for fallback search")
	}
	genre := profile.SeedGenres[0]
	logger.Warn("[Engine] no scored candidates, falling back to genre search",
		logger.String("genre", genre))

	tracks, err := e.catalog.SearchTracks(ctx, fmt.Sprintf("genre:%q", genre), maxTracks)
	if err != nil {
		return nil, fmt.Errorf("curator: fallback search failed: %w", err)
	}

	candidates := make([]model.TrackCandidate, 0, len(tracks))
	for _, t := range tracks {
		candidates = append(candidates, model.TrackCandidate{
			Name:       t.Title + " – " + t.Artist,
			URL:        t.URL,
			Energy:     profile.Energy,
			Valence:    profile.Valence,
			Popularity: t.Popularity,
		})
	}
	if len(candidates) > maxTracks {
		candidates = candidates[:maxTracks]
	}
	return candidates, nil
}

// synthesizeCandidate builds a candidate from a raw catalog track. The search
// surface exposes no audio features, so energy and valence are approximated
// by sampling near the target. See approximateFeature.
func (e *Engine) synthesizeCandidate(t model.CatalogTrack, profile model.MoodProfile) model.TrackCandidate {
	return model.TrackCandidate{
		Name:       t.Title + " – " + t.Artist,
		URL:        t.URL,
		Energy:     e.approximateFeature(profile.Energy),
		Valence:    e.approximateFeature(profile.Valence),
		Popularity: t.Popularity,
	}
}

// approximateFeature samples a bounded random offset around the target and
// clamps to [0,1]. A stand-in for real audio features; isolated here so a
// real feature source can replace it.
func (e *Engine) approximateFeature(target float64) float64 {
	offset := rand.Float64()*e.scoring.JitterWidth + e.scoring.JitterBias
	return model.Clamp01(target + offset)
}

// Score measures a candidate's closeness to the target mood, rewarding both
// feature axes equally with popularity as a smaller quality proxy.
func (e *Engine) Score(candidate model.TrackCandidate, profile model.MoodProfile) float64 {
	return e.scoring.EnergyWeight*(1-math.Abs(candidate.Energy-profile.Energy)) +
		e.scoring.ValenceWeight*(1-math.Abs(candidate.Valence-profile.Valence)) +
		e.scoring.PopularityWeight*(float64(candidate.Popularity)/100)
}

// rank scores candidates and returns them ordered best first.
func (e *Engine) rank(candidates []model.TrackCandidate, profile model.MoodProfile) []model.TrackCandidate {
	scored := make([]model.ScoredTrack, 0, len(candidates))
	for _, c := range candidates {
		scored = append(scored, model.ScoredTrack{
			TrackCandidate: c,
			Score:          e.Score(c, profile),
		})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	ranked := make([]model.TrackCandidate, 0, len(scored))
	for _, s := range scored {
		ranked = append(ranked, s.TrackCandidate)
	}
	return ranked
}

// dedupeByName drops candidates whose exact name was already seen, keeping
// the first occurrence.
func dedupeByName(candidates []model.TrackCandidate) []model.TrackCandidate {
	seen := make(map[string]bool, len(candidates))
	unique := make([]model.TrackCandidate, 0, len(candidates))
	for _, c := range candidates {
		if seen[c.Name] {
			continue
		}
		seen[c.Name] = true
		unique = append(unique, c)
	}
	return unique
}
