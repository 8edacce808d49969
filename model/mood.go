package model

// SentinelNoRecentMessages is substituted when the requester has no recent
// messages in the originating channel, so prompts never see an empty list.
const SentinelNoRecentMessages = "(no recent messages)"

// MoodProfile is the structured interpretation of a free-form mood request.
// It is produced once per request and immutable afterwards.
type MoodProfile struct {
	Mood                string   `json:"mood"`
	SeedGenres          []string `json:"seed_genres"`
	Energy              float64  `json:"energy"`
	Valence             float64  `json:"valence"`
	PlaylistName        string   `json:"playlist_name"`
	PlaylistDescription string   `json:"playlist_description"`
}

// DefaultMoodProfile is the fixed fallback used whenever the language model
// is unavailable or returns something unparseable.
func DefaultMoodProfile() MoodProfile {
	return MoodProfile{
		Mood:         "chill",
		SeedGenres:   []string{"pop"},
		Energy:       0.5,
		Valence:      0.5,
		PlaylistName: "Good Vibes",
		PlaylistDescription: "A little bit of everything to keep you company.\n" +
			"Curated for whatever the day brings.",
	}
}

// Clamp forces energy and valence into [0,1] and bounds seed genres to at
// most three entries. Callers downstream rely on these invariants.
func (p *MoodProfile) Clamp() {
	p.Energy = Clamp01(p.Energy)
	p.Valence = Clamp01(p.Valence)
	if len(p.SeedGenres) > 3 {
		p.SeedGenres = p.SeedGenres[:3]
	}
}

// Clamp01 bounds v to [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ContextSnapshot carries ambient signal gathered per request to enrich the
// mood-parsing prompt. RecentMessages reads oldest-to-newest and is never
// empty: the collector substitutes SentinelNoRecentMessages.
type ContextSnapshot struct {
	DayOfWeek      string   `json:"day_of_week"`
	TimeOfDay      string   `json:"time_of_day"`
	RecentMessages []string `json:"recent_messages"`
}

// CurationRequest is one slash-command invocation.
type CurationRequest struct {
	RequestID string
	UserID    string
	ChannelID string
	Text      string
}
