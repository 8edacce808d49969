package chat

import (
	"fmt"
	"sort"

	"MoodFM/model"
)

// BuildPlaylistMessage assembles the delivery message: header with the
// playlist name and description, optional cover image, then one section per
// track. Tracks are re-sorted ascending by energy+valence so the playlist
// reads slow-to-upbeat.
func BuildPlaylistMessage(profile model.MoodProfile, tracks []model.TrackCandidate, coverURL string) (string, []model.Block) {
	ordered := make([]model.TrackCandidate, len(tracks))
	copy(ordered, tracks)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Energy+ordered[i].Valence < ordered[j].Energy+ordered[j].Valence
	})

	blocks := make([]model.Block, 0, 4+2*len(ordered))
	blocks = append(blocks, model.HeaderBlock(profile.PlaylistName))
	blocks = append(blocks, model.SectionBlock(profile.PlaylistDescription))
	if coverURL != "" {
		blocks = append(blocks, model.ImageBlock(coverURL, profile.PlaylistName))
	}
	blocks = append(blocks, model.DividerBlock())

	for _, track := range ordered {
		label := track.Name
		if track.URL != "" {
			label = fmt.Sprintf("<%s|%s>", track.URL, track.Name)
		}
		blocks = append(blocks, model.SectionBlock(label))
		blocks = append(blocks, model.DividerBlock())
	}

	text := fmt.Sprintf("%s — %d tracks for your %s mood", profile.PlaylistName, len(ordered), profile.Mood)
	return text, blocks
}
