package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"MoodFM/logger"
	"MoodFM/model"
)

// ArtworkAgent requests one generated cover image per playlist. Cover art is
// strictly best-effort: every failure yields an empty URL and is only logged.
type ArtworkAgent struct {
	config     *MoodAgentConfig
	imageModel string
	httpClient *http.Client
}

// NewArtworkAgent creates a new artwork agent sharing the mood agent's API
// configuration.
func NewArtworkAgent(config *MoodAgentConfig, imageModel string) *ArtworkAgent {
	return &ArtworkAgent{
		config:     config,
		imageModel: imageModel,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// RequestCoverArt returns a generated cover image URL, or "" when generation
// fails for any reason. Never retried.
func (a *ArtworkAgent) RequestCoverArt(ctx context.Context, playlistName, mood string) string {
	prompt := fmt.Sprintf(
		"Abstract album cover artwork for a playlist called %q with a %s mood. No text, no letters, no logos. Soft shapes and atmospheric color.",
		playlistName, mood,
	)

	reqBody := model.OpenAIImageRequest{
		Model:  a.imageModel,
		Prompt: prompt,
		N:      1,
		Size:   "1024x1024",
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		logger.Warn("[ArtworkAgent] failed to marshal request", logger.ErrorField(err))
		return ""
	}

	req, err := http.NewRequestWithContext(ctx, "POST", a.config.APIBaseURL+"/images/generations", bytes.NewBuffer(jsonBody))
	if err != nil {
		logger.Warn("[ArtworkAgent] failed to create request", logger.ErrorField(err))
		return ""
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.config.APIKey)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		logger.Warn("[ArtworkAgent] image request failed", logger.ErrorField(err))
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warn("[ArtworkAgent] image API returned non-OK status",
			logger.Int("status", resp.StatusCode))
		return ""
	}

	var imageResp model.OpenAIImageResponse
	if err := json.NewDecoder(resp.Body).Decode(&imageResp); err != nil {
		logger.Warn("[ArtworkAgent] failed to decode image response", logger.ErrorField(err))
		return ""
	}

	if len(imageResp.Data) == 0 || imageResp.Data[0].URL == "" {
		logger.Warn("[ArtworkAgent] image response contained no URL")
		return ""
	}

	logger.Info("[ArtworkAgent] cover art generated",
		logger.String("playlist", playlistName))
	return imageResp.Data[0].URL
}
