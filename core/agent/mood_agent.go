package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"MoodFM/logger"
	"MoodFM/model"
)

// MoodAgentConfig contains configuration for the mood agent.
type MoodAgentConfig struct {
	APIBaseURL  string
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
}

// MoodAgent turns a free-form mood description into a structured MoodProfile
// via the language model. Parsing never fails upward: any malformed model
// output degrades to the fixed default profile.
type MoodAgent struct {
	config     *MoodAgentConfig
	httpClient *http.Client
}

// defaultMoodPhrase replaces empty user input so the model never receives an
// empty request.
const defaultMoodPhrase = "chill vibes"

// System prompt for the mood agent. The model must answer with a single JSON
// object; the worked example anchors the expected shape and value ranges.
const MoodAgentSystemPrompt = `You are a music curation assistant. The user describes a mood, and you translate it into playlist parameters.

Respond with ONLY a JSON object, no other text, with exactly these fields:
- "mood": a short lowercase mood word or phrase
- "seed_genres": 1 to 3 catalog genre strings, most relevant first
- "energy": number between 0.0 (calm) and 1.0 (intense)
- "valence": number between 0.0 (sad) and 1.0 (happy)
- "playlist_name": a catchy playlist title, max 5 words
- "playlist_description": exactly two lines describing the playlist, separated by a newline

Example. For "sad indie coffee-shop at 2am" you would answer:
{"mood":"melancholy","seed_genres":["indie","acoustic"],"energy":0.25,"valence":0.2,"playlist_name":"2am Window Seat","playlist_description":"Quiet songs for a late night alone.\nLet the rain do the talking."}

Use the listener context (weekday, time of day, recent messages) to pick the tone, but the mood text always wins.`

// NewMoodAgent creates a new mood agent.
func NewMoodAgent(config *MoodAgentConfig) *MoodAgent {
	return &MoodAgent{
		config: config,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// codeFencePattern strips the optional markdown fences the model may wrap
// its JSON answer in.
var codeFencePattern = regexp.MustCompile("(?s)^```(?:json)?\\s*(.*?)\\s*```$")

// Interpret derives a MoodProfile from the user's text and ambient context.
// It always returns a usable profile: the fixed default on any failure.
func (a *MoodAgent) Interpret(ctx context.Context, freeText string, snapshot model.ContextSnapshot) model.MoodProfile {
	freeText = strings.TrimSpace(freeText)
	if freeText == "" {
		freeText = defaultMoodPhrase
	}

	content, err := a.complete(ctx, freeText, snapshot)
	if err != nil {
		logger.Warn("[MoodAgent] completion failed, using default profile",
			logger.ErrorField(err))
		return model.DefaultMoodProfile()
	}

	profile, err := parseProfile(content)
	if err != nil {
		logger.Warn("[MoodAgent] unparseable model output, using default profile",
			logger.String("content", content),
			logger.ErrorField(err))
		return model.DefaultMoodProfile()
	}

	profile.Clamp()
	logger.Info("[MoodAgent] interpreted mood",
		logger.String("mood", profile.Mood),
		logger.Float64("energy", profile.Energy),
		logger.Float64("valence", profile.Valence))
	return profile
}

// complete performs one chat completion call.
func (a *MoodAgent) complete(ctx context.Context, freeText string, snapshot model.ContextSnapshot) (string, error) {
	userPrompt := fmt.Sprintf(
		"Mood request: %s\n\nListener context:\n- day: %s\n- time of day: %s\n- recent messages: %s",
		freeText,
		snapshot.DayOfWeek,
		snapshot.TimeOfDay,
		strings.Join(snapshot.RecentMessages, " | "),
	)

	reqBody := model.OpenAIChatRequest{
		Model: a.config.Model,
		Messages: []model.OpenAIChatMessage{
			{Role: "system", Content: MoodAgentSystemPrompt},
			{Role: "user", Content: userPrompt},
		},
		MaxTokens:   a.config.MaxTokens,
		Temperature: a.config.Temperature,
		Stream:      false,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", a.config.APIBaseURL+"/chat/completions", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.config.APIKey)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var chatResp model.OpenAIChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned")
	}

	return chatResp.Choices[0].Message.Content, nil
}

// parseProfile parses the model's answer into a MoodProfile, stripping
// optional code fences first. Missing required fields count as parse errors.
func parseProfile(content string) (model.MoodProfile, error) {
	content = strings.TrimSpace(content)
	if m := codeFencePattern.FindStringSubmatch(content); len(m) == 2 {
		content = m[1]
	}

	var profile model.MoodProfile
	if err := json.Unmarshal([]byte(content), &profile); err != nil {
		return model.MoodProfile{}, fmt.Errorf("invalid JSON: %w", err)
	}

	if profile.Mood == "" || profile.PlaylistName == "" || len(profile.SeedGenres) == 0 {
		return model.MoodProfile{}, fmt.Errorf("missing required fields")
	}

	return profile, nil
}
