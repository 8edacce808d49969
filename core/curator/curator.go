package curator

import (
	"context"

	"MoodFM/core/chat"
	"MoodFM/logger"
	"MoodFM/model"
)

// Interpreter derives a MoodProfile from free text. Implementations never
// fail: they fall back to a default profile instead.
type Interpreter interface {
	Interpret(ctx context.Context, freeText string, snapshot model.ContextSnapshot) model.MoodProfile
}

// ArtworkRequester generates cover art. An empty URL means generation failed
// or was skipped.
type ArtworkRequester interface {
	RequestCoverArt(ctx context.Context, playlistName, mood string) string
}

// Messenger delivers the result to the requesting user.
type Messenger interface {
	OpenDM(ctx context.Context, userID string) (string, error)
	PostMessage(ctx context.Context, channelID, text string, blocks []model.Block) error
}

// apologyText is the single generic failure message users see; diagnostics
// stay in the logs.
const apologyText = "Sorry, I couldn't put a playlist together right now. Please try again in a bit."

// Curator runs the curation pipeline for one request: collect context,
// interpret the mood, search and rank tracks, request cover art, deliver.
type Curator struct {
	collector   *Collector
	interpreter Interpreter
	engine      *Engine
	artwork     ArtworkRequester
	messenger   Messenger
}

// New constructs a Curator.
func New(collector *Collector, interpreter Interpreter, engine *Engine, artwork ArtworkRequester, messenger Messenger) *Curator {
	return &Curator{
		collector:   collector,
		interpreter: interpreter,
		engine:      engine,
		artwork:     artwork,
		messenger:   messenger,
	}
}

// HandleRequest executes the pipeline. Best-effort steps (context, cover
// art) degrade silently; only a fully failed catalog run reaches the user,
// as the generic apology.
func (c *Curator) HandleRequest(ctx context.Context, req model.CurationRequest) error {
	logger.Info("[Curator] handling request",
		logger.String("request_id", req.RequestID),
		logger.String("user", req.UserID),
		logger.String("text", req.Text))

	snapshot := c.collector.Collect(ctx, req.ChannelID, req.UserID)
	profile := c.interpreter.Interpret(ctx, req.Text, snapshot)

	tracks, err := c.engine.Recommend(ctx, profile)
	if err != nil {
		logger.Error("[Curator] recommendation failed",
			logger.String("request_id", req.RequestID),
			logger.ErrorField(err))
		c.apologize(ctx, req)
		return err
	}

	var coverURL string
	if c.artwork != nil {
		coverURL = c.artwork.RequestCoverArt(ctx, profile.PlaylistName, profile.Mood)
	}

	text, blocks := chat.BuildPlaylistMessage(profile, tracks, coverURL)
	if err := c.deliver(ctx, req.UserID, text, blocks); err != nil {
		logger.Error("[Curator] delivery failed",
			logger.String("request_id", req.RequestID),
			logger.ErrorField(err))
		return err
	}

	logger.Info("[Curator] playlist delivered",
		logger.String("request_id", req.RequestID),
		logger.String("playlist", profile.PlaylistName),
		logger.Int("tracks", len(tracks)))
	return nil
}

// deliver posts a message to the requester's direct channel. Results always
// go to the user, never to the originating channel.
func (c *Curator) deliver(ctx context.Context, userID, text string, blocks []model.Block) error {
	dmChannel, err := c.messenger.OpenDM(ctx, userID)
	if err != nil {
		return err
	}
	return c.messenger.PostMessage(ctx, dmChannel, text, blocks)
}

// apologize sends the generic failure notice, itself best-effort.
func (c *Curator) apologize(ctx context.Context, req model.CurationRequest) {
	if err := c.deliver(ctx, req.UserID, apologyText, nil); err != nil {
		logger.Warn("[Curator] failed to deliver apology",
			logger.String("request_id", req.RequestID),
			logger.ErrorField(err))
	}
}
