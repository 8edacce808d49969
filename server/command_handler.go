package server

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"MoodFM/logger"
	"MoodFM/model"

	"github.com/google/uuid"
)

// signatureTolerance bounds how stale a signed request may be.
const signatureTolerance = 5 * time.Minute

// pipelineDeadline bounds one detached curation run end to end.
const pipelineDeadline = 2 * time.Minute

// Pipeline runs one curation request to completion.
type Pipeline interface {
	HandleRequest(ctx context.Context, req model.CurationRequest) error
}

// CommandHandler receives slash-command invocations, acknowledges them
// immediately and runs the pipeline detached.
type CommandHandler struct {
	signingSecret string
	pipeline      Pipeline
	now           func() time.Time
}

// NewCommandHandler constructs a CommandHandler.
func NewCommandHandler(signingSecret string, pipeline Pipeline) *CommandHandler {
	return &CommandHandler{
		signingSecret: signingSecret,
		pipeline:      pipeline,
		now:           time.Now,
	}
}

// HandlePlaylistCommand verifies the request signature, acks with a short
// ephemeral notice and kicks off the pipeline. The ack never waits on any
// outbound call.
func (h *CommandHandler) HandlePlaylistCommand(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	if !h.verifySignature(r.Header, body) {
		logger.Warn("[Server] rejected command with invalid signature")
		http.Error(w, "invalid signature", http.StatusUnauthorized)
		return
	}

	values, err := url.ParseQuery(string(body))
	if err != nil {
		http.Error(w, "malformed payload", http.StatusBadRequest)
		return
	}

	req := model.CurationRequest{
		RequestID: uuid.NewString(),
		UserID:    values.Get("user_id"),
		ChannelID: values.Get("channel_id"),
		Text:      values.Get("text"),
	}
	if req.UserID == "" {
		http.Error(w, "missing user_id", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"response_type": "ephemeral",
		"text":          "🎧 Working on it! Your playlist will arrive as a direct message.",
	})

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), pipelineDeadline)
		defer cancel()
		if err := h.pipeline.HandleRequest(ctx, req); err != nil {
			logger.Error("[Server] curation run failed",
				logger.String("request_id", req.RequestID),
				logger.ErrorField(err))
		}
	}()
}

// verifySignature checks the platform's v0 HMAC scheme: the hex SHA-256 MAC
// of "v0:<timestamp>:<body>" keyed with the signing secret, with a bounded
// timestamp skew.
func (h *CommandHandler) verifySignature(header http.Header, body []byte) bool {
	if h.signingSecret == "" {
		return true
	}

	tsHeader := header.Get("X-Slack-Request-Timestamp")
	signature := header.Get("X-Slack-Signature")
	if tsHeader == "" || signature == "" {
		return false
	}

	ts, err := strconv.ParseInt(tsHeader, 10, 64)
	if err != nil {
		return false
	}
	skew := h.now().Sub(time.Unix(ts, 0))
	if skew > signatureTolerance || skew < -signatureTolerance {
		return false
	}

	mac := hmac.New(sha256.New, []byte(h.signingSecret))
	mac.Write([]byte("v0:" + tsHeader + ":"))
	mac.Write(body)
	expected := "v0=" + hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
