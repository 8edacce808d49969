package curator

import (
	"context"
	"time"

	"MoodFM/logger"
	"MoodFM/model"
)

// historyFetchLimit is how many channel messages are read before filtering
// to the requester's own.
const historyFetchLimit = 5

// recentMessageLimit caps how many of the requester's messages enter the
// prompt context.
const recentMessageLimit = 3

// HistoryReader reads recent channel messages, newest first.
type HistoryReader interface {
	RecentMessages(ctx context.Context, channelID string, limit int) ([]model.ChatMessage, error)
}

// Collector gathers ambient signal for the mood prompt. Every sub-step is
// best-effort: Collect always returns a usable snapshot.
type Collector struct {
	history HistoryReader
	now     func() time.Time
}

// NewCollector constructs a Collector.
func NewCollector(history HistoryReader) *Collector {
	return &Collector{
		history: history,
		now:     time.Now,
	}
}

// Collect builds a ContextSnapshot for one request. History failures degrade
// to the sentinel entry instead of propagating.
func (c *Collector) Collect(ctx context.Context, channelID, userID string) model.ContextSnapshot {
	now := c.now()
	snapshot := model.ContextSnapshot{
		DayOfWeek: now.Weekday().String(),
		TimeOfDay: timeOfDay(now.Hour()),
	}

	messages, err := c.history.RecentMessages(ctx, channelID, historyFetchLimit)
	if err != nil {
		logger.Warn("[Collector] history fetch failed, continuing without it",
			logger.String("channel", channelID),
			logger.ErrorField(err))
		messages = nil
	}

	// Messages arrive newest first; keep the requester's latest few and
	// reverse so the snapshot reads oldest-to-newest.
	var recent []string
	for _, msg := range messages {
		if msg.UserID != userID || msg.Text == "" {
			continue
		}
		recent = append(recent, msg.Text)
		if len(recent) == recentMessageLimit {
			break
		}
	}
	for i, j := 0, len(recent)-1; i < j; i, j = i+1, j-1 {
		recent[i], recent[j] = recent[j], recent[i]
	}

	if len(recent) == 0 {
		recent = []string{model.SentinelNoRecentMessages}
	}
	snapshot.RecentMessages = recent
	return snapshot
}

// timeOfDay buckets an hour into a human-readable label.
func timeOfDay(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return "morning"
	case hour >= 12 && hour < 17:
		return "afternoon"
	case hour >= 17 && hour < 22:
		return "evening"
	default:
		return "late night"
	}
}
