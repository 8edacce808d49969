package curator

import (
	"context"
	"errors"
	"testing"
	"time"

	"MoodFM/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHistory struct {
	messages []model.ChatMessage
	err      error
}

func (f *fakeHistory) RecentMessages(ctx context.Context, channelID string, limit int) ([]model.ChatMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.messages, nil
}

func fixedClock(weekday time.Weekday, hour int) func() time.Time {
	// 2026-08-03 is a Monday; shift to the requested weekday.
	base := time.Date(2026, 8, 3, hour, 0, 0, 0, time.UTC)
	return func() time.Time {
		return base.AddDate(0, 0, int(weekday-time.Monday))
	}
}

func TestCollectFiltersAndOrdersRequesterMessages(t *testing.T) {
	history := &fakeHistory{messages: []model.ChatMessage{
		{UserID: "U1", Text: "newest"},
		{UserID: "U2", Text: "someone else"},
		{UserID: "U1", Text: "middle"},
		{UserID: "U1", Text: "older"},
		{UserID: "U1", Text: "oldest, beyond the cap"},
	}}
	c := NewCollector(history)
	c.now = fixedClock(time.Tuesday, 23)

	snapshot := c.Collect(context.Background(), "C1", "U1")

	assert.Equal(t, "Tuesday", snapshot.DayOfWeek)
	assert.Equal(t, "late night", snapshot.TimeOfDay)
	require.Equal(t, []string{"older", "middle", "newest"}, snapshot.RecentMessages,
		"keeps the three most recent of the requester's messages, oldest first")
}

func TestCollectSubstitutesSentinelOnHistoryFailure(t *testing.T) {
	c := NewCollector(&fakeHistory{err: errors.New("channel unreadable")})
	c.now = fixedClock(time.Friday, 9)

	snapshot := c.Collect(context.Background(), "C1", "U1")

	assert.Equal(t, []string{model.SentinelNoRecentMessages}, snapshot.RecentMessages)
	assert.Equal(t, "Friday", snapshot.DayOfWeek)
	assert.Equal(t, "morning", snapshot.TimeOfDay)
}

func TestCollectSubstitutesSentinelWhenNothingMatches(t *testing.T) {
	history := &fakeHistory{messages: []model.ChatMessage{
		{UserID: "U2", Text: "not the requester"},
	}}
	c := NewCollector(history)
	c.now = fixedClock(time.Sunday, 14)

	snapshot := c.Collect(context.Background(), "C1", "U1")
	assert.Equal(t, []string{model.SentinelNoRecentMessages}, snapshot.RecentMessages)
}

func TestTimeOfDayBuckets(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{5, "morning"},
		{11, "morning"},
		{12, "afternoon"},
		{16, "afternoon"},
		{17, "evening"},
		{21, "evening"},
		{22, "late night"},
		{2, "late night"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, timeOfDay(tt.hour), "hour %d", tt.hour)
	}
}
