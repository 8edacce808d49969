package agent

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newArtworkFixture(t *testing.T, handler http.HandlerFunc) *ArtworkAgent {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewArtworkAgent(&MoodAgentConfig{
		APIBaseURL: server.URL,
		APIKey:     "test-key",
	}, "test-image-model")
}

func TestRequestCoverArtReturnsURL(t *testing.T) {
	a := newArtworkFixture(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/images/generations", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"created":1,"data":[{"url":"https://img.example/cover.png"}]}`))
	})

	url := a.RequestCoverArt(context.Background(), "2am Window Seat", "melancholy")
	assert.Equal(t, "https://img.example/cover.png", url)
}

func TestRequestCoverArtAbsorbsFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "quota exceeded",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			},
		},
		{
			name: "malformed response",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{{{`))
			},
		},
		{
			name: "empty data",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"created":1,"data":[]}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newArtworkFixture(t, tt.handler)
			assert.Empty(t, a.RequestCoverArt(context.Background(), "Anything", "chill"))
		})
	}
}
