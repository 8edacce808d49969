package spotify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenServer(t *testing.T, exchanges *int64, token string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(exchanges, 1)
		user, _, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "client-id", user)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"` + token + `","token_type":"Bearer","expires_in":3600}`))
	}))
}

func TestTokenCacheReusesTokenWithinWindow(t *testing.T) {
	var exchanges int64
	server := newTokenServer(t, &exchanges, "tok-1")
	defer server.Close()

	cache := NewTokenCache("client-id", "secret", server.URL, 50*time.Minute)

	first, err := cache.GetToken(context.Background())
	require.NoError(t, err)
	second, err := cache.GetToken(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "tok-1", first)
	assert.Equal(t, first, second)
	assert.EqualValues(t, 1, atomic.LoadInt64(&exchanges), "second call within the window must not re-exchange")
}

func TestTokenCacheRefreshesAfterExpiry(t *testing.T) {
	var exchanges int64
	server := newTokenServer(t, &exchanges, "tok-2")
	defer server.Close()

	cache := NewTokenCache("client-id", "secret", server.URL, 50*time.Minute)

	clock := time.Now()
	cache.now = func() time.Time { return clock }

	_, err := cache.GetToken(context.Background())
	require.NoError(t, err)

	clock = clock.Add(51 * time.Minute)
	_, err = cache.GetToken(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 2, atomic.LoadInt64(&exchanges))
}

func TestTokenCacheInvalidateForcesRefresh(t *testing.T) {
	var exchanges int64
	server := newTokenServer(t, &exchanges, "tok-3")
	defer server.Close()

	cache := NewTokenCache("client-id", "secret", server.URL, 50*time.Minute)

	_, err := cache.GetToken(context.Background())
	require.NoError(t, err)
	cache.Invalidate()
	_, err = cache.GetToken(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 2, atomic.LoadInt64(&exchanges))
}

func TestTokenCacheRejectedCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid_client"}`))
	}))
	defer server.Close()

	cache := NewTokenCache("client-id", "wrong", server.URL, 50*time.Minute)

	_, err := cache.GetToken(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAuth)
}
