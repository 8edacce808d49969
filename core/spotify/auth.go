package spotify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"MoodFM/logger"
	"MoodFM/model"

	"github.com/go-resty/resty/v2"
)

// ErrAuth indicates the client-credentials exchange was rejected.
var ErrAuth = errors.New("spotify: credential exchange failed")

// TokenCache holds one bearer token for the catalog service and refreshes it
// lazily once its cache window elapses. Refreshing is idempotent, so
// concurrent requests racing to refresh only cost a redundant exchange.
type TokenCache struct {
	client       *resty.Client
	clientID     string
	clientSecret string
	accountsURL  string
	ttl          time.Duration
	now          func() time.Time

	mu        sync.Mutex
	value     string
	expiresAt time.Time
}

// NewTokenCache constructs a token cache. The ttl should stay safely below
// the token's nominal lifetime so lazy expiry never serves a dead token.
func NewTokenCache(clientID, clientSecret, accountsURL string, ttl time.Duration) *TokenCache {
	return &TokenCache{
		client:       resty.New().SetTimeout(10 * time.Second),
		clientID:     clientID,
		clientSecret: clientSecret,
		accountsURL:  accountsURL,
		ttl:          ttl,
		now:          time.Now,
	}
}

// GetToken returns the cached token, exchanging credentials first when no
// valid token is held.
func (tc *TokenCache) GetToken(ctx context.Context) (string, error) {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	if tc.value != "" && tc.now().Before(tc.expiresAt) {
		return tc.value, nil
	}

	logger.Info("[TokenCache] exchanging client credentials")
	var token model.SpotifyTokenResponse
	resp, err := tc.client.R().
		SetContext(ctx).
		SetBasicAuth(tc.clientID, tc.clientSecret).
		SetHeader("Content-Type", "application/x-www-form-urlencoded").
		SetBody("grant_type=client_credentials").
		SetResult(&token).
		Post(tc.accountsURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuth, err)
	}
	if resp.StatusCode() != http.StatusOK || token.AccessToken == "" {
		logger.Error("[TokenCache] credential exchange rejected",
			logger.Int("status", resp.StatusCode()))
		return "", fmt.Errorf("%w: status %d", ErrAuth, resp.StatusCode())
	}

	tc.value = token.AccessToken
	tc.expiresAt = tc.now().Add(tc.ttl)
	logger.Info("[TokenCache] token refreshed",
		logger.Duration("ttl", tc.ttl))
	return tc.value, nil
}

// Invalidate drops the cached token so the next GetToken call refreshes.
// Called when the catalog rejects a request as unauthorized.
func (tc *TokenCache) Invalidate() {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.value = ""
	tc.expiresAt = time.Time{}
}
