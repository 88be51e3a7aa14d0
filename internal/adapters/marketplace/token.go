package marketplace

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"farmsync/internal/domain/model"
)

const (
	tokenSafetyMargin = 2 * time.Minute
	tokenFallbackTTL  = time.Hour
)

// AcquireFunc fetches a fresh bearer token and its expiry from the remote
// auth endpoint.
type AcquireFunc func(ctx context.Context) (token string, expiry time.Time, err error)

// TokenCache hands out a valid bearer token, reusing the cached one until
// shortly before expiry. The mutex is held across acquisition so concurrent
// callers queue behind a single in-flight auth request instead of issuing
// duplicates. A failed acquisition leaves the cache unset.
type TokenCache struct {
	mu      sync.Mutex
	token   string
	expiry  time.Time
	acquire AcquireFunc
	now     func() time.Time
}

func NewTokenCache(acquire AcquireFunc) *TokenCache {
	return &TokenCache{
		acquire: acquire,
		now:     time.Now,
	}
}

func (c *TokenCache) GetValidToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && c.now().Before(c.expiry.Add(-tokenSafetyMargin)) {
		return c.token, nil
	}

	token, expiry, err := c.acquire(ctx)
	if err != nil {
		c.token = ""
		return "", &model.AuthenticationError{Err: err}
	}

	c.token = token
	c.expiry = expiry
	return token, nil
}

// Invalidate drops the cached token. Called when the marketplace rejects a
// request as unauthorized despite a not-yet-expired token.
func (c *TokenCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
	c.expiry = time.Time{}
}

// jwtExpiry extracts the exp claim from a JWT without verifying it; we only
// need the lifetime, the server did the signing.
func jwtExpiry(token string, now time.Time) time.Time {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return now.Add(tokenFallbackTTL)
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return now.Add(tokenFallbackTTL)
	}
	var claims struct {
		Exp int64 `json:"exp"`
	}
	if err := json.Unmarshal(payload, &claims); err != nil || claims.Exp <= 0 {
		return now.Add(tokenFallbackTTL)
	}
	return time.Unix(claims.Exp, 0)
}
