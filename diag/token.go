package diag

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiryChecker inspects a decoded OAuth token cache for freshness.
//
// The cache schema belongs to the wrapped tooling and is treated as opaque
// except for two best-effort probes: an explicit RFC 3339 expiry field, and
// failing that, the exp claim of a JWT-shaped id_token or access_token parsed
// without signature verification. A stale cache is the single most common
// reason a freshly deployed container authenticates and then immediately
// starts failing calendar calls, so surfacing the expiry here saves a round
// trip through the wrapped application's logs.
type TokenExpiryChecker struct {
	// Path is the token cache file.
	Path string

	// Now is overridable for tests; nil means time.Now.
	Now func() time.Time
}

type tokenCache struct {
	AccessToken string    `json:"access_token"`
	IDToken     string    `json:"id_token"`
	Expiry      time.Time `json:"expiry"`
}

// Name returns the name of this checker.
func (c *TokenExpiryChecker) Name() string { return "token-expiry" }

// Check reports when the cached token expires, if that can be determined.
func (c *TokenExpiryChecker) Check(_ context.Context) Result {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}

	data, err := os.ReadFile(c.Path)
	if err != nil {
		return Degraded(fmt.Sprintf("token cache %s not readable", c.Path))
	}

	var cache tokenCache
	if err := json.Unmarshal(data, &cache); err != nil {
		return Degraded("token cache is not valid JSON")
	}

	expiry, source, ok := c.expiry(cache)
	if !ok {
		return Degraded("token cache holds no recognizable expiry")
	}

	details := map[string]any{
		"expiry": expiry.UTC().Format(time.RFC3339),
		"source": source,
	}
	if remaining := expiry.Sub(now()); remaining > 0 {
		return Healthy(fmt.Sprintf("token valid for %s", remaining.Round(time.Second))).WithDetails(details)
	}
	return Degraded("cached token is expired; the wrapped application will need to refresh or reauthorize").WithDetails(details)
}

func (c *TokenExpiryChecker) expiry(cache tokenCache) (time.Time, string, bool) {
	if !cache.Expiry.IsZero() {
		return cache.Expiry, "expiry", true
	}
	for _, candidate := range []struct {
		name  string
		value string
	}{
		{name: "id_token", value: cache.IDToken},
		{name: "access_token", value: cache.AccessToken},
	} {
		if exp, ok := jwtExpiry(candidate.value); ok {
			return exp, candidate.name, true
		}
	}
	return time.Time{}, "", false
}

// jwtExpiry extracts the exp claim from a JWT-shaped string. The signature is
// deliberately not verified; this is introspection of a credential we just
// wrote, not an authentication decision.
func jwtExpiry(token string) (time.Time, bool) {
	if strings.Count(token, ".") != 2 {
		return time.Time{}, false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
