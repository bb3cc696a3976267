package authclient

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// expiryLeeway keeps a token that expires within the window from being
// treated as live: a request sent with it would bounce 401 anyway.
const expiryLeeway = 30 * time.Second

var unverifiedParser = jwt.NewParser(jwt.WithoutClaimsValidation())

// tokenExpired reports whether token is a JWT whose exp claim has passed.
// Parsing is unverified: the client holds no signing keys and only needs a
// scheduling hint for the startup refresh check; the server remains the
// authority on token validity. Opaque or claim-less tokens report false and
// are sent as-is.
func tokenExpired(token string, now time.Time) bool {
	if token == "" {
		return false
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := unverifiedParser.ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !claims.ExpiresAt.After(now.Add(expiryLeeway))
}
