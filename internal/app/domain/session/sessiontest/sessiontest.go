// Package sessiontest mints bearer tokens shaped like the backend's for tests.
package sessiontest

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const signingKey = "sessiontest-signing-key"

// Claims mirrors what the backend puts in its tokens.
type Claims struct {
	Role            string `json:"role,omitempty"`
	AssignedSportID string `json:"assignedSportId,omitempty"`
	jwt.RegisteredClaims
}

// Token signs a token for role that expires after ttl (negative for expired).
func Token(t testing.TB, role string, assignedSportID string, ttl time.Duration) string {
	t.Helper()
	now := time.Now()
	return Sign(t, Claims{
		Role:            role,
		AssignedSportID: assignedSportID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-" + role,
			IssuedAt:  jwt.NewNumericDate(now.Add(-time.Minute)),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
}

// Sign signs arbitrary claims.
func Sign(t testing.TB, claims jwt.Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(signingKey))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}
