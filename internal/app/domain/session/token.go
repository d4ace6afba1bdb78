package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/FACorreiaa/go-sportsmeet/internal/app/models"
)

// ErrDecode marks a bearer token that could not be parsed. Callers treat it
// exactly like an absent session.
var ErrDecode = errors.New("malformed bearer token")

// DecodedToken is derived from the raw token on every use and never stored.
type DecodedToken struct {
	Subject         string
	Role            string
	AssignedSportID string
	IssuedAt        time.Time
	ExpiresAt       time.Time
}

type tokenClaims struct {
	Role            string    `json:"role"`
	AssignedSportID models.ID `json:"assignedSportId,omitempty"`
	UserID          models.ID `json:"userId,omitempty"`
	jwt.RegisteredClaims
}

// DecodeToken reads the payload of a bearer token without checking its
// signature or its header. The token is advisory for routing only; the
// backend that issued it re-validates it on every API call.
func DecodeToken(raw string) (*DecodedToken, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("%w: empty token", ErrDecode)
	}
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: expected three segments", ErrDecode)
	}

	payload, err := jwt.NewParser().DecodeSegment(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: payload: %v", ErrDecode, err)
	}
	claims := &tokenClaims{}
	if err := json.Unmarshal(payload, claims); err != nil {
		return nil, fmt.Errorf("%w: payload: %v", ErrDecode, err)
	}

	decoded := &DecodedToken{
		Subject:         claims.Subject,
		Role:            claims.Role,
		AssignedSportID: claims.AssignedSportID.String(),
	}
	if decoded.Subject == "" {
		decoded.Subject = claims.UserID.String()
	}
	if claims.IssuedAt != nil {
		decoded.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		decoded.ExpiresAt = claims.ExpiresAt.Time
	}
	return decoded, nil
}

// Expired reports whether the token is unusable at now. A token without an
// expiry is never considered valid.
func (t *DecodedToken) Expired(now time.Time) bool {
	return t.ExpiresAt.IsZero() || !t.ExpiresAt.After(now)
}
