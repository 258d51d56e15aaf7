package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingToken = errors.New("missing viewer token")
)

// AnyMatch lets a viewer token watch every match served by the feed.
const AnyMatch = "*"

// DefaultViewerTTL is the lifetime of a viewer token when none is given.
const DefaultViewerTTL = 12 * time.Hour

// Claims holds the viewer token payload.
type Claims struct {
	ViewerID string `json:"viewer_id"`
	MatchID  string `json:"match_id"`
	jwt.RegisteredClaims
}

// CanView reports whether the token grants access to matchID.
func (c *Claims) CanView(matchID string) bool {
	return c.MatchID == AnyMatch || c.MatchID == matchID
}

// JWTManager signs and validates viewer tokens.
type JWTManager struct {
	secret []byte
}

// NewJWTManager creates a JWTManager with the given secret.
func NewJWTManager(secret string) *JWTManager {
	return &JWTManager{secret: []byte(secret)}
}

// GenerateViewerToken creates a token allowing viewerID to watch matchID.
// A non-positive ttl uses DefaultViewerTTL.
func (m *JWTManager) GenerateViewerToken(viewerID, matchID string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultViewerTTL
	}
	now := time.Now()
	claims := &Claims{
		ViewerID: viewerID,
		MatchID:  matchID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   viewerID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ValidateToken parses and validates a JWT string, returning the claims.
func (m *JWTManager) ValidateToken(tokenStr string) (*Claims, error) {
	if tokenStr == "" {
		return nil, ErrMissingToken
	}
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
