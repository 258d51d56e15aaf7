package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndValidateViewerToken(t *testing.T) {
	mgr := NewJWTManager("test-secret-key-123")
	token, err := mgr.GenerateViewerToken("viewer-42", "match-7", time.Hour)
	if err != nil {
		t.Fatalf("generate viewer token: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := mgr.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if claims.ViewerID != "viewer-42" {
		t.Errorf("expected viewer_id=viewer-42, got %s", claims.ViewerID)
	}
	if claims.Subject != "viewer-42" {
		t.Errorf("expected subject=viewer-42, got %s", claims.Subject)
	}
	if claims.MatchID != "match-7" {
		t.Errorf("expected match_id=match-7, got %s", claims.MatchID)
	}
}

func TestDefaultViewerTTL(t *testing.T) {
	mgr := NewJWTManager("test-secret")
	token, err := mgr.GenerateViewerToken("v", AnyMatch, 0)
	if err != nil {
		t.Fatal(err)
	}
	claims, err := mgr.ValidateToken(token)
	if err != nil {
		t.Fatal(err)
	}
	life := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if life != DefaultViewerTTL {
		t.Errorf("expected lifetime %v, got %v", DefaultViewerTTL, life)
	}
}

func TestCanView(t *testing.T) {
	tests := []struct {
		name    string
		claim   string
		match   string
		allowed bool
	}{
		{"same match", "m1", "m1", true},
		{"other match", "m1", "m2", false},
		{"wildcard", AnyMatch, "m2", true},
		{"empty claim", "", "m1", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Claims{MatchID: tt.claim}
			if got := c.CanView(tt.match); got != tt.allowed {
				t.Errorf("CanView(%q) = %v, want %v", tt.match, got, tt.allowed)
			}
		})
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	mgr1 := NewJWTManager("secret-one")
	mgr2 := NewJWTManager("secret-two")

	token, err := mgr1.GenerateViewerToken("viewer-1", "m", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	_, err = mgr2.ValidateToken(token)
	if err == nil {
		t.Error("expected validation to fail with wrong secret")
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	mgr := NewJWTManager("test-secret")
	_, err := mgr.ValidateToken("not-a-jwt")
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for garbage, got %v", err)
	}
	_, err = mgr.ValidateToken("")
	if !errors.Is(err, ErrMissingToken) {
		t.Errorf("expected ErrMissingToken for empty token, got %v", err)
	}
}

func TestExpiredToken(t *testing.T) {
	mgr := NewJWTManager("test-secret")
	past := time.Now().Add(-time.Hour)
	claims := &Claims{
		ViewerID: "viewer-1",
		MatchID:  "m",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(past),
			IssuedAt:  jwt.NewNumericDate(past.Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(mgr.secret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	_, err = mgr.ValidateToken(token)
	if err == nil {
		t.Error("expected error for expired token")
	}
}

func TestRejectsNoneAlgorithm(t *testing.T) {
	mgr := NewJWTManager("test-secret")
	claims := &Claims{ViewerID: "mallory", MatchID: AnyMatch}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := mgr.ValidateToken(token); err == nil {
		t.Error("expected unsigned token to be rejected")
	}
}
