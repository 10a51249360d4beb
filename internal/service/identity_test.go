package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/summitapp/summit/internal/apperr"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return signed
}

func TestVerifyToken(t *testing.T) {
	identity := NewIdentityService(testSecret)

	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":   "user-42",
		"email": "user@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	user, err := identity.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if user.ID != "user-42" {
		t.Errorf("user id = %q, want user-42", user.ID)
	}
	if user.Email != "user@example.com" {
		t.Errorf("email = %q", user.Email)
	}
}

func TestVerifyTokenRejects(t *testing.T) {
	identity := NewIdentityService(testSecret)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"empty", ""},
		{"wrong secret", signToken(t, "other-secret", jwt.MapClaims{"sub": "user-42"})},
		{"missing subject", signToken(t, testSecret, jwt.MapClaims{"email": "user@example.com"})},
		{"empty subject", signToken(t, testSecret, jwt.MapClaims{"sub": ""})},
		{"expired", signToken(t, testSecret, jwt.MapClaims{
			"sub": "user-42",
			"exp": time.Now().Add(-time.Hour).Unix(),
		})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := identity.VerifyToken(tt.token)
			if !errors.Is(err, apperr.ErrUnauthenticated) {
				t.Fatalf("VerifyToken = %v, want ErrUnauthenticated", err)
			}
		})
	}
}
