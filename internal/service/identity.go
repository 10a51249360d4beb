package service

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/summitapp/summit/internal/apperr"
	"github.com/summitapp/summit/internal/model"
)

// IdentityService verifies tokens issued by the external identity provider.
// It never issues tokens itself; the only contract is an HS256 signature
// over a shared secret and a subject claim carrying the user id.
type IdentityService struct {
	secret string
}

func NewIdentityService(secret string) *IdentityService {
	return &IdentityService{secret: secret}
}

func (s *IdentityService) VerifyToken(tokenString string) (*model.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil || !token.Valid {
		return nil, apperr.ErrUnauthenticated
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperr.ErrUnauthenticated
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, apperr.ErrUnauthenticated
	}

	user := &model.User{ID: sub}
	if email, ok := claims["email"].(string); ok {
		user.Email = email
	}

	return user, nil
}
