package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	autherrors "cdbl-lms/internal/auth/errors"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// Claims is the payload of both access and refresh tokens.
type Claims struct {
	UserID    string `json:"user_id"`
	Role      string `json:"role"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

func Generate(secret, userID, role, tokenType string, ttl time.Duration, now time.Time) (string, error) {
	claims := Claims{
		UserID:    userID,
		Role:      role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse verifies signature, expiry and token type.
func Parse(secret, tokenString, tokenType string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, autherrors.ErrTokenExpired
		}
		return nil, autherrors.ErrInvalidToken
	}
	if !token.Valid || claims.UserID == "" || claims.TokenType != tokenType {
		return nil, autherrors.ErrInvalidToken
	}
	return claims, nil
}
