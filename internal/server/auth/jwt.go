// Package auth issues and verifies the HS256 access tokens that carry a
// caller's identity between requests.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/worklog/internal/common"
	"github.com/dmitrijs2005/worklog/internal/server/access"
	"github.com/golang-jwt/jwt/v5"
)

// Claims embeds the registered claims and adds the identity established at login.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	Role     string `json:"role"`
}

// GenerateToken signs a token for id valid for validityDuration and returns
// it with its expiry.
func GenerateToken(id access.Identity, secretKey []byte, validityDuration time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(validityDuration)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Username: id.Username,
		Role:     string(id.Role),
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// ParseToken verifies tokenString and rebuilds the identity it carries.
// Expired tokens yield common.ErrTokenExpired; anything else that fails
// verification yields common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (access.Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return access.Identity{}, common.ErrTokenExpired
		}
		return access.Identity{}, common.ErrInvalidToken
	}

	if !token.Valid || claims.Username == "" {
		return access.Identity{}, common.ErrInvalidToken
	}

	role, err := access.ParseRole(claims.Role)
	if err != nil {
		return access.Identity{}, common.ErrInvalidToken
	}

	return access.Identity{Username: claims.Username, Role: role}, nil
}
