package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/juliomeza/sales-orders-system-sub001/internal/models"
)

// Claims carried inside access tokens.
type Claims struct {
	UserID     uint   `json:"user_id"`
	Role       string `json:"role"`
	CustomerID *uint  `json:"customer_id,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken issues a signed access token for the user.
func GenerateToken(secret string, user *models.User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:     user.ID,
		Role:       user.Role,
		CustomerID: user.CustomerID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken verifies a token and returns the identity it carries.
func ParseToken(secret, tokenString string) (*Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.UserID == 0 || claims.Role == "" {
		return nil, errors.New("invalid token claims")
	}
	return &Identity{
		UserID:     claims.UserID,
		Role:       claims.Role,
		CustomerID: claims.CustomerID,
	}, nil
}
