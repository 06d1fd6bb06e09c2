package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "billbuddy-api"

// WaiterClaims identifies the waiter operating a device. The waiter id is
// opaque to billing and is copied onto orders as-is.
type WaiterClaims struct {
	WaiterID string `json:"waiter_id"`
	Name     string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// JWTManager handles waiter token generation and validation
type JWTManager struct {
	secretKey []byte
	expiry    time.Duration
}

// NewJWTManager creates a new JWT manager
func NewJWTManager(secret string, expiry time.Duration) *JWTManager {
	return &JWTManager{
		secretKey: []byte(secret),
		expiry:    expiry,
	}
}

// GenerateWaiterToken signs a token for the given waiter
func (m *JWTManager) GenerateWaiterToken(waiterID, name string) (string, error) {
	now := time.Now()
	claims := &WaiterClaims{
		WaiterID: waiterID,
		Name:     name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   waiterID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secretKey)
}

// ValidateWaiterToken validates a token and returns its claims
func (m *JWTManager) ValidateWaiterToken(tokenString string) (*WaiterClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &WaiterClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secretKey, nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*WaiterClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.WaiterID == "" {
		return nil, errors.New("token carries no waiter id")
	}

	return claims, nil
}
