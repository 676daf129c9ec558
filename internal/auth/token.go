package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry reads the exp claim of a JWT without verifying its signature.
// The backend holds the signing key; the client only needs to know when to
// stop presenting a token. A token without exp returns nil.
func TokenExpiry(token string) (*time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return nil, fmt.Errorf("read exp: %w", err)
	}
	if exp == nil {
		return nil, nil
	}
	t := exp.Time
	return &t, nil
}
