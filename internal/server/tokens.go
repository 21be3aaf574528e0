package server

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "marquee-devapi"

// TokenService signs and parses HS256 session tokens.
type TokenService struct {
	Secret   []byte
	Duration time.Duration
	now      func() time.Time
}

// Claims identify the account a token was issued to.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// NewTokenService creates a token service; a zero duration means 24 hours.
func NewTokenService(secret string, duration time.Duration) *TokenService {
	if duration <= 0 {
		duration = 24 * time.Hour
	}
	return &TokenService{Secret: []byte(secret), Duration: duration, now: time.Now}
}

// Sign mints a token for the account with id and email.
func (ts *TokenService) Sign(id, email string) (string, error) {
	now := ts.now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   id,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.Duration)),
		},
	}

	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ts.Secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return s, nil
}

// Parse validates a token and returns its claims.
func (ts *TokenService) Parse(token string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.Secret, nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(ts.now),
	)
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid || claims.Subject == "" {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
