package token

import (
	"fmt"
	"time"

	"github.com/enqueter/backend/config"
	"github.com/golang-jwt/jwt/v4"
)

type Engine interface {
	Generate(userID string) (string, error)
	Verify(token string) (string, error)
}

type jwtEngine struct {
	secret     string
	expiration time.Duration
}

func NewEngine(cfg config.AuthConfigs) *jwtEngine {
	return &jwtEngine{secret: cfg.TokenSecret, expiration: cfg.TokenExpiration}
}

func (e *jwtEngine) Generate(userID string) (string, error) {
	claims := &jwt.RegisteredClaims{
		ID:        userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(e.expiration)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(e.secret))
	if err != nil {
		return "", fmt.Errorf("cannot sign jwt: %w", err)
	}

	return signed, nil
}

func (e *jwtEngine) Verify(token string) (string, error) {
	keyFunc := func(jwtToken *jwt.Token) (any, error) {
		if _, ok := jwtToken.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %s", jwtToken.Method.Alg())
		}

		return []byte(e.secret), nil
	}

	claims := &jwt.RegisteredClaims{}
	if _, err := jwt.ParseWithClaims(token, claims, keyFunc); err != nil {
		return "", err
	}

	return claims.ID, nil
}
