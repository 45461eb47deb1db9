package service

import (
	"context"
	"errors"
	"time"

	"github.com/deppfellow/car-doctor/internal/config"
	"github.com/deppfellow/car-doctor/internal/errs"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const unauthorizedMessage = "unauthorized access"

// TokenClaims is the payload of an access token. Email is the identity
// used by the order listing guard.
type TokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// AuthService issues and verifies HS256 access tokens. It performs no
// credential check: any well-formed email gets a token.
type AuthService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewAuthService(cfg config.AuthConfig) *AuthService {
	return &AuthService{
		secret: []byte(cfg.SecretKey),
		ttl:    cfg.TokenTTL,
		now:    time.Now,
	}
}

func (a *AuthService) IssueToken(_ context.Context, email string) (string, error) {
	now := a.now()

	claims := TokenClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", err
	}

	return token, nil
}

// ParseToken verifies signature, algorithm and expiry. Every failure is
// reported as the same 401.
func (a *AuthService) ParseToken(raw string) (*TokenClaims, error) {
	claims := &TokenClaims{}

	_, err := jwt.ParseWithClaims(raw, claims,
		func(*jwt.Token) (any, error) { return a.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		unauthorized := errs.NewUnauthorizedError(unauthorizedMessage, false)
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, unauthorized.WithAction(&errs.Action{
				Type:    errs.ActionTypeRedirect,
				Message: "token expired",
				Value:   "/jwt",
			})
		}
		return nil, unauthorized
	}

	return claims, nil
}
