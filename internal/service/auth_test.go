package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/deppfellow/car-doctor/internal/config"
	"github.com/deppfellow/car-doctor/internal/errs"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthService(now time.Time) *AuthService {
	a := NewAuthService(config.AuthConfig{SecretKey: "test-secret", TokenTTL: time.Hour})
	a.now = func() time.Time { return now }
	return a
}

func requireUnauthorized(t *testing.T, err error) *errs.HTTPError {
	t.Helper()

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Status)
	assert.Equal(t, "unauthorized access", httpErr.Message)
	return httpErr
}

func TestIssueAndParseToken(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	a := newTestAuthService(now)

	token, err := a.IssueToken(context.Background(), "owner@cardoctor.test")
	require.NoError(t, err)

	claims, err := a.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "owner@cardoctor.test", claims.Email)
	assert.Equal(t, now.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, claims.ID)
}

func TestParseToken_Expired(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	a := newTestAuthService(issuedAt)

	token, err := a.IssueToken(context.Background(), "owner@cardoctor.test")
	require.NoError(t, err)

	a.now = func() time.Time { return issuedAt.Add(2 * time.Hour) }

	_, err = a.ParseToken(token)
	httpErr := requireUnauthorized(t, err)
	require.NotNil(t, httpErr.Action)
	assert.Equal(t, errs.ActionTypeRedirect, httpErr.Action.Type)
}

func TestParseToken_WrongSecret(t *testing.T) {
	now := time.Now()
	other := NewAuthService(config.AuthConfig{SecretKey: "other", TokenTTL: time.Hour})

	token, err := other.IssueToken(context.Background(), "owner@cardoctor.test")
	require.NoError(t, err)

	_, err = newTestAuthService(now).ParseToken(token)
	requireUnauthorized(t, err)
}

func TestParseToken_RejectsOtherAlgorithms(t *testing.T) {
	claims := TokenClaims{
		Email: "owner@cardoctor.test",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newTestAuthService(time.Now()).ParseToken(token)
	requireUnauthorized(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := newTestAuthService(time.Now()).ParseToken("not.a.token")
	requireUnauthorized(t, err)
}
