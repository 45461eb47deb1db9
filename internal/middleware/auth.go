package middleware

import (
	"strings"
	"time"

	"github.com/deppfellow/car-doctor/internal/config"
	"github.com/deppfellow/car-doctor/internal/errs"
	"github.com/deppfellow/car-doctor/internal/server"
	"github.com/deppfellow/car-doctor/internal/service"
	"github.com/labstack/echo/v4"
)

const bearerScheme = "bearer"

// TokenParser verifies a raw access token.
type TokenParser interface {
	ParseToken(raw string) (*service.TokenClaims, error)
}

// AuthMiddleware verifies bearer tokens issued by POST /jwt and stores
// the caller's identity on the Echo context.
type AuthMiddleware struct {
	server *server.Server
	tokens TokenParser
}

func NewAuthMiddleware(s *server.Server, tokens TokenParser) *AuthMiddleware {
	return &AuthMiddleware{
		server: s,
		tokens: tokens,
	}
}

// RequireAuth rejects requests without a valid "Authorization: Bearer
// <token>" header with a 401.
func (auth *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if header == "" {
			GetLogger(c).Warn().
				Str("function", "RequireAuth").
				Msg("missing authorization header")
			return errs.NewUnauthorizedError("unauthorized access", false)
		}

		if err := auth.authenticate(c, header); err != nil {
			return err
		}

		return next(c)
	}
}

// OptionalAuth lets anonymous requests through. A header that is present
// must still carry a valid token.
func (auth *AuthMiddleware) OptionalAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if header == "" {
			return next(c)
		}

		if err := auth.authenticate(c, header); err != nil {
			return err
		}

		return next(c)
	}
}

// OrderGuard returns the middleware configured by auth.order_guard for
// the order listing.
func (auth *AuthMiddleware) OrderGuard() echo.MiddlewareFunc {
	switch auth.server.Config.Auth.OrderGuard {
	case config.OrderGuardDisabled:
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	case config.OrderGuardRequired:
		return auth.RequireAuth
	default:
		return auth.OptionalAuth
	}
}

func (auth *AuthMiddleware) authenticate(c echo.Context, header string) error {
	start := time.Now()

	scheme, raw, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, bearerScheme) || strings.TrimSpace(raw) == "" {
		GetLogger(c).Warn().
			Str("function", "authenticate").
			Dur("duration", time.Since(start)).
			Msg("malformed authorization header")
		return errs.NewUnauthorizedError("unauthorized access", false)
	}

	claims, err := auth.tokens.ParseToken(strings.TrimSpace(raw))
	if err != nil {
		GetLogger(c).Warn().
			Err(err).
			Str("function", "authenticate").
			Dur("duration", time.Since(start)).
			Msg("token verification failed")
		return err
	}

	setIdentity(c, claims)

	GetLogger(c).Debug().
		Str("function", "authenticate").
		Dur("duration", time.Since(start)).
		Msg("token verified")

	return nil
}
