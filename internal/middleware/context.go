package middleware

import (
	"github.com/deppfellow/car-doctor/internal/logger"
	"github.com/deppfellow/car-doctor/internal/server"
	"github.com/deppfellow/car-doctor/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

const (
	// UserEmailKey holds the verified email claim of the caller.
	UserEmailKey = "user_email"
	// ClaimsKey holds the *service.TokenClaims of the caller.
	ClaimsKey = "claims"

	// LoggerKey is used as the key for storing the request-scoped logger.
	LoggerKey = "logger"
)

// ContextEnhancer builds a request-scoped logger carrying request_id,
// method, path, ip and the New Relic trace ids when a transaction exists.
type ContextEnhancer struct {
	server *server.Server
}

func NewContextEnhancer(s *server.Server) *ContextEnhancer {
	return &ContextEnhancer{server: s}
}

func (ce *ContextEnhancer) EnhanceContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			contextLogger := ce.server.Logger.With().
				Str("request_id", GetRequestID(c)).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Str("ip", c.RealIP()).
				Logger()

			if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
				contextLogger = logger.WithTraceContext(contextLogger, txn)
			}

			if email := GetUserEmail(c); email != "" {
				contextLogger = contextLogger.With().Str("user_email", email).Logger()
			}

			c.Set(LoggerKey, &contextLogger)

			return next(c)
		}
	}
}

// setIdentity stores the verified claims and adds user_email to the
// request logger. Auth runs per route, after EnhanceContext.
func setIdentity(c echo.Context, claims *service.TokenClaims) {
	c.Set(ClaimsKey, claims)
	c.Set(UserEmailKey, claims.Email)

	withUser := GetLogger(c).With().Str("user_email", claims.Email).Logger()
	c.Set(LoggerKey, &withUser)
}

// GetUserEmail returns the verified email, or "" for anonymous callers.
func GetUserEmail(c echo.Context) string {
	if email, ok := c.Get(UserEmailKey).(string); ok {
		return email
	}
	return ""
}

// GetClaims returns the verified claims, or nil for anonymous callers.
func GetClaims(c echo.Context) *service.TokenClaims {
	if claims, ok := c.Get(ClaimsKey).(*service.TokenClaims); ok {
		return claims
	}
	return nil
}

// GetLogger retrieves the request-scoped logger from Echo context.
//
// If EnhanceContext middleware didn't run, it returns a no-op logger.
func GetLogger(c echo.Context) *zerolog.Logger {
	if logger, ok := c.Get(LoggerKey).(*zerolog.Logger); ok {
		return logger
	}

	logger := zerolog.Nop()
	return &logger
}
