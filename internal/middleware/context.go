package middleware

import (
	"github.com/deppfellow/tourism/internal/logger"
	"github.com/deppfellow/tourism/internal/model"
	"github.com/deppfellow/tourism/internal/server"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

const (
	// UserIDKey holds a uuid.UUID, UserRoleKey a model.UserRole.
	UserIDKey   = "user_id"
	UserRoleKey = "user_role"

	LoggerKey = "logger"
)

// ContextEnhancer stores a request-scoped logger carrying the request id,
// method, route, client ip and New Relic trace ids.
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

			setLogger(c, contextLogger)
			return next(c)
		}
	}
}

// setUser records the authenticated caller and adds it to the request
// logger, since auth runs after the enhancer.
func setUser(c echo.Context, id uuid.UUID, role model.UserRole) {
	c.Set(UserIDKey, id)
	c.Set(UserRoleKey, role)

	l := GetLogger(c).With().
		Str("user_id", id.String()).
		Str("user_role", string(role)).
		Logger()
	setLogger(c, l)
}

func setLogger(c echo.Context, l zerolog.Logger) {
	c.Set(LoggerKey, &l)
}

// GetUserID returns the authenticated user, or uuid.Nil for anonymous
// requests.
func GetUserID(c echo.Context) uuid.UUID {
	if id, ok := c.Get(UserIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// OptionalUserID is GetUserID for routes that also serve guests.
func OptionalUserID(c echo.Context) *uuid.UUID {
	if id := GetUserID(c); id != uuid.Nil {
		return &id
	}
	return nil
}

func GetUserRole(c echo.Context) model.UserRole {
	if role, ok := c.Get(UserRoleKey).(model.UserRole); ok {
		return role
	}
	return ""
}

func IsAdmin(c echo.Context) bool {
	return GetUserRole(c) == model.RoleAdmin
}

// GetLogger returns the request-scoped logger, or a no-op logger when
// EnhanceContext did not run.
func GetLogger(c echo.Context) *zerolog.Logger {
	if l, ok := c.Get(LoggerKey).(*zerolog.Logger); ok {
		return l
	}
	l := zerolog.Nop()
	return &l
}
