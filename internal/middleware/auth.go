package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"
	"strings"

	"github.com/clerk/clerk-sdk-go/v2"
	clerkhttp "github.com/clerk/clerk-sdk-go/v2/http"
	"github.com/deppfellow/tourism/internal/config"
	"github.com/deppfellow/tourism/internal/errs"
	"github.com/deppfellow/tourism/internal/model"
	"github.com/deppfellow/tourism/internal/server"
	"github.com/labstack/echo/v4"
)

// Authenticator verifies local tokens and maps identity provider
// subjects to local users. Satisfied by *service.AuthService.
type Authenticator interface {
	Authenticate(ctx context.Context, raw string) (*model.User, error)
	ResolveExternalUser(ctx context.Context, externalID string) (*model.User, error)
}

type AuthMiddleware struct {
	server *server.Server
	auth   Authenticator
}

func NewAuthMiddleware(s *server.Server, auth Authenticator) *AuthMiddleware {
	return &AuthMiddleware{server: s, auth: auth}
}

func errUnauthorized() *errs.HTTPError {
	return errs.NewUnauthorizedError("Unauthorized", false)
}

// RequireAuth rejects requests without a valid bearer token and stores
// the caller's id and role on the context.
func (auth *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	if auth.server.Config.Auth.Provider == config.AuthProviderClerk {
		return auth.requireClerk(next)
	}
	return auth.requireLocal(next)
}

// OptionalAuth authenticates when an Authorization header is present and
// lets anonymous requests through otherwise.
func (auth *AuthMiddleware) OptionalAuth(next echo.HandlerFunc) echo.HandlerFunc {
	required := auth.RequireAuth(next)
	return func(c echo.Context) error {
		if c.Request().Header.Get(echo.HeaderAuthorization) == "" {
			return next(c)
		}
		return required(c)
	}
}

// RequireRole must be chained after RequireAuth.
func (auth *AuthMiddleware) RequireRole(roles ...model.UserRole) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !slices.Contains(roles, GetUserRole(c)) {
				GetLogger(c).Warn().
					Str("function", "RequireRole").
					Msg("insufficient role")
				return errs.NewForbiddenError("You do not have permission to perform this action", true)
			}
			return next(c)
		}
	}
}

func (auth *AuthMiddleware) requireLocal(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw, ok := bearerToken(c.Request())
		if !ok {
			return errUnauthorized()
		}

		user, err := auth.auth.Authenticate(c.Request().Context(), raw)
		if err != nil {
			GetLogger(c).Info().
				Err(err).
				Str("function", "RequireAuth").
				Msg("token rejected")
			return err
		}

		setUser(c, user.ID, user.Role)
		return next(c)
	}
}

// requireClerk lets the Clerk SDK verify the session token, then resolves
// the session subject to a local user.
func (auth *AuthMiddleware) requireClerk(next echo.HandlerFunc) echo.HandlerFunc {
	failure := clerkhttp.AuthorizationFailureHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		w.WriteHeader(http.StatusUnauthorized)
		if err := json.NewEncoder(w).Encode(errUnauthorized()); err != nil {
			auth.server.Logger.Error().Err(err).Str("function", "RequireAuth").Msg("failed to write JSON response")
		}
	}))

	return echo.WrapMiddleware(clerkhttp.WithHeaderAuthorization(failure))(func(c echo.Context) error {
		claims, ok := clerk.SessionClaimsFromContext(c.Request().Context())
		if !ok {
			GetLogger(c).Error().Str("function", "RequireAuth").Msg("could not get session claims from context")
			return errUnauthorized()
		}

		user, err := auth.auth.ResolveExternalUser(c.Request().Context(), claims.Subject)
		if err != nil {
			return err
		}

		setUser(c, user.ID, user.Role)
		return next(c)
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get(echo.HeaderAuthorization)
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
