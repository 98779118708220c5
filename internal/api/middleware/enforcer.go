package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/rewardsystem/rewards-api/internal/api/metrics"
	"github.com/rewardsystem/rewards-api/internal/core/domain"
	"github.com/rewardsystem/rewards-api/internal/core/ports"
	"github.com/rewardsystem/rewards-api/internal/core/token"
)

// PrincipalKey is the echo context key under which the Enforcer stores the
// resolved domain.Principal.
const PrincipalKey = "principal"

// Enforcer is the single request gate: it matches the route policy, validates
// the bearer token, re-resolves the caller's role from the user store, and
// checks it against the policy's role set. The token carries only the
// identity, so role changes take effect on the very next request at the cost
// of one store read per protected call.
func Enforcer(table PolicyTable, codec *token.Codec, users ports.UserRepository, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			policy := table.Match(c.Request().URL.Path)
			if policy.Public {
				return next(c)
			}

			raw, ok := bearerToken(c.Request().Header.Get("Authorization"))
			if !ok {
				return deny(http.StatusUnauthorized, "missing or invalid authorization header")
			}

			subject, err := codec.Subject(raw)
			if err != nil {
				return deny(http.StatusUnauthorized, "invalid token")
			}

			user, err := users.FindByUsername(c.Request().Context(), subject)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return deny(http.StatusUnauthorized, "invalid token")
				}
				return err
			}
			if !user.Enabled {
				log.Warn().Str("username", user.Username).Msg("request with token for disabled account")
				return deny(http.StatusUnauthorized, "invalid token")
			}

			if !policy.Allows(user.Role) {
				log.Debug().
					Str("username", user.Username).
					Str("role", string(user.Role)).
					Str("path", c.Request().URL.Path).
					Msg("role not allowed for route")
				return deny(http.StatusForbidden, "forbidden")
			}

			c.Set(PrincipalKey, domain.Principal{Username: user.Username, Role: user.Role})
			return next(c)
		}
	}
}

func deny(status int, msg string) error {
	reason := "unauthenticated"
	if status == http.StatusForbidden {
		reason = "forbidden"
	}
	metrics.AccessDeniedTotal.WithLabelValues(reason).Inc()
	return echo.NewHTTPError(status, msg)
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header value.
func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
