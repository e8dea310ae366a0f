package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/console-client/internal/adapters/http/dto"
	"github.com/jsamuelsen/console-client/internal/domain"
	"github.com/jsamuelsen/console-client/internal/platform/logging"
	"github.com/jsamuelsen/console-client/internal/ports"
)

// ContextKeyUser is the gin key of the authenticated *domain.UserInfo.
const ContextKeyUser = "user"

const bearerPrefix = "Bearer "

// RequireBearer resolves the Authorization bearer token through sessions.
// A missing or unknown token is answered with HTTP 401 and code 401.
func RequireBearer(sessions ports.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")

		token, ok := strings.CutPrefix(header, bearerPrefix)
		if !ok || strings.TrimSpace(token) == "" {
			dto.Abort(c, http.StatusUnauthorized, dto.CodeUnauthorized, "missing bearer token")
			return
		}

		user, err := sessions.Resolve(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			if !domain.IsUnauthorized(err) {
				dto.HandleError(c, err)
				c.Abort()

				return
			}

			dto.Abort(c, http.StatusUnauthorized, dto.CodeUnauthorized, "invalid or expired token")

			return
		}

		c.Set(ContextKeyUser, user)
		c.Request = c.Request.WithContext(logging.WithContext(c.Request.Context(),
			logging.FromContext(c.Request.Context()).With("user", user.UserName)))

		c.Next()
	}
}

// CurrentUser returns the user resolved by RequireBearer, or nil.
func CurrentUser(c *gin.Context) *domain.UserInfo {
	if v, ok := c.Get(ContextKeyUser); ok {
		if user, ok := v.(*domain.UserInfo); ok {
			return user
		}
	}

	return nil
}

// RequireRole lets the request through when the current user holds any of
// roles. Others get HTTP 403 with code 403. Must run after RequireBearer.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			dto.Abort(c, http.StatusUnauthorized, dto.CodeUnauthorized, "authentication required")
			return
		}

		if !slices.ContainsFunc(roles, func(r string) bool { return slices.Contains(user.Roles, r) }) {
			dto.Abort(c, http.StatusForbidden, dto.CodeForbidden,
				"requires one of roles: "+strings.Join(roles, ", "))

			return
		}

		c.Next()
	}
}
