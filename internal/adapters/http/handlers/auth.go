package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/console-client/internal/adapters/http/dto"
	"github.com/jsamuelsen/console-client/internal/domain"
	"github.com/jsamuelsen/console-client/internal/platform/logging"
	"github.com/jsamuelsen/console-client/internal/ports"
)

// AuthHandler serves /auth.
type AuthHandler struct {
	sessions ports.SessionStore
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(sessions ports.SessionStore) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

// Login handles POST /auth/login. Wrong credentials are answered with
// HTTP 401 and {code:401, message:"bad credentials"}.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	tokens, err := h.sessions.Login(c.Request.Context(), req.ToDomain())
	if domain.IsUnauthorized(err) {
		logging.FromContext(c.Request.Context()).Info("login rejected", slog.String("username", req.Username))
		dto.Fail(c, http.StatusUnauthorized, dto.CodeUnauthorized, dto.MessageBadCredentials)

		return
	}

	respond(c, tokens, err)
}

// RegisterRoutes mounts the handler on rg.
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/login", h.Login)
}
