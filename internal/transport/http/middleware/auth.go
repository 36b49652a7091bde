package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Randle9000/phresh-api/internal/core/domain"
	"github.com/Randle9000/phresh-api/internal/usecase"
)

// userKey stores the authenticated principal on the gin context.
const userKey = "auth.user"

// ErrorResponse matches the handlers.ErrorResponse structure.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func newErrorResponse(c *gin.Context, errorMsg string) ErrorResponse {
	return ErrorResponse{
		Error:     errorMsg,
		RequestID: requestIDFromContext(c.Request.Context()),
	}
}

// RequireUser validates the Authorization header, resolves the bearer token
// to an active user, and stores the principal on the request context. Only
// the Bearer scheme is accepted; any other scheme is rejected outright.
// Every rejection answers 401 without distinguishing the cause.
func RequireUser(auth *usecase.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			unauthorized(c, "invalid authorization format: expected 'Bearer <token>'")
			return
		}

		token := strings.TrimSpace(parts[1])
		if token == "" {
			unauthorized(c, "missing access token")
			return
		}

		user, err := auth.ResolveUser(c.Request.Context(), token)
		if err != nil {
			unauthorized(c, "could not validate credentials")
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

func unauthorized(c *gin.Context, msg string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, newErrorResponse(c, msg))
}

// CurrentUser retrieves the authenticated principal stored by RequireUser.
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	val, exists := c.Get(userKey)
	if !exists {
		return nil, false
	}

	user, ok := val.(*domain.User)
	return user, ok
}
