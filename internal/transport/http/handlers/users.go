package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Randle9000/phresh-api/internal/transport/http/middleware"
	"github.com/Randle9000/phresh-api/internal/usecase"
)

// UserHandler exposes account registration, login, and self-service endpoints.
type UserHandler struct {
	users *usecase.UserService
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(users *usecase.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// RegisterRoutes attaches the user endpoints to the router group.
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup, requireUser gin.HandlerFunc) {
	rg.POST("/register", h.Register)
	rg.POST("/login/token", h.Login)
	rg.GET("/me", requireUser, h.Me)
	rg.PUT("/me", requireUser, h.UpdateMe)
}

// Register creates a new account and answers with the stored user and a
// fresh access token, so clients are logged in immediately.
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, NewErrorResponse(c, "invalid registration payload"))
		return
	}

	user, err := h.users.Register(c.Request.Context(), usecase.RegisterUserInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrEmailTaken, Status: http.StatusConflict, Message: "that email is already taken"},
			{Err: usecase.ErrUsernameTaken, Status: http.StatusConflict, Message: "that username is already taken"},
			{Err: usecase.ErrInvalidUsername, Status: http.StatusUnprocessableEntity, Message: "invalid username"},
			{Err: usecase.ErrWeakPassword, Status: http.StatusUnprocessableEntity, Message: "password does not meet the policy"},
		}, http.StatusInternalServerError, "could not register user")
		return
	}

	_, token, err := h.users.Authenticate(c.Request.Context(), user.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "could not issue access token"))
		return
	}

	c.JSON(http.StatusCreated, newUserPublic(user, &token))
}

// Login verifies an email and password pair submitted as form data and
// answers with a bearer token. The username form field carries the email.
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, NewErrorResponse(c, "username and password are required"))
		return
	}

	_, token, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		c.Header("WWW-Authenticate", "Bearer")
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrInvalidCredentials, Status: http.StatusUnauthorized, Message: "authentication was unsuccessful"},
		}, http.StatusInternalServerError, "could not log in")
		return
	}

	c.JSON(http.StatusOK, AccessTokenResponse{
		AccessToken: token.Token,
		TokenType:   token.TokenType,
	})
}

// Me returns the calling user's account.
func (h *UserHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	c.JSON(http.StatusOK, newUserPublic(user, nil))
}

// UpdateMe applies self-service changes to the calling user's account.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, NewErrorResponse(c, "invalid update payload"))
		return
	}

	updated, err := h.users.UpdateSelf(c.Request.Context(), *user, usecase.UpdateUserInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrEmailTaken, Status: http.StatusConflict, Message: "that email is already taken"},
			{Err: usecase.ErrUsernameTaken, Status: http.StatusConflict, Message: "that username is already taken"},
			{Err: usecase.ErrInvalidUsername, Status: http.StatusUnprocessableEntity, Message: "invalid username"},
			{Err: usecase.ErrWeakPassword, Status: http.StatusUnprocessableEntity, Message: "password does not meet the policy"},
		}, http.StatusInternalServerError, "could not update user")
		return
	}

	c.JSON(http.StatusOK, newUserPublic(updated, nil))
}
