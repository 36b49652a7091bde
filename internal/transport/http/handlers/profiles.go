package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Randle9000/phresh-api/internal/core/domain"
	"github.com/Randle9000/phresh-api/internal/repository"
	"github.com/Randle9000/phresh-api/internal/transport/http/middleware"
	"github.com/Randle9000/phresh-api/internal/usecase"
)

// ProfileHandler exposes public profile reads and owner updates.
type ProfileHandler struct {
	profiles *usecase.ProfileService
}

// NewProfileHandler constructs a ProfileHandler.
func NewProfileHandler(profiles *usecase.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// RegisterRoutes attaches the profile endpoints to the router group.
func (h *ProfileHandler) RegisterRoutes(rg *gin.RouterGroup, requireUser gin.HandlerFunc) {
	rg.GET("/me", requireUser, h.Mine)
	rg.PUT("/me", requireUser, h.UpdateMine)
	rg.GET("/:username", h.GetByUsername)
}

// GetByUsername returns the public profile for the named user. No
// authentication required.
func (h *ProfileHandler) GetByUsername(c *gin.Context) {
	username := c.Param("username")

	profile, err := h.profiles.GetByUsername(c.Request.Context(), username)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "no profile found for that username"},
		}, http.StatusInternalServerError, "could not fetch profile")
		return
	}

	c.JSON(http.StatusOK, newProfilePublic(profile))
}

// Mine returns the calling user's profile.
func (h *ProfileHandler) Mine(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	profile, err := h.profiles.GetOwn(c.Request.Context(), user.ID)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "no profile found"},
		}, http.StatusInternalServerError, "could not fetch profile")
		return
	}

	c.JSON(http.StatusOK, newProfilePublic(profile))
}

// UpdateMine applies the submitted fields to the calling user's profile.
func (h *ProfileHandler) UpdateMine(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, NewErrorResponse(c, "invalid profile payload"))
		return
	}

	profile, err := h.profiles.UpdateOwn(c.Request.Context(), user.ID, domain.ProfileUpdate{
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		Bio:         req.Bio,
		Image:       req.Image,
	})
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "no profile found"},
		}, http.StatusInternalServerError, "could not update profile")
		return
	}

	c.JSON(http.StatusOK, newProfilePublic(profile))
}
