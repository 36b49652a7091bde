package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Randle9000/phresh-api/internal/core/domain"
	"github.com/Randle9000/phresh-api/internal/repository"
	"github.com/Randle9000/phresh-api/internal/transport/http/middleware"
	"github.com/Randle9000/phresh-api/internal/usecase"
)

// CleaningHandler exposes cleaning listing endpoints. All of them require an
// authenticated caller; updates and deletes additionally require ownership.
type CleaningHandler struct {
	cleanings *usecase.CleaningService
}

// NewCleaningHandler constructs a CleaningHandler.
func NewCleaningHandler(cleanings *usecase.CleaningService) *CleaningHandler {
	return &CleaningHandler{cleanings: cleanings}
}

// RegisterRoutes attaches the cleaning endpoints to the router group. The
// group is expected to carry the authentication middleware already.
func (h *CleaningHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("", h.ListMine)
	rg.GET("/feed", h.Feed)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}

// Create publishes a new listing owned by the calling user.
func (h *CleaningHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	var req CreateCleaningRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, NewErrorResponse(c, "invalid cleaning payload"))
		return
	}

	cleaning, err := h.cleanings.Create(c.Request.Context(), user.ID, usecase.CreateCleaningInput{
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		CleaningType: domain.CleaningType(req.CleaningType),
	})
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrInvalidCleaning, Status: http.StatusUnprocessableEntity, Message: "invalid cleaning"},
		}, http.StatusInternalServerError, "could not create cleaning")
		return
	}

	c.JSON(http.StatusCreated, newCleaningPublic(cleaning))
}

// Get returns a single listing by identifier.
func (h *CleaningHandler) Get(c *gin.Context) {
	cleaning, err := h.cleanings.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "no cleaning found with that id"},
		}, http.StatusInternalServerError, "could not fetch cleaning")
		return
	}

	c.JSON(http.StatusOK, newCleaningPublic(cleaning))
}

// ListMine returns the calling user's own listings.
func (h *CleaningHandler) ListMine(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	cleanings, err := h.cleanings.ListByOwner(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "could not list cleanings"))
		return
	}

	c.JSON(http.StatusOK, newCleaningList(cleanings))
}

// Feed returns every published listing, newest first.
func (h *CleaningHandler) Feed(c *gin.Context) {
	cleanings, err := h.cleanings.Feed(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "could not fetch feed"))
		return
	}

	c.JSON(http.StatusOK, newCleaningList(cleanings))
}

// Update applies the submitted fields to a listing the calling user owns.
func (h *CleaningHandler) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	var req UpdateCleaningRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, NewErrorResponse(c, "invalid cleaning payload"))
		return
	}

	var cleaningType *domain.CleaningType
	if req.CleaningType != nil {
		ct := domain.CleaningType(*req.CleaningType)
		cleaningType = &ct
	}

	cleaning, err := h.cleanings.Update(c.Request.Context(), user.ID, c.Param("id"), domain.CleaningUpdate{
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		CleaningType: cleaningType,
	})
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "no cleaning found with that id"},
			{Err: usecase.ErrForbidden, Status: http.StatusForbidden, Message: "users are only able to modify cleanings they own"},
			{Err: usecase.ErrInvalidCleaning, Status: http.StatusUnprocessableEntity, Message: "invalid cleaning"},
		}, http.StatusInternalServerError, "could not update cleaning")
		return
	}

	c.JSON(http.StatusOK, newCleaningPublic(cleaning))
}

// Delete removes a listing the calling user owns.
func (h *CleaningHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	if err := h.cleanings.Delete(c.Request.Context(), user.ID, c.Param("id")); err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "no cleaning found with that id"},
			{Err: usecase.ErrForbidden, Status: http.StatusForbidden, Message: "users are only able to delete cleanings they own"},
		}, http.StatusInternalServerError, "could not delete cleaning")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "cleaning deleted"})
}
