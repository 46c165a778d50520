package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studytrack/progress-service/internal/models"
	"github.com/studytrack/progress-service/internal/repositories"
	"github.com/studytrack/progress-service/internal/services"
	"github.com/studytrack/progress-service/internal/utils"
	validatorpkg "github.com/studytrack/progress-service/internal/validator"
)

type VideoHandler struct {
	BaseHandler
	service services.VideoService
}

func NewVideoHandler(service services.VideoService, logger utils.Logger) *VideoHandler {
	return &VideoHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// List returns the catalog in display order.
func (h *VideoHandler) List(c *gin.Context) {
	videos, err := h.service.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, videos)
}

// Create adds a catalog entry. Admin only.
func (h *VideoHandler) Create(c *gin.Context) {
	h.LogRequest(c, "Creating video")

	var req validatorpkg.VideoCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	video, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, video)
}

// Update applies a partial patch to a catalog entry. Admin only.
func (h *VideoHandler) Update(c *gin.Context) {
	h.LogRequest(c, "Updating video")

	var req validatorpkg.VideoUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	video, err := h.service.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, video)
}

// Delete removes a catalog entry. Admin only.
func (h *VideoHandler) Delete(c *gin.Context) {
	h.LogRequest(c, "Deleting video")

	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}

func (h *VideoHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrs validatorpkg.ValidationErrors
	switch {
	case errors.As(err, &validationErrs):
		h.respondValidationErrors(c, validationErrs)
	case errors.Is(err, repositories.ErrNotFound):
		h.respondError(c, http.StatusNotFound, "Video not found")
	default:
		h.LogError(c, err, "Unexpected video error")
		h.respondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
