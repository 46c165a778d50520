package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studytrack/progress-service/internal/services"
	"github.com/studytrack/progress-service/internal/utils"
	validatorpkg "github.com/studytrack/progress-service/internal/validator"
)

type ProgressHandler struct {
	BaseHandler
	service services.ProgressService
}

func NewProgressHandler(service services.ProgressService, logger utils.Logger) *ProgressHandler {
	return &ProgressHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// GetProgress returns the caller's completion records.
func (h *ProgressHandler) GetProgress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		h.respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	records, err := h.service.GetUserProgress(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}

// Upsert records or toggles completion for one of the caller's videos.
func (h *ProgressHandler) Upsert(c *gin.Context) {
	h.LogRequest(c, "Upserting progress")

	userID, ok := currentUserID(c)
	if !ok {
		h.respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req validatorpkg.ProgressUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	record, err := h.service.Upsert(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

func (h *ProgressHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrs validatorpkg.ValidationErrors
	if errors.As(err, &validationErrs) {
		h.respondValidationErrors(c, validationErrs)
		return
	}

	h.LogError(c, err, "Unexpected progress error")
	h.respondError(c, http.StatusInternalServerError, "Internal server error")
}
