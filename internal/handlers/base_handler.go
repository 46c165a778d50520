package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studytrack/progress-service/internal/models"
	"github.com/studytrack/progress-service/internal/utils"
	"github.com/studytrack/progress-service/internal/validator"
)

// BaseHandler carries the pieces every handler needs.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// LogRequest logs the start of handler work with the request-scoped logger.
func (h *BaseHandler) LogRequest(c *gin.Context, msg string) {
	utils.LoggerFromContext(c, h.logger).Debug(msg,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, msg string) {
	utils.LoggerFromContext(c, h.logger).Error(msg,
		"error", err,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	)
}

// respondError writes the uniform error body: {"error": message}.
func (h *BaseHandler) respondError(c *gin.Context, status int, message string) {
	c.JSON(status, models.ErrorResponse{Error: message})
}

// respondValidationErrors reports the first violated field, matching the
// client's expectation of a single human-readable message.
func (h *BaseHandler) respondValidationErrors(c *gin.Context, errs validator.ValidationErrors) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: errs.First()})
}

// currentUserID returns the authenticated user id from the request context.
func currentUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
