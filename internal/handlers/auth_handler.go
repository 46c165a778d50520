package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studytrack/progress-service/internal/models"
	"github.com/studytrack/progress-service/internal/services"
	"github.com/studytrack/progress-service/internal/utils"
	validatorpkg "github.com/studytrack/progress-service/internal/validator"
)

type AuthHandler struct {
	BaseHandler
	service services.AuthService
	auth    *SessionAuthMiddleware
}

func NewAuthHandler(service services.AuthService, auth *SessionAuthMiddleware, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
		auth:        auth,
	}
}

// Signup creates an account and opens a session for it.
func (h *AuthHandler) Signup(c *gin.Context) {
	h.LogRequest(c, "Signing up")

	var req validatorpkg.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.service.Signup(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	if err := h.auth.IssueSession(c, user.ID); err != nil {
		h.LogError(c, err, "Failed to open session after signup")
		h.respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusCreated, models.SessionResponse{User: user})
}

// Login verifies credentials and opens a session.
func (h *AuthHandler) Login(c *gin.Context) {
	h.LogRequest(c, "Logging in")

	var req validatorpkg.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	if err := h.auth.IssueSession(c, user.ID); err != nil {
		h.LogError(c, err, "Failed to open session after login")
		h.respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, models.SessionResponse{User: user})
}

// Logout destroys the caller's session. Safe to call anonymously.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.LogRequest(c, "Logging out")

	if err := h.auth.ClearSession(c); err != nil {
		h.LogError(c, err, "Failed to destroy session")
		h.respondError(c, http.StatusInternalServerError, "Failed to log out")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}

// Session reports the current user, or {"user": null} for anonymous callers.
// A session whose profile has vanished is destroyed on the way out.
func (h *AuthHandler) Session(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusOK, models.SessionResponse{User: nil})
		return
	}

	user, err := h.service.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		h.LogError(c, err, "Failed to resolve session user")
		h.respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	if user == nil {
		// Stale session; the account behind it is gone.
		if err := h.auth.ClearSession(c); err != nil {
			h.LogError(c, err, "Failed to destroy stale session")
		}
		c.JSON(http.StatusOK, models.SessionResponse{User: nil})
		return
	}

	c.JSON(http.StatusOK, models.SessionResponse{User: user})
}

func (h *AuthHandler) handleAuthError(c *gin.Context, err error) {
	var validationErrs validatorpkg.ValidationErrors
	switch {
	case errors.As(err, &validationErrs):
		h.respondValidationErrors(c, validationErrs)
	case errors.Is(err, services.ErrUsernameTaken):
		h.respondError(c, http.StatusBadRequest, "Username already exists")
	case errors.Is(err, services.ErrInvalidCredentials):
		h.respondError(c, http.StatusUnauthorized, "Invalid credentials")
	default:
		h.LogError(c, err, "Unexpected auth error")
		h.respondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
