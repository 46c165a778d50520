package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studytrack/progress-service/internal/models"
	"github.com/studytrack/progress-service/internal/services"
	"github.com/studytrack/progress-service/internal/utils"
)

type AdminHandler struct {
	BaseHandler
	auth     services.AuthService
	student  services.StudentService
	progress services.ProgressService
}

func NewAdminHandler(auth services.AuthService, student services.StudentService, progress services.ProgressService, logger utils.Logger) *AdminHandler {
	return &AdminHandler{
		BaseHandler: NewBaseHandler(logger),
		auth:        auth,
		student:     student,
		progress:    progress,
	}
}

// ListStudents returns every account annotated with its resolved role.
func (h *AdminHandler) ListStudents(c *gin.Context) {
	students, err := h.student.ListStudents(c.Request.Context())
	if err != nil {
		h.LogError(c, err, "Failed to list students")
		h.respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, students)
}

// StudentProgress returns one user's completion records.
func (h *AdminHandler) StudentProgress(c *gin.Context) {
	records, err := h.student.GetStudentProgress(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.LogError(c, err, "Failed to fetch student progress")
		h.respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, records)
}

// AllProgress returns every completion record, newest first, each joined with
// its profile when one still exists.
func (h *AdminHandler) AllProgress(c *gin.Context) {
	records, err := h.progress.GetAllProgress(c.Request.Context())
	if err != nil {
		h.LogError(c, err, "Failed to fetch progress")
		h.respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, records)
}

// Setup bootstraps the initial admin account. Unauthenticated by design:
// nobody can hold the admin role before the first admin exists. The
// admin-exists guard makes it single-shot.
func (h *AdminHandler) Setup(c *gin.Context) {
	h.LogRequest(c, "Bootstrapping admin account")

	user, err := h.auth.BootstrapAdmin(c.Request.Context())
	if err != nil {
		if errors.Is(err, services.ErrAdminExists) {
			h.respondError(c, http.StatusBadRequest, "Admin user already exists")
			return
		}
		h.LogError(c, err, "Failed to bootstrap admin")
		h.respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusCreated, models.AdminSetupResponse{
		Message:  "Admin user created. Log in and change the password immediately.",
		Username: user.Username,
		Password: "admin",
	})
}
