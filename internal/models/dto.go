package models

// SessionUser is the public user shape returned by the auth endpoints and the
// admin student list.
type SessionUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
}

// NewSessionUser builds the public shape from a profile and an optional role row.
func NewSessionUser(profile *Profile, role *UserRole) *SessionUser {
	return &SessionUser{
		ID:       profile.UserID,
		Username: profile.Username,
		Name:     profile.Name,
		Role:     ResolveRole(role),
	}
}

// SessionResponse wraps the current user; User is null for anonymous callers.
type SessionResponse struct {
	User *SessionUser `json:"user"`
}

// ErrorResponse is the uniform error body: {"error": message}.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// SuccessResponse acknowledges mutations that return no entity.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// AdminSetupResponse echoes the bootstrap credentials exactly once.
type AdminSetupResponse struct {
	Message  string `json:"message"`
	Username string `json:"username"`
	Password string `json:"password"`
}
