package validator

// SignupRequest carries the signup form. Username is case-folded to lowercase
// before it is checked or stored.
type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest carries credentials; username matching is case-insensitive.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// VideoCreateRequest requires every catalog field. The order fields are
// pointers so an explicit zero passes "required".
type VideoCreateRequest struct {
	Folder      string `json:"folder" validate:"required"`
	Title       string `json:"title" validate:"required"`
	FolderOrder *int   `json:"folderOrder" validate:"required"`
	VideoOrder  *int   `json:"videoOrder" validate:"required"`
}

// VideoUpdateRequest accepts any subset of catalog fields; nil fields are
// left untouched.
type VideoUpdateRequest struct {
	Folder      *string `json:"folder"`
	Title       *string `json:"title"`
	FolderOrder *int    `json:"folderOrder"`
	VideoOrder  *int    `json:"videoOrder"`
}

// ProgressUpsertRequest toggles completion for one video. CompletedAt is an
// optional RFC 3339 timestamp; when absent it defaults server-side ("now"
// when marking complete, null otherwise).
type ProgressUpsertRequest struct {
	VideoID     string  `json:"videoId" validate:"required,uuid"`
	Completed   *bool   `json:"completed" validate:"required"`
	CompletedAt *string `json:"completedAt"`
}
