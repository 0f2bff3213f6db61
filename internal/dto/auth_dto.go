package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// CredentialsRequest is accepted as JSON or as a urlencoded form.
type CredentialsRequest struct {
	Username string `json:"username" form:"username" validate:"required,min=1,max=150"`
	Password string `json:"password" form:"password" validate:"required,min=1,max=72"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}
