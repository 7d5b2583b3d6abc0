package dto

// CredentialsForm is bound from both the login and the register forms.
// Validation runs before any backend call is issued.
type CredentialsForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// TokenResponse is the backend's answer to POST /token (form-encoded login).
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterResponse: the backend signals success with either an id or a message.
type RegisterResponse struct {
	Id      string `json:"id,omitempty"`
	Message string `json:"message,omitempty"`
}

// ErrorDetail is the backend's generic error envelope.
type ErrorDetail struct {
	Detail string `json:"detail"`
}
