package http

// RegisterRequest carries the registration fields.
type RegisterRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"pass_word"`
}

// LoginRequest carries the email login fields.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"pass_word"`
}

// ForgotPasswordRequest asks for a reset code to be emailed.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest confirms a reset with the emailed code.
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"new_password"`
}

// TokenResponse is returned by login and extend-token.
type TokenResponse struct {
	Message     string `json:"message"`
	AccessToken string `json:"accessToken"`
}
