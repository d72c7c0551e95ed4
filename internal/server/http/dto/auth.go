package dto

// RegisterRequest describes the signup payload.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// RegisterResponse returns the handle for the OTP verification step.
type RegisterResponse struct {
	Message   string `json:"message"`
	PendingID string `json:"pending_id"`
}

// VerifyOTPRequest confirms a pending signup.
type VerifyOTPRequest struct {
	PendingID string `json:"pending_id"`
	OTP       string `json:"otp"`
}

// LoginRequest describes the email/password payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse carries an issued bearer token.
type TokenResponse struct {
	Token string `json:"token"`
}
