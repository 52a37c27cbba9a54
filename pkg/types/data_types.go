package types

// UserResponse is the safe projection of an account returned to clients.
// The password hash never appears here.
type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// AuthResponse is returned whenever a session token is issued.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// OTPSentResponse acknowledges that a one-time code was dispatched.
type OTPSentResponse struct {
	Message string `json:"message"`
	Email   string `json:"email"`
}

// ErrorResponse is the JSON error body shared by all endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}
