package models

// AuthResponse carries the issued token and user summary back to the client
// after a successful registration or login.
type AuthResponse struct {
	Token   string      `json:"token"`
	Message string      `json:"message"`
	User    UserSummary `json:"user"`
}
