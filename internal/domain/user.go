package domain

// UserRole is carried in the token claims.
type UserRole string

const (
	RoleAdmin UserRole = "admin"
)

// LoginRequest is the payload of POST /v1/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the signed bearer token.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}
