package identity

import "time"

// Roles understood by the authorization middleware.
const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleDispatcher = "dispatcher"
	RoleResponder  = "responder"
)

// User represents a registered account.
type User struct {
	ID           string
	Email        string
	Name         string
	Role         string
	PasswordHash []byte
	CreatedAt    time.Time
}

// Credentials carries a registration or login request.
type Credentials struct {
	Email    string
	Name     string
	Password string
}
