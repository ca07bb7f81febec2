package ports

import "context"

// AuthService handles account registration and login. Both operations
// return a signed token on success.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (string, error)
	Login(ctx context.Context, username, password string) (string, error)
}
