package ports

import "context"

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token   string
	IsAdmin bool
}

// AuthService verifies credentials and mints access tokens.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
}
