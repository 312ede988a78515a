// Package usecase defines the application's business logic interfaces and
// their input/output DTOs. The delivery layer binds requests into these
// DTOs and never touches domain internals directly.
package usecase

import "context"

// RegisterInput carries the registration request.
type RegisterInput struct {
	Nickname string `json:"nickname"`
	Password string `json:"password"`
}

// LoginInput carries the login request.
type LoginInput struct {
	Nickname string `json:"nickname"`
	Password string `json:"password"`
}

// UserOutput is the public view of a user. The password hash is never
// part of any output.
type UserOutput struct {
	ID       int64  `json:"id"`
	Nickname string `json:"nickname"`
}

// TokenOutput is returned by registration and login.
type TokenOutput struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	User        UserOutput `json:"user"`
}

// AccountUsecase orchestrates registration, login and session resolution.
type AccountUsecase interface {
	// Register creates an account and issues a session token.
	Register(ctx context.Context, input *RegisterInput) (*TokenOutput, error)

	// Login verifies credentials and issues a session token. Unknown
	// nickname and wrong password are indistinguishable to the caller.
	Login(ctx context.Context, input *LoginInput) (*TokenOutput, error)

	// Me resolves the raw Authorization header value to the public view
	// of the authenticated user.
	Me(ctx context.Context, authorization string) (*UserOutput, error)
}
