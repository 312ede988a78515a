// Package impl contains the implementation of the application's business
// logic.
package impl

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"go.uber.org/fx"

	"survey/internal/domain/entity"
	domainerrors "survey/internal/domain/errors"
	"survey/internal/domain/repository"
	"survey/internal/domain/service"
	"survey/internal/usecase"
)

const (
	// Length minimums count characters, not bytes; a one-character CJK
	// nickname is still one character.
	minNicknameLength = 2
	minPasswordLength = 6

	tokenType = "bearer"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	users    repository.UserRepository
	hasher   service.PasswordHasher
	tokens   service.TokenService
	resolver sessionResolver
	logger   *slog.Logger
}

// AccountServiceParams holds dependencies for accountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	Users  repository.UserRepository
	Hasher service.PasswordHasher
	Tokens service.TokenService
	Logger *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all
// dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		users:  params.Users,
		hasher: params.Hasher,
		tokens: params.Tokens,
		resolver: sessionResolver{
			users:  params.Users,
			tokens: params.Tokens,
		},
		logger: params.Logger,
	}
}

// Register validates the input shape, hashes the password and persists the
// user. The store's unique constraint is the single arbiter of nickname
// uniqueness: a violation surfaces as the Conflict outcome, never as a
// generic failure.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.TokenOutput, error) {
	nickname := strings.TrimSpace(input.Nickname)
	if utf8.RuneCountInString(nickname) < minNicknameLength {
		return nil, domainerrors.ErrNicknameTooShort
	}
	if utf8.RuneCountInString(input.Password) < minPasswordLength {
		return nil, domainerrors.ErrPasswordTooShort
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}

	user := &entity.User{
		Nickname:     nickname,
		PasswordHash: hash,
	}
	if err := srv.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrNicknameTaken) {
			return nil, domainerrors.ErrNicknameTaken
		}

		// Errors that already carry an outcome (store unavailable) pass
		// through; anything else is an opaque creation failure.
		var appErr domainerrors.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		srv.logger.Error("create user failed", slog.Any("error", err))

		return nil, domainerrors.ErrUserCreationFailed
	}

	srv.logger.Info("user registered", slog.Int64("userID", user.ID))

	return srv.issueToken(user)
}

// Login verifies credentials. The password shape check runs before the
// store lookup, matching registration; absent user and wrong password
// collapse into one uniform outcome.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.TokenOutput, error) {
	nickname := strings.TrimSpace(input.Nickname)
	if utf8.RuneCountInString(input.Password) < minPasswordLength {
		return nil, domainerrors.ErrPasswordTooShort
	}

	user, err := srv.users.FindByNickname(ctx, nickname)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "find user by nickname")
	}
	if !srv.hasher.Verify(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	return srv.issueToken(user)
}

// Me delegates to the session resolver and returns the public user view.
func (srv *accountService) Me(ctx context.Context, authorization string) (*usecase.UserOutput, error) {
	user, err := srv.resolver.Resolve(ctx, authorization)
	if err != nil {
		return nil, err
	}

	return &usecase.UserOutput{ID: user.ID, Nickname: user.Nickname}, nil
}

func (srv *accountService) issueToken(user *entity.User) (*usecase.TokenOutput, error) {
	token, err := srv.tokens.Issue(map[string]any{
		"sub": strconv.FormatInt(user.ID, 10),
	})
	if err != nil {
		return nil, errors.Wrap(err, "issue token")
	}

	return &usecase.TokenOutput{
		AccessToken: token,
		TokenType:   tokenType,
		User:        usecase.UserOutput{ID: user.ID, Nickname: user.Nickname},
	}, nil
}
