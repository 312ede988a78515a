package impl

import (
	"context"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"survey/internal/domain/entity"
	domainerrors "survey/internal/domain/errors"
	"survey/internal/domain/repository"
	"survey/internal/domain/service"
)

const bearerPrefix = "Bearer "

// sessionResolver turns a raw Authorization header value into the user it
// identifies. It has no side effects and performs exactly one store read.
type sessionResolver struct {
	users  repository.UserRepository
	tokens service.TokenService
}

// Resolve requires the Bearer scheme, decodes the token, and looks up the
// subject. Every failure on this path is a 401 outcome; token-format
// sub-reasons are never surfaced.
func (r *sessionResolver) Resolve(ctx context.Context, authorization string) (*entity.User, error) {
	if !strings.HasPrefix(authorization, bearerPrefix) {
		return nil, domainerrors.ErrNotAuthenticated
	}

	token := strings.TrimSpace(authorization[len(bearerPrefix):])
	claims, err := r.tokens.Decode(token)
	if err != nil {
		if errors.Is(err, service.ErrTokenInvalid) {
			return nil, domainerrors.ErrInvalidToken
		}

		return nil, errors.Wrap(err, "decode session token")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, domainerrors.ErrInvalidToken
	}
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return nil, domainerrors.ErrInvalidToken
	}

	user, err := r.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrTokenUserNotFound
		}

		return nil, errors.Wrap(err, "resolve session user")
	}

	return user, nil
}
