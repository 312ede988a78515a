// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers
// and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"survey/internal/domain/entity"
)

// ErrUserNotFound is returned by lookups when no user matches.
var ErrUserNotFound = errors.New("user not found")

// ErrNicknameTaken is returned by Create when the nickname unique
// constraint is violated. The constraint is the single source of truth
// for uniqueness under concurrent registrations.
var ErrNicknameTaken = errors.New("nickname already registered")

// UserRepository defines the standard operations for user persistence.
// The application layer depends on this interface, not the concrete
// implementation.
type UserRepository interface {
	// Create persists a new user and fills in the store-assigned ID.
	Create(ctx context.Context, user *entity.User) error

	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id int64) (*entity.User, error)

	// FindByNickname retrieves a single user by their exact nickname.
	FindByNickname(ctx context.Context, nickname string) (*entity.User, error)
}
