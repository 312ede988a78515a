package postgres

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"survey/internal/domain/entity"
	domainerrors "survey/internal/domain/errors"
	"survey/internal/domain/repository"
	"survey/internal/infra/persistence/model"
)

// userRepository implements repository.UserRepository using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository. With no
// database configured it returns a repository whose every call reports
// the store as unavailable, so handlers keep answering instead of the
// process refusing to start.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	if db == nil {
		return &unavailableUserRepository{}
	}

	return &userRepository{db: db}
}

// Create persists a new user. A nickname unique violation becomes
// repository.ErrNicknameTaken; under concurrent registrations the
// database constraint decides the single winner.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrNicknameTaken
		}

		return errors.Wrap(err, "failed to create user")
	}

	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// FindByID retrieves a single user by their unique ID.
func (repo *userRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).First(&userM, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return toUserDomain(&userM), nil
}

// FindByNickname retrieves a single user by their exact nickname. The
// compare is case-sensitive, as stored.
func (repo *userRepository) FindByNickname(ctx context.Context, nickname string) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).Where("nickname = ?", nickname).First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by nickname")
	}

	return toUserDomain(&userM), nil
}

func fromUserDomain(user *entity.User) *model.UserModel {
	return &model.UserModel{
		ID:           user.ID,
		Nickname:     user.Nickname,
		PasswordHash: user.PasswordHash,
	}
}

func toUserDomain(userM *model.UserModel) *entity.User {
	return &entity.User{
		ID:           userM.ID,
		Nickname:     userM.Nickname,
		PasswordHash: userM.PasswordHash,
		CreatedAt:    userM.CreatedAt,
		UpdatedAt:    userM.UpdatedAt,
	}
}

// unavailableUserRepository stands in when DATABASE_URL is unset.
type unavailableUserRepository struct{}

func (*unavailableUserRepository) Create(context.Context, *entity.User) error {
	return domainerrors.ErrStoreUnavailable
}

func (*unavailableUserRepository) FindByID(context.Context, int64) (*entity.User, error) {
	return nil, domainerrors.ErrStoreUnavailable
}

func (*unavailableUserRepository) FindByNickname(context.Context, string) (*entity.User, error) {
	return nil, domainerrors.ErrStoreUnavailable
}
