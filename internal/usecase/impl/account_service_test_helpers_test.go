package impl

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"survey/internal/domain/entity"
	"survey/internal/domain/repository"
	"survey/internal/domain/service"
	"survey/internal/usecase"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeUserRepo is an in-memory UserRepository that enforces the nickname
// unique constraint and counts store accesses.
type fakeUserRepo struct {
	users  map[int64]*entity.User
	nextID int64

	// createErr, when set, fails every Create call with that error.
	createErr error

	createCalls     int
	findByIDCalls   int
	findByNickCalls int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*entity.User), nextID: 1}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.createCalls++
	if r.createErr != nil {
		return r.createErr
	}
	for _, existing := range r.users {
		if existing.Nickname == user.Nickname {
			return repository.ErrNicknameTaken
		}
	}
	user.ID = r.nextID
	r.nextID++
	stored := *user
	r.users[user.ID] = &stored

	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id int64) (*entity.User, error) {
	r.findByIDCalls++
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *user

	return &copied, nil
}

func (r *fakeUserRepo) FindByNickname(_ context.Context, nickname string) (*entity.User, error) {
	r.findByNickCalls++
	for _, user := range r.users {
		if user.Nickname == nickname {
			copied := *user

			return &copied, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

// fakeHasher records Hash calls and verifies by re-deriving the fake hash.
type fakeHasher struct {
	hashCalls int
}

func (h *fakeHasher) Hash(password string) (string, error) {
	h.hashCalls++

	return "hashed:" + password, nil
}

func (h *fakeHasher) Verify(password, hash string) bool {
	return hash == "hashed:"+password
}

// fakeTokenService hands out opaque token strings and decodes only the
// ones it issued; everything else is ErrTokenInvalid, just like an
// expired or tampered JWT.
type fakeTokenService struct {
	issued map[string]map[string]any
}

func newFakeTokenService() *fakeTokenService {
	return &fakeTokenService{issued: make(map[string]map[string]any)}
}

func (s *fakeTokenService) Issue(claims map[string]any) (string, error) {
	token := fmt.Sprintf("token-%d", len(s.issued)+1)
	copied := make(map[string]any, len(claims))
	for k, v := range claims {
		copied[k] = v
	}
	s.issued[token] = copied

	return token, nil
}

func (s *fakeTokenService) Decode(token string) (map[string]any, error) {
	claims, ok := s.issued[token]
	if !ok {
		return nil, service.ErrTokenInvalid
	}

	return claims, nil
}

type accountFixtures struct {
	service usecase.AccountUsecase
	repo    *fakeUserRepo
	hasher  *fakeHasher
	tokens  *fakeTokenService
}

func createTestAccountService() accountFixtures {
	repo := newFakeUserRepo()
	hasher := &fakeHasher{}
	tokens := newFakeTokenService()

	svc := NewAccountService(AccountServiceParams{
		Users:  repo,
		Hasher: hasher,
		Tokens: tokens,
		Logger: newDiscardLogger(),
	})

	return accountFixtures{service: svc, repo: repo, hasher: hasher, tokens: tokens}
}
