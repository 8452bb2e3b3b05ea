package memory

import (
	"context"
	"sync"
	"time"

	"membro-hub/internal/directory-service/core/domain/models"
	"membro-hub/internal/directory-service/core/myerrors"

	"github.com/google/uuid"
)

// UserRepo keeps users in process memory. It backs the demo serve mode and
// the service tests.
type UserRepo struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewUserRepo() *UserRepo {
	return &UserRepo{
		users: make(map[string]models.User),
	}
}

func (ur *UserRepo) Create(ctx context.Context, user models.User) (string, error) {
	ur.mu.Lock()
	defer ur.mu.Unlock()

	for _, u := range ur.users {
		if u.Email == user.Email {
			return "", myerrors.ErrEmailRegistered
		}
	}

	user.UserId = uuid.NewString()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	ur.users[user.UserId] = user
	return user.UserId, nil
}

func (ur *UserRepo) GetByID(ctx context.Context, id string) (models.User, error) {
	ur.mu.RLock()
	defer ur.mu.RUnlock()

	u, ok := ur.users[id]
	if !ok {
		return models.User{}, myerrors.ErrUserNotFound
	}
	return u, nil
}

func (ur *UserRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	ur.mu.RLock()
	defer ur.mu.RUnlock()

	for _, u := range ur.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, myerrors.ErrUserNotFound
}

func (ur *UserRepo) UpdatePassword(ctx context.Context, id string, hash []byte) error {
	ur.mu.Lock()
	defer ur.mu.Unlock()

	u, ok := ur.users[id]
	if !ok {
		return myerrors.ErrUserNotFound
	}
	u.PasswordHash = hash
	u.UpdatedAt = time.Now()
	ur.users[id] = u
	return nil
}

func (ur *UserRepo) SetResetCode(ctx context.Context, id, code string, expiresAt time.Time) error {
	ur.mu.Lock()
	defer ur.mu.Unlock()

	u, ok := ur.users[id]
	if !ok {
		return myerrors.ErrUserNotFound
	}
	u.ResetCode = &code
	u.ResetExpiresAt = &expiresAt
	u.UpdatedAt = time.Now()
	ur.users[id] = u
	return nil
}

// ResetPassword swaps the hash and drops the reset fields in one critical
// section; no reader observes a half-applied state.
func (ur *UserRepo) ResetPassword(ctx context.Context, id string, hash []byte) error {
	ur.mu.Lock()
	defer ur.mu.Unlock()

	u, ok := ur.users[id]
	if !ok {
		return myerrors.ErrUserNotFound
	}
	u.PasswordHash = hash
	u.ResetCode = nil
	u.ResetExpiresAt = nil
	u.UpdatedAt = time.Now()
	ur.users[id] = u
	return nil
}
