package driven

import (
	"context"
	"time"

	"membro-hub/internal/directory-service/core/domain/models"
)

type IUserRepo interface {
	// user_id and error
	Create(ctx context.Context, user models.User) (string, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	// lookup by already-normalized email
	GetByEmail(ctx context.Context, email string) (models.User, error)
	UpdatePassword(ctx context.Context, id string, hash []byte) error
	SetResetCode(ctx context.Context, id, code string, expiresAt time.Time) error
	// ResetPassword replaces the hash and clears the reset fields in one write.
	ResetPassword(ctx context.Context, id string, hash []byte) error
}
