package driver

import (
	"context"

	"membro-hub/internal/directory-service/core/domain/dto"
)

type IAuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	Me(ctx context.Context, userID string) (dto.UserInfo, error)
	ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error
	CreateAdmin(ctx context.Context, name, email, password string) (string, error)
	VerifyToken(token string) (dto.Principal, error)
}
