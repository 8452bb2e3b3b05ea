package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"membro-hub/internal/config"
	"membro-hub/internal/directory-service/core/domain/dto"
	"membro-hub/internal/directory-service/core/domain/models"
	"membro-hub/internal/directory-service/core/myerrors"
	"membro-hub/internal/directory-service/core/ports/driven"
	"membro-hub/internal/mylogger"
)

type AuthService struct {
	ctx      context.Context
	cfg      *config.Config
	userRepo driven.IUserRepo
	notifier driven.IResetNotifier
	mylog    mylogger.Logger
}

func NewAuthService(
	ctx context.Context,
	cfg *config.Config,
	userRepo driven.IUserRepo,
	notifier driven.IResetNotifier,
	mylog mylogger.Logger,
) *AuthService {
	return &AuthService{
		ctx:      ctx,
		cfg:      cfg,
		userRepo: userRepo,
		notifier: notifier,
		mylog:    mylog,
	}
}

// publicUser strips the credential material from a user record. The password
// hash never leaves the service.
func publicUser(u models.User) dto.UserInfo {
	return dto.UserInfo{
		ID:    u.UserId,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}

func (as *AuthService) Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error) {
	mylog := as.mylog.Action("Login")

	email := normalizeEmail(req.Email)
	user, err := as.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, myerrors.ErrUserNotFound) {
			// same failure as a wrong password, the response must not
			// reveal which one it was
			mylog.Warn("login failed", "reason", "unknown email")
			return dto.LoginResponse{}, myerrors.ErrInvalidCredentials
		}
		mylog.Error("failed to load user", err)
		return dto.LoginResponse{}, fmt.Errorf("cannot load user: %w", err)
	}

	if !checkPassword(user.PasswordHash, req.Password) {
		mylog.Warn("login failed", "reason", "password mismatch")
		return dto.LoginResponse{}, myerrors.ErrInvalidCredentials
	}

	token, err := issueToken(as.cfg.App.JwtSecret, as.cfg.App.TokenTTL, user.UserId, user.Role)
	if err != nil {
		mylog.Error("failed to sign token", err)
		return dto.LoginResponse{}, fmt.Errorf("cannot sign token: %w", err)
	}

	mylog.Info("user logged in", "user_id", user.UserId)
	return dto.LoginResponse{
		User:      publicUser(user),
		Token:     token,
		TokenType: "Bearer",
	}, nil
}

func (as *AuthService) Me(ctx context.Context, userID string) (dto.UserInfo, error) {
	user, err := as.userRepo.GetByID(ctx, userID)
	if err != nil {
		return dto.UserInfo{}, err
	}
	return publicUser(user), nil
}

func (as *AuthService) ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error {
	mylog := as.mylog.Action("ChangePassword")

	user, err := as.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	current := strings.TrimSpace(req.CurrentPassword)
	newPassword := strings.TrimSpace(req.NewPassword)
	confirm := strings.TrimSpace(req.Confirm)

	if current == "" || newPassword == "" {
		return myerrors.ErrMissingFields
	}
	if newPassword != confirm {
		return myerrors.ErrConfirmationMismatch
	}
	if !checkPassword(user.PasswordHash, current) {
		return myerrors.ErrIncorrectCurrentPassword
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		mylog.Error("failed to hash password", err)
		return fmt.Errorf("cannot hash password: %w", err)
	}
	if err := as.userRepo.UpdatePassword(ctx, user.UserId, hash); err != nil {
		mylog.Error("failed to store new password", err)
		return fmt.Errorf("cannot store password: %w", err)
	}

	mylog.Info("password changed", "user_id", user.UserId)
	return nil
}

// ForgotPassword reports success whether or not the email belongs to an
// account, so the endpoint cannot be used to enumerate users.
func (as *AuthService) ForgotPassword(ctx context.Context, email string) error {
	mylog := as.mylog.Action("ForgotPassword")

	user, err := as.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, myerrors.ErrUserNotFound) {
			mylog.Debug("reset requested for unknown email")
			return nil
		}
		mylog.Error("failed to load user", err)
		return fmt.Errorf("cannot load user: %w", err)
	}

	code, err := generateResetCode()
	if err != nil {
		mylog.Error("failed to generate reset code", err)
		return fmt.Errorf("cannot generate code: %w", err)
	}

	expiresAt := time.Now().Add(as.cfg.App.ResetCodeTTL)
	if err := as.userRepo.SetResetCode(ctx, user.UserId, code, expiresAt); err != nil {
		mylog.Error("failed to persist reset code", err)
		return fmt.Errorf("cannot persist code: %w", err)
	}

	if err := as.notifier.SendResetCode(ctx, user.Email, code, as.cfg.App.ResetCodeTTL); err != nil {
		// the caller still gets a success response; an undelivered code
		// simply times out
		mylog.Error("failed to deliver reset code", err, "user_id", user.UserId)
	}

	mylog.Info("reset code issued", "user_id", user.UserId)
	return nil
}

func (as *AuthService) ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error {
	mylog := as.mylog.Action("ResetPassword")

	email := normalizeEmail(req.Email)
	code := strings.TrimSpace(req.Code)
	newPassword := strings.TrimSpace(req.NewPassword)
	confirm := strings.TrimSpace(req.Confirm)

	if email == "" || code == "" || newPassword == "" || confirm == "" {
		return myerrors.ErrMissingFields
	}
	if newPassword != confirm {
		return myerrors.ErrConfirmationMismatch
	}

	user, err := as.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, myerrors.ErrUserNotFound) {
			// indistinguishable from a wrong code
			return myerrors.ErrInvalidCode
		}
		mylog.Error("failed to load user", err)
		return fmt.Errorf("cannot load user: %w", err)
	}

	if !user.HasActiveReset() {
		return myerrors.ErrInvalidCode
	}
	if subtle.ConstantTimeCompare([]byte(*user.ResetCode), []byte(code)) != 1 {
		return myerrors.ErrInvalidCode
	}
	if time.Now().After(*user.ResetExpiresAt) {
		return myerrors.ErrExpiredCode
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		mylog.Error("failed to hash password", err)
		return fmt.Errorf("cannot hash password: %w", err)
	}
	// hash replacement and code clearing land in one write
	if err := as.userRepo.ResetPassword(ctx, user.UserId, hash); err != nil {
		mylog.Error("failed to reset password", err)
		return fmt.Errorf("cannot reset password: %w", err)
	}

	mylog.Info("password reset", "user_id", user.UserId)
	return nil
}

// CreateAdmin provisions an administrative account, used by the CLI.
func (as *AuthService) CreateAdmin(ctx context.Context, name, email, password string) (string, error) {
	mylog := as.mylog.Action("CreateAdmin")

	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return "", myerrors.ErrMissingFields
	}

	if _, err := as.userRepo.GetByEmail(ctx, email); err == nil {
		return "", myerrors.ErrEmailRegistered
	} else if !errors.Is(err, myerrors.ErrUserNotFound) {
		return "", fmt.Errorf("cannot check existing user: %w", err)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return "", fmt.Errorf("cannot hash password: %w", err)
	}

	id, err := as.userRepo.Create(ctx, models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	})
	if err != nil {
		mylog.Error("failed to create admin", err)
		return "", fmt.Errorf("cannot create admin: %w", err)
	}

	mylog.Info("admin created", "user_id", id)
	return id, nil
}

func (as *AuthService) VerifyToken(token string) (dto.Principal, error) {
	return verifyToken(as.cfg.App.JwtSecret, token)
}
