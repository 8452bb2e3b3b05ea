package handle

import (
	"context"
	"errors"
	"net/http"
	"time"

	"membro-hub/internal/directory-service/adapters/driver/myhttp/middleware"
	"membro-hub/internal/directory-service/core/domain/dto"
	"membro-hub/internal/directory-service/core/myerrors"
	"membro-hub/internal/directory-service/core/ports/driver"
	"membro-hub/internal/mylogger"
)

type AuthHandler struct {
	authService driver.IAuthService
	mylog       mylogger.Logger
}

func NewAuthHandler(authService driver.IAuthService, mylog mylogger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		mylog:       mylog,
	}
}

func (ah *AuthHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dto.LoginRequest

		mylog := ah.mylog.Action("Login")

		if err := decodeJSON(r, &req); err != nil {
			mylog.Error("failed to parse login request", err)
			jsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		resp, err := ah.authService.Login(ctx, req)
		if err != nil {
			jsonError(w, statusFor(err), err)
			return
		}

		jsonResponse(w, http.StatusOK, resp)
	}
}

func (ah *AuthHandler) Me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := middleware.PrincipalFrom(r.Context())
		if !ok {
			jsonError(w, http.StatusUnauthorized, myerrors.ErrUnauthorized)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		user, err := ah.authService.Me(ctx, principal.UserID)
		if err != nil {
			jsonError(w, statusFor(err), err)
			return
		}

		jsonResponse(w, http.StatusOK, map[string]interface{}{"user": user})
	}
}

func (ah *AuthHandler) ChangePassword() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := middleware.PrincipalFrom(r.Context())
		if !ok {
			jsonError(w, http.StatusUnauthorized, myerrors.ErrUnauthorized)
			return
		}

		var req dto.ChangePasswordRequest
		if err := decodeJSON(r, &req); err != nil {
			jsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		if err := ah.authService.ChangePassword(ctx, principal.UserID, req); err != nil {
			jsonError(w, statusFor(err), err)
			return
		}

		jsonResponse(w, http.StatusOK, map[string]interface{}{"success": true})
	}
}

func (ah *AuthHandler) ForgotPassword() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dto.ForgotPasswordRequest

		mylog := ah.mylog.Action("ForgotPassword")

		if err := decodeJSON(r, &req); err != nil {
			jsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		if err := ah.authService.ForgotPassword(ctx, req.Email); err != nil {
			mylog.Error("forgot password failed", err)
			jsonError(w, http.StatusInternalServerError, errors.New("erro interno"))
			return
		}

		// the same answer whether or not the account exists
		jsonResponse(w, http.StatusOK, map[string]interface{}{
			"message": "se o email estiver cadastrado, um código de recuperação foi enviado",
		})
	}
}

func (ah *AuthHandler) ResetPassword() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dto.ResetPasswordRequest

		if err := decodeJSON(r, &req); err != nil {
			jsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		if err := ah.authService.ResetPassword(ctx, req); err != nil {
			jsonError(w, statusFor(err), err)
			return
		}

		jsonResponse(w, http.StatusOK, map[string]interface{}{
			"message": "senha alterada com sucesso",
		})
	}
}
