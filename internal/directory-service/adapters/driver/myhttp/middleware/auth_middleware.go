package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"membro-hub/internal/directory-service/core/domain/dto"
	"membro-hub/internal/directory-service/core/myerrors"
	"membro-hub/internal/directory-service/core/ports/driver"
)

type contextKey string

const principalKey contextKey = "principal"

var ErrAdminOnly = errors.New("acesso restrito a administradores")

type AuthMiddleware struct {
	auth driver.IAuthService
}

func NewAuthMiddleware(auth driver.IAuthService) *AuthMiddleware {
	return &AuthMiddleware{
		auth: auth,
	}
}

// Wrap verifies the bearer token and hands the resolved principal to the
// request context, so handlers receive an explicit identity value.
func (am *AuthMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := r.Header.Get("Authorization")
		if tokenString == "" {
			jsonError(w, http.StatusUnauthorized, myerrors.ErrUnauthorized)
			return
		}
		tokenString = strings.TrimPrefix(tokenString, "Bearer ")

		principal, err := am.auth.VerifyToken(tokenString)
		if err != nil {
			jsonError(w, http.StatusUnauthorized, myerrors.ErrUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
	})
}

// WrapAdmin additionally requires the admin role claim.
func (am *AuthMiddleware) WrapAdmin(next http.Handler) http.Handler {
	return am.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := PrincipalFrom(r.Context())
		if !ok || !principal.IsAdmin() {
			jsonError(w, http.StatusForbidden, ErrAdminOnly)
			return
		}
		next.ServeHTTP(w, r)
	}))
}

func WithPrincipal(ctx context.Context, p dto.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

func PrincipalFrom(ctx context.Context) (dto.Principal, bool) {
	p, ok := ctx.Value(principalKey).(dto.Principal)
	return p, ok
}
