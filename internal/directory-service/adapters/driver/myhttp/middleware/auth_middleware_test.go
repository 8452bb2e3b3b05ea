package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"membro-hub/internal/directory-service/core/domain/dto"
	"membro-hub/internal/directory-service/core/myerrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAuth verifies tokens against a fixed table.
type fakeAuth struct {
	tokens map[string]dto.Principal
}

func (fa *fakeAuth) VerifyToken(token string) (dto.Principal, error) {
	p, ok := fa.tokens[token]
	if !ok {
		return dto.Principal{}, myerrors.ErrUnauthorized
	}
	return p, nil
}

func (fa *fakeAuth) Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error) {
	return dto.LoginResponse{}, nil
}
func (fa *fakeAuth) Me(ctx context.Context, userID string) (dto.UserInfo, error) {
	return dto.UserInfo{}, nil
}
func (fa *fakeAuth) ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error {
	return nil
}
func (fa *fakeAuth) ForgotPassword(ctx context.Context, email string) error { return nil }
func (fa *fakeAuth) ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error {
	return nil
}
func (fa *fakeAuth) CreateAdmin(ctx context.Context, name, email, password string) (string, error) {
	return "", nil
}

func newFakeAuth() *fakeAuth {
	return &fakeAuth{tokens: map[string]dto.Principal{
		"admin-token":  {UserID: "admin-id", Role: "admin"},
		"member-token": {UserID: "member-id", Role: "user"},
	}}
}

func TestWrap(t *testing.T) {
	am := NewAuthMiddleware(newFakeAuth())

	var seen dto.Principal
	handler := am.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFrom(r.Context())
		require.True(t, ok)
		seen = p
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{name: "no header", header: "", status: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer nonsense", status: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer member-token", status: http.StatusOK},
		{name: "bare token without scheme", header: "member-token", status: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/membros", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)
			assert.Equal(t, tt.status, w.Code)
		})
	}

	assert.Equal(t, "member-id", seen.UserID)
}

func TestWrapAdmin(t *testing.T) {
	am := NewAuthMiddleware(newFakeAuth())

	handler := am.WrapAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{name: "anonymous", header: "", status: http.StatusUnauthorized},
		{name: "member is refused", header: "Bearer member-token", status: http.StatusForbidden},
		{name: "admin passes", header: "Bearer admin-token", status: http.StatusCreated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/membros", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}
