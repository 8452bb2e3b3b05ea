package service

import (
	"fmt"
	"time"

	"membro-hub/internal/directory-service/core/domain/dto"
	"membro-hub/internal/directory-service/core/myerrors"

	"github.com/golang-jwt/jwt"
)

func issueToken(secret string, ttl time.Duration, userID, role string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(ttl).Unix(),
	})
	return token.SignedString([]byte(secret))
}

// verifyToken decodes a bearer token and returns the principal embedded in
// its claims. Expiry is validated by the parser.
func verifyToken(secret, tokenString string) (dto.Principal, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return dto.Principal{}, myerrors.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return dto.Principal{}, myerrors.ErrUnauthorized
	}
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return dto.Principal{}, myerrors.ErrUnauthorized
	}
	role, _ := claims["role"].(string)

	return dto.Principal{UserID: userID, Role: role}, nil
}
