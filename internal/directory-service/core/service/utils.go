package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	HashFactor = 10

	ResetCodeDigits = 6
)

var resetCodeMax = big.NewInt(1000000)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func hashPassword(password string) ([]byte, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), HashFactor)
	return bytes, err
}

func checkPassword(hashed []byte, password string) bool {
	return bcrypt.CompareHashAndPassword(hashed, []byte(password)) == nil
}

// generateResetCode draws a uniformly random 6-digit numeric code, leading
// zeros preserved.
func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, resetCodeMax)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", ResetCodeDigits, n), nil
}
