package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// ConfirmationClaims are carried in email confirmation links. The code
// claim must match the one-time code stored on the person record.
type ConfirmationClaims struct {
	PersonID int64  `json:"pid"`
	Code     string `json:"code"`
	jwt.RegisteredClaims
}

// GenerateConfirmationToken signs a confirmation token for the given person
// and one-time code, valid for ttl.
func GenerateConfirmationToken(secret string, personID int64, code string, ttl time.Duration) (string, error) {
	claims := ConfirmationClaims{
		PersonID: personID,
		Code:     code,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseConfirmationToken validates a confirmation token and returns its
// claims. Expired or tampered tokens fail with ErrInvalidToken.
func ParseConfirmationToken(secret, tokenString string) (*ConfirmationClaims, error) {
	claims := &ConfirmationClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
