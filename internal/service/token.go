package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/tcp_snm/codetrack/internal/track_errors"
	"golang.org/x/crypto/bcrypt"
)

func GenerateToken(secret []byte, userName string, expiry time.Time) (string, error) {
	now := time.Now()
	claims := UserCredentialClaims{
		UserName: userName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userName,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiry),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("%w, cannot sign token, %w", track_errors.ErrInternal, err)
	}
	return token, nil
}

// ParseToken verifies the signature and expiry of an HS256 token.
func ParseToken(secret []byte, tokenString string) (UserCredentialClaims, error) {
	var claims UserCredentialClaims
	token, err := jwt.ParseWithClaims(
		tokenString,
		&claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return secret, nil
		},
	)
	if err != nil || !token.Valid {
		return UserCredentialClaims{}, fmt.Errorf("%w, invalid or expired token", track_errors.ErrInvalidUserCredentials)
	}
	if claims.UserName == "" {
		return UserCredentialClaims{}, fmt.Errorf("%w, token carries no user_name", track_errors.ErrInvalidUserCredentials)
	}
	return claims, nil
}

func GeneratePasswordHash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("%w, password is too long", track_errors.ErrInvalidRequest)
		}
		return "", fmt.Errorf("%w, cannot hash password, %w", track_errors.ErrInternal, err)
	}
	return string(hash), nil
}

// PasswordMatches reports whether password hashes to hash.
func PasswordMatches(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
