package auth_service

import (
	"time"

	"github.com/tcp_snm/codetrack/internal/database"
	"github.com/tcp_snm/codetrack/internal/track_errors"
)

const (
	shortSession = 24 * time.Hour
	longSession  = 30 * 24 * time.Hour
)

var (
	msgUniqueKey = map[string]string{
		"uq_users_user_name": "user with that user_name already exist",
		"uq_users_email":     "user with that email already exist",
	}

	errMsgs = map[string]map[string]string{
		track_errors.CodeUniqueConstraint: msgUniqueKey,
	}
)

type AuthService struct {
	DB        database.Store
	JWTSecret []byte
}

type UserRegistration struct {
	UserName  string `json:"user_name" validate:"required,min=5,max=30,alphanum"`
	FirstName string `json:"first_name" validate:"required,max=50"`
	LastName  string `json:"last_name" validate:"required,max=50"`
	Password  string `json:"password" validate:"required,min=7,max=72"`
	Email     string `json:"email" validate:"required,email"`
}

type UserRegistrationResponse struct {
	UserName string `json:"user_name"`
	Email    string `json:"email"`
}

// UserLoginRequest identifies the user by user_name or by email.
type UserLoginRequest struct {
	UserName         *string `json:"user_name"`
	Email            *string `json:"email"`
	Password         string  `json:"password"`
	RememberForMonth bool    `json:"remember_for_month"`
}

type UserLoginResponse struct {
	UserName  string    `json:"user_name"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	IsAdmin   bool      `json:"is_admin"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
