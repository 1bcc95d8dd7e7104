package auth_service

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/codetrack/internal/database"
	"github.com/tcp_snm/codetrack/internal/service"
	"github.com/tcp_snm/codetrack/internal/track_errors"
)

// Login checks the credentials and issues a signed session token.
func (a *AuthService) Login(
	ctx context.Context,
	request UserLoginRequest,
) (UserLoginResponse, error) {
	if len(a.JWTSecret) == 0 {
		err := fmt.Errorf("%w, jwt secret is not configured", track_errors.ErrInternal)
		log.Error(err)
		return UserLoginResponse{}, err
	}

	// fetch the user
	user, err := a.fetchLoginUser(ctx, request)
	if err != nil {
		return UserLoginResponse{}, err
	}

	// verify password
	if !service.PasswordMatches(user.PasswordHash, request.Password) {
		log.WithField("user_name", user.UserName).Warn("login with wrong password")
		return UserLoginResponse{}, track_errors.ErrInvalidUserCredentials
	}

	// issue token
	session := shortSession
	if request.RememberForMonth {
		session = longSession
	}
	expiry := time.Now().Add(session)
	token, err := service.GenerateToken(a.JWTSecret, user.UserName, expiry)
	if err != nil {
		log.Error(err)
		return UserLoginResponse{}, err
	}

	return UserLoginResponse{
		UserName:  user.UserName,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		IsAdmin:   user.IsAdmin,
		Token:     token,
		ExpiresAt: expiry,
	}, nil
}

func (a *AuthService) fetchLoginUser(
	ctx context.Context,
	request UserLoginRequest,
) (database.User, error) {
	var (
		user database.User
		err  error
	)
	switch {
	case request.UserName != nil && strings.TrimSpace(*request.UserName) != "":
		user, err = a.DB.GetUserByUserName(ctx, strings.TrimSpace(*request.UserName))
	case request.Email != nil && strings.TrimSpace(*request.Email) != "":
		user, err = a.DB.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(*request.Email)))
	default:
		return database.User{}, fmt.Errorf(
			"%w, either user_name or email must be provided",
			track_errors.ErrInvalidRequest,
		)
	}
	if err != nil {
		// do not tell which part was wrong
		if track_errors.IsNoRows(err) {
			return database.User{}, track_errors.ErrInvalidUserCredentials
		}
		return database.User{}, track_errors.HandleDBErrors(err, errMsgs, "cannot fetch user for login")
	}
	return user, nil
}
