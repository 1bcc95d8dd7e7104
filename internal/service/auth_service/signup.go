package auth_service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/codetrack/internal/database"
	"github.com/tcp_snm/codetrack/internal/service"
	"github.com/tcp_snm/codetrack/internal/track_errors"
)

func (a *AuthService) SignUp(
	ctx context.Context,
	registration UserRegistration,
) (UserRegistrationResponse, error) {
	// Validate
	registration.UserName = strings.TrimSpace(registration.UserName)
	registration.Email = strings.ToLower(strings.TrimSpace(registration.Email))
	registration.FirstName = strings.TrimSpace(registration.FirstName)
	registration.LastName = strings.TrimSpace(registration.LastName)
	if err := service.ValidateInput(registration); err != nil {
		return UserRegistrationResponse{}, err
	}

	// Hash the password.
	passwordHash, err := service.GeneratePasswordHash(registration.Password)
	if err != nil {
		return UserRegistrationResponse{}, err
	}

	// Create the user in the database and handle DB-specific errors.
	dbUser, err := a.DB.CreateUser(ctx, database.CreateUserParams{
		ID:           uuid.New(),
		UserName:     registration.UserName,
		Email:        registration.Email,
		PasswordHash: passwordHash,
		FirstName:    registration.FirstName,
		LastName:     registration.LastName,
	})
	if err != nil {
		return UserRegistrationResponse{}, track_errors.HandleDBErrors(
			err, errMsgs, "failed to insert user into db",
		)
	}

	// Log and return
	log.WithFields(log.Fields{
		"user_name": dbUser.UserName,
		"email":     dbUser.Email,
	}).Info("created user")

	return UserRegistrationResponse{
		UserName: dbUser.UserName,
		Email:    dbUser.Email,
	}, nil
}
