package user_service

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/codetrack/internal/database"
	"github.com/tcp_snm/codetrack/internal/service"
	"github.com/tcp_snm/codetrack/internal/track_errors"
)

func (u *UserService) FetchUserByUserName(
	ctx context.Context,
	userName string,
) (database.User, error) {
	user, err := u.DB.GetUserByUserName(ctx, userName)
	if err != nil {
		return database.User{}, track_errors.HandleDBErrors(
			err,
			errMsgs,
			fmt.Sprintf("no user exist with user_name %s", userName),
		)
	}
	return user, nil
}

func (u *UserService) GetProfile(ctx context.Context, userName string) (Profile, error) {
	user, err := u.FetchUserByUserName(ctx, userName)
	if err != nil {
		return Profile{}, err
	}
	return dbUserToProfile(user), nil
}

// GetMe returns the profile of the user in ctx's claims.
func (u *UserService) GetMe(ctx context.Context) (Profile, error) {
	claims, err := service.GetClaimsFromContext(ctx)
	if err != nil {
		return Profile{}, err
	}
	return u.GetProfile(ctx, claims.UserName)
}

func emptyToNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func (u *UserService) UpdateProfile(
	ctx context.Context,
	userName string,
	request UpdateProfileRequest,
) (Profile, error) {
	// validate
	request.FirstName = strings.TrimSpace(request.FirstName)
	request.LastName = strings.TrimSpace(request.LastName)
	request.CodeforcesHandle = emptyToNil(request.CodeforcesHandle)
	request.LeetcodeHandle = emptyToNil(request.LeetcodeHandle)
	if err := service.ValidateInput(request); err != nil {
		return Profile{}, err
	}

	user, err := u.DB.UpdateUserProfile(ctx, database.UpdateUserProfileParams{
		UserName:         userName,
		FirstName:        request.FirstName,
		LastName:         request.LastName,
		CodeforcesHandle: request.CodeforcesHandle,
		LeetcodeHandle:   request.LeetcodeHandle,
	})
	if err != nil {
		return Profile{}, track_errors.HandleDBErrors(
			err, errMsgs, fmt.Sprintf("cannot update profile of %s", userName),
		)
	}

	log.WithField("user_name", userName).Info("profile updated")
	return dbUserToProfile(user), nil
}

// ChangePassword replaces the password after checking the current one. The
// new password must differ from the current one.
func (u *UserService) ChangePassword(
	ctx context.Context,
	userName string,
	request ChangePasswordRequest,
) error {
	// validate
	if err := service.ValidateInput(request); err != nil {
		return err
	}
	passwordLogger := log.WithField("user_name", userName)

	user, err := u.FetchUserByUserName(ctx, userName)
	if err != nil {
		return err
	}
	if !service.PasswordMatches(user.PasswordHash, request.OldPassword) {
		passwordLogger.Warn("password change with wrong current password")
		return fmt.Errorf("%w, current password is wrong", track_errors.ErrInvalidUserCredentials)
	}
	if request.OldPassword == request.NewPassword {
		return track_errors.ErrPasswordUnchanged
	}

	passwordHash, err := service.GeneratePasswordHash(request.NewPassword)
	if err != nil {
		return err
	}

	updated, err := u.DB.UpdatePassword(ctx, database.UpdatePasswordParams{
		UserName:     userName,
		PasswordHash: passwordHash,
	})
	if err != nil {
		return track_errors.HandleDBErrors(err, errMsgs, "cannot update password")
	}
	if updated == 0 {
		return track_errors.ErrPasswordUnchanged
	}

	passwordLogger.Info("password changed")
	return nil
}
