package user_service

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/codetrack/internal/database"
	"github.com/tcp_snm/codetrack/internal/track_errors"
)

// IsAdmin reads the admin flag through a short lived cache, so a promotion
// or demotion takes up to adminCacheTTL to be seen.
func (u *UserService) IsAdmin(ctx context.Context, userName string) (bool, error) {
	if u.adminCache != nil {
		if isAdmin, ok := u.adminCache.Get(userName); ok {
			return isAdmin, nil
		}
	}

	user, err := u.FetchUserByUserName(ctx, userName)
	if err != nil {
		return false, err
	}
	if u.adminCache != nil {
		u.adminCache.Add(userName, user.IsAdmin)
	}
	return user.IsAdmin, nil
}

// AuthorizeAdmin returns ErrUnAuthorized unless userName is an admin.
func (u *UserService) AuthorizeAdmin(
	ctx context.Context,
	userName string,
	action string,
) error {
	isAdmin, err := u.IsAdmin(ctx, userName)
	if err != nil {
		return err
	}
	if !isAdmin {
		log.WithField("user_name", userName).Warnf("non admin tried to %s", action)
		return fmt.Errorf("%w, only admins can %s", track_errors.ErrUnAuthorized, action)
	}
	return nil
}

// SetAdmin promotes or demotes userName. Authorization of the caller is the
// job of the transport; the cli uses it to bootstrap the first admin.
func (u *UserService) SetAdmin(
	ctx context.Context,
	userName string,
	isAdmin bool,
) (Profile, error) {
	user, err := u.DB.SetUserAdmin(ctx, database.SetUserAdminParams{
		UserName: userName,
		IsAdmin:  isAdmin,
	})
	if err != nil {
		return Profile{}, track_errors.HandleDBErrors(
			err,
			errMsgs,
			fmt.Sprintf("cannot set admin flag of %s", userName),
		)
	}
	// this instance sees the change at once, others after adminCacheTTL
	u.forgetAdmin(userName)

	log.WithFields(log.Fields{
		"user_name": userName,
		"is_admin":  isAdmin,
	}).Info("admin flag changed")
	return dbUserToProfile(user), nil
}

func (u *UserService) forgetAdmin(userName string) {
	if u.adminCache != nil {
		u.adminCache.Remove(userName)
	}
}
