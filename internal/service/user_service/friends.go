package user_service

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/codetrack/internal/database"
	"github.com/tcp_snm/codetrack/internal/track_errors"
)

// AddFriend adds a one way edge userName -> friendUserName. Adding an
// existing friend returns the existing edge.
func (u *UserService) AddFriend(
	ctx context.Context,
	userName string,
	friendUserName string,
) (database.Friend, error) {
	friendUserName = strings.TrimSpace(friendUserName)
	if friendUserName == "" {
		return database.Friend{}, fmt.Errorf("%w, friend_user_name is required", track_errors.ErrInvalidRequest)
	}
	if friendUserName == userName {
		return database.Friend{}, fmt.Errorf("%w, cannot add yourself as a friend", track_errors.ErrInvalidRequest)
	}

	// friend must exist
	if _, err := u.FetchUserByUserName(ctx, friendUserName); err != nil {
		return database.Friend{}, err
	}

	params := database.AddFriendParams{UserName: userName, FriendUserName: friendUserName}
	friend, err := u.DB.AddFriend(ctx, params)
	if err == nil {
		log.WithFields(log.Fields{
			"user_name":        userName,
			"friend_user_name": friendUserName,
		}).Info("friend added")
		return friend, nil
	}
	if !track_errors.IsNoRows(err) {
		return database.Friend{}, track_errors.HandleDBErrors(err, errMsgs, "cannot add friend")
	}

	// already friends
	friends, err := u.ListFriends(ctx, userName)
	if err != nil {
		return database.Friend{}, err
	}
	for _, f := range friends {
		if f.FriendUserName == friendUserName {
			return f, nil
		}
	}
	return database.Friend{}, fmt.Errorf("%w, friend vanished while adding", track_errors.ErrInternal)
}

// RemoveFriend returns the removed edge, or nil if there was none.
func (u *UserService) RemoveFriend(
	ctx context.Context,
	userName string,
	friendUserName string,
) (*database.Friend, error) {
	friend, err := u.DB.RemoveFriend(ctx, database.AddFriendParams{
		UserName:       userName,
		FriendUserName: friendUserName,
	})
	if err != nil {
		if track_errors.IsNoRows(err) {
			return nil, nil
		}
		return nil, track_errors.HandleDBErrors(err, errMsgs, "cannot remove friend")
	}
	return &friend, nil
}

func (u *UserService) ListFriends(ctx context.Context, userName string) ([]database.Friend, error) {
	friends, err := u.DB.ListFriends(ctx, userName)
	if err != nil {
		return nil, track_errors.HandleDBErrors(err, errMsgs, "cannot list friends")
	}
	return friends, nil
}
