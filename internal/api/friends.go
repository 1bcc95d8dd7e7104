package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type friendRequest struct {
	FriendUserName string `json:"friend_user_name"`
}

func (a *Api) HandlerGetFriends(w http.ResponseWriter, r *http.Request) {
	userName, ok := claimsUserName(w, r)
	if !ok {
		return
	}
	friends, err := a.UserServiceConfig.ListFriends(r.Context(), userName)
	if err != nil {
		handlerError(err, w)
		return
	}
	marshalAndRespond(w, http.StatusOK, friends)
}

func (a *Api) HandlerAddFriend(w http.ResponseWriter, r *http.Request) {
	userName, ok := claimsUserName(w, r)
	if !ok {
		return
	}
	var request friendRequest
	if err := decodeJsonBody(r.Body, &request); err != nil {
		badRequestBody(w, err)
		return
	}

	friend, err := a.UserServiceConfig.AddFriend(r.Context(), userName, request.FriendUserName)
	if err != nil {
		handlerError(err, w)
		return
	}
	marshalAndRespond(w, http.StatusOK, friend)
}

func (a *Api) HandlerRemoveFriend(w http.ResponseWriter, r *http.Request) {
	userName, ok := claimsUserName(w, r)
	if !ok {
		return
	}
	friendUserName := chi.URLParam(r, "friend_user_name")

	friend, err := a.UserServiceConfig.RemoveFriend(r.Context(), userName, friendUserName)
	if err != nil {
		handlerError(err, w)
		return
	}
	if friend == nil {
		respondNotFound(w, "not friends with "+friendUserName)
		return
	}
	marshalAndRespond(w, http.StatusOK, friend)
}
