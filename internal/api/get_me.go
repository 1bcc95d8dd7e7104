package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tcp_snm/codetrack/internal/service/user_service"
)

func (a *Api) HandlerGetMe(w http.ResponseWriter, r *http.Request) {
	user, err := a.UserServiceConfig.GetMe(r.Context())
	if err != nil {
		handlerError(err, w)
		return
	}

	marshalAndRespond(w, http.StatusOK, user)
}

func (a *Api) HandlerGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := a.UserServiceConfig.GetProfile(r.Context(), chi.URLParam(r, "user_name"))
	if err != nil {
		handlerError(err, w)
		return
	}
	// email is private
	profile.Email = ""

	marshalAndRespond(w, http.StatusOK, profile)
}

func (a *Api) HandlerUpdateMe(w http.ResponseWriter, r *http.Request) {
	userName, ok := claimsUserName(w, r)
	if !ok {
		return
	}

	var request user_service.UpdateProfileRequest
	if err := decodeJsonBody(r.Body, &request); err != nil {
		badRequestBody(w, err)
		return
	}

	profile, err := a.UserServiceConfig.UpdateProfile(r.Context(), userName, request)
	if err != nil {
		handlerError(err, w)
		return
	}

	marshalAndRespond(w, http.StatusOK, profile)
}

func (a *Api) HandlerChangePassword(w http.ResponseWriter, r *http.Request) {
	userName, ok := claimsUserName(w, r)
	if !ok {
		return
	}

	var request user_service.ChangePasswordRequest
	if err := decodeJsonBody(r.Body, &request); err != nil {
		badRequestBody(w, err)
		return
	}

	if err := a.UserServiceConfig.ChangePassword(r.Context(), userName, request); err != nil {
		handlerError(err, w)
		return
	}

	respondWithJson(w, http.StatusOK, []byte(`{"message": "password changed"}`))
}
