package api

import (
	"net/http"

	"github.com/tcp_snm/codetrack/internal/service/user_service"
)

func (a *Api) HandlerGetSolved(w http.ResponseWriter, r *http.Request) {
	userName, ok := claimsUserName(w, r)
	if !ok {
		return
	}
	solved, err := a.UserServiceConfig.ListSolved(r.Context(), userName)
	if err != nil {
		handlerError(err, w)
		return
	}
	marshalAndRespond(w, http.StatusOK, solved)
}

func (a *Api) HandlerMarkSolved(w http.ResponseWriter, r *http.Request) {
	userName, ok := claimsUserName(w, r)
	if !ok {
		return
	}
	var request user_service.QuestionRequest
	if err := decodeJsonBody(r.Body, &request); err != nil {
		badRequestBody(w, err)
		return
	}

	solved, err := a.UserServiceConfig.MarkSolved(r.Context(), userName, request)
	if err != nil {
		handlerError(err, w)
		return
	}
	marshalAndRespond(w, http.StatusOK, solved)
}

func (a *Api) HandlerUnmarkSolved(w http.ResponseWriter, r *http.Request) {
	userName, ok := claimsUserName(w, r)
	if !ok {
		return
	}
	platformID, questionID, err := questionKeyFromPath(r)
	if err != nil {
		handlerError(err, w)
		return
	}

	solved, err := a.UserServiceConfig.UnmarkSolved(r.Context(), userName, user_service.QuestionRequest{
		PlatformID: platformID,
		QuestionID: questionID,
	})
	if err != nil {
		handlerError(err, w)
		return
	}
	if solved == nil {
		respondNotFound(w, "question is not marked solved")
		return
	}
	marshalAndRespond(w, http.StatusOK, solved)
}
