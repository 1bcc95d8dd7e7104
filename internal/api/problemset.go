package api

import (
	"net/http"

	"github.com/tcp_snm/codetrack/internal/service/problemset_service"
)

func (a *Api) HandlerGetProblemset(w http.ResponseWriter, r *http.Request) {
	userName, ok := claimsUserName(w, r)
	if !ok {
		return
	}
	entries, err := a.ProblemsetServiceConfig.Get(r.Context(), userName)
	if err != nil {
		handlerError(err, w)
		return
	}
	marshalAndRespond(w, http.StatusOK, entries)
}

func (a *Api) HandlerRefreshProblemset(w http.ResponseWriter, r *http.Request) {
	userName, ok := claimsUserName(w, r)
	if !ok {
		return
	}
	result, err := a.ProblemsetServiceConfig.Refresh(r.Context(), userName)
	if err != nil {
		handlerError(err, w)
		return
	}
	marshalAndRespond(w, http.StatusOK, result)
}

func (a *Api) HandlerAddToProblemset(w http.ResponseWriter, r *http.Request) {
	userName, ok := claimsUserName(w, r)
	if !ok {
		return
	}
	var request problemset_service.EntryRequest
	if err := decodeJsonBody(r.Body, &request); err != nil {
		badRequestBody(w, err)
		return
	}

	entry, err := a.ProblemsetServiceConfig.Add(r.Context(), userName, request)
	if err != nil {
		handlerError(err, w)
		return
	}
	marshalAndRespond(w, http.StatusOK, entry)
}

func (a *Api) HandlerRemoveFromProblemset(w http.ResponseWriter, r *http.Request) {
	userName, ok := claimsUserName(w, r)
	if !ok {
		return
	}
	platformID, questionID, err := questionKeyFromPath(r)
	if err != nil {
		handlerError(err, w)
		return
	}

	entry, err := a.ProblemsetServiceConfig.Remove(r.Context(), userName, problemset_service.EntryRequest{
		PlatformID: platformID,
		QuestionID: questionID,
	})
	if err != nil {
		handlerError(err, w)
		return
	}
	if entry == nil {
		respondNotFound(w, "question is not in the problemset")
		return
	}
	marshalAndRespond(w, http.StatusOK, entry)
}
