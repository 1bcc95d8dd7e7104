package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/codetrack/internal/service"
	"github.com/tcp_snm/codetrack/internal/track_errors"
)

func decodeJsonBody(body io.Reader, v any) error {
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return err
	}
	if decoder.More() {
		return errors.New("body must contain a single json object")
	}
	return nil
}

// handlerError writes the status matching the kind of err.
func handlerError(err error, w http.ResponseWriter) {
	var status int
	switch {
	case errors.Is(err, track_errors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, track_errors.ErrInvalidRequest):
		status = http.StatusBadRequest
	case errors.Is(err, track_errors.ErrEntityAlreadyExist),
		errors.Is(err, track_errors.ErrLockNotAcquired):
		status = http.StatusConflict
	case errors.Is(err, track_errors.ErrPasswordUnchanged):
		status = http.StatusBadRequest
	case errors.Is(err, track_errors.ErrUnAuthorized):
		status = http.StatusForbidden
	case errors.Is(err, track_errors.ErrInvalidUserCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, track_errors.ErrInterrupted):
		status = http.StatusServiceUnavailable
	default:
		// never leak internals
		log.Error(err)
		http.Error(w, track_errors.ErrInternal.Error(), http.StatusInternalServerError)
		return
	}
	http.Error(w, err.Error(), status)
}

func respondWithJson(w http.ResponseWriter, status int, response []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(response); err != nil {
		log.Errorf("cannot write response, %v", err)
	}
}

func marshalAndRespond(w http.ResponseWriter, status int, v any) {
	response, err := json.Marshal(v)
	if err != nil {
		log.Errorf("cannot marshal %T, %v", v, err)
		http.Error(w, track_errors.ErrInternal.Error(), http.StatusInternalServerError)
		return
	}
	respondWithJson(w, status, response)
}

func respondNotFound(w http.ResponseWriter, what string) {
	http.Error(w, fmt.Sprintf("%s, %s", track_errors.ErrNotFound.Error(), what), http.StatusNotFound)
}

func badRequestBody(w http.ResponseWriter, err error) {
	msg := fmt.Sprintf("invalid request payload, %s", err.Error())
	http.Error(w, msg, http.StatusBadRequest)
}

// claimsUserName returns the authenticated user, writing a 500 when the
// request did not pass through the jwt middleware.
func claimsUserName(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims, err := service.GetClaimsFromContext(r.Context())
	if err != nil {
		handlerError(err, w)
		return "", false
	}
	return claims.UserName, true
}

func parseInt32(name, value string) (int32, error) {
	n, err := strconv.ParseInt(value, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w, %s must be an integer", track_errors.ErrInvalidRequest, name)
	}
	return int32(n), nil
}

// optionalInt32Query returns nil when the query parameter is absent.
func optionalInt32Query(r *http.Request, name string) (*int32, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return nil, nil
	}
	n, err := parseInt32(name, value)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// questionKeyFromPath reads the {platform_id} and {question_id} route params.
func questionKeyFromPath(r *http.Request) (int32, string, error) {
	platformID, err := parseInt32("platform_id", chi.URLParam(r, "platform_id"))
	if err != nil {
		return 0, "", err
	}
	questionID, err := url.PathUnescape(chi.URLParam(r, "question_id"))
	if err != nil || questionID == "" {
		return 0, "", fmt.Errorf("%w, invalid question_id", track_errors.ErrInvalidRequest)
	}
	return platformID, questionID, nil
}
