package api

import (
	"net/http"

	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/codetrack/internal/service/auth_service"
	"github.com/tcp_snm/codetrack/middleware"
)

func (a *Api) HandlerSignUp(w http.ResponseWriter, r *http.Request) {
	var request auth_service.UserRegistration
	if err := decodeJsonBody(r.Body, &request); err != nil {
		badRequestBody(w, err)
		return
	}

	response, err := a.AuthServiceConfig.SignUp(r.Context(), request)
	if err != nil {
		handlerError(err, w)
		return
	}

	marshalAndRespond(w, http.StatusCreated, response)
}

func (a *Api) HandlerLogin(w http.ResponseWriter, r *http.Request) {
	// extract user details for login
	var request auth_service.UserLoginRequest

	// decode from the json body
	if err := decodeJsonBody(r.Body, &request); err != nil {
		badRequestBody(w, err)
		return
	}

	// validate the user and gen a jwt token
	response, err := a.AuthServiceConfig.Login(r.Context(), request)
	if err != nil {
		handlerError(err, w)
		return
	}

	// set jwt session cookie
	cookie := &http.Cookie{
		Name:     middleware.KeyJwtSessionCookieName,
		Value:    response.Token,
		Expires:  response.ExpiresAt,
		Path:     "/",  // available across the entire site
		HttpOnly: true, // no javascript access
		Secure:   a.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	}
	http.SetCookie(w, cookie)

	log.WithField("user_name", response.UserName).Info("logged in")

	marshalAndRespond(w, http.StatusOK, response)
}
