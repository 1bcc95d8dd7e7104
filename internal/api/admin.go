package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tcp_snm/codetrack/internal/service/user_service"
)

func (a *Api) HandlerSetAdmin(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r, "change admin flags") {
		return
	}

	var request user_service.SetAdminRequest
	if err := decodeJsonBody(r.Body, &request); err != nil {
		badRequestBody(w, err)
		return
	}

	profile, err := a.UserServiceConfig.SetAdmin(r.Context(), chi.URLParam(r, "user_name"), request.IsAdmin)
	if err != nil {
		handlerError(err, w)
		return
	}

	marshalAndRespond(w, http.StatusOK, profile)
}
