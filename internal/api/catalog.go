package api

import (
	"net/http"
)

type nameRequest struct {
	Name string `json:"name"`
}

func (a *Api) HandlerGetTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := a.CatalogServiceConfig.GetAllTopics(r.Context())
	if err != nil {
		handlerError(err, w)
		return
	}
	marshalAndRespond(w, http.StatusOK, topics)
}

func (a *Api) HandlerGetCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := a.CatalogServiceConfig.GetAllCompanies(r.Context())
	if err != nil {
		handlerError(err, w)
		return
	}
	marshalAndRespond(w, http.StatusOK, companies)
}

func (a *Api) HandlerGetPlatforms(w http.ResponseWriter, r *http.Request) {
	platforms, err := a.CatalogServiceConfig.GetAllPlatforms(r.Context())
	if err != nil {
		handlerError(err, w)
		return
	}
	marshalAndRespond(w, http.StatusOK, platforms)
}

// 201 when created, 200 when it already existed
func (a *Api) HandlerCreateCompany(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r, "create companies") {
		return
	}
	var request nameRequest
	if err := decodeJsonBody(r.Body, &request); err != nil {
		badRequestBody(w, err)
		return
	}

	res, err := a.CatalogServiceConfig.CreateCompany(r.Context(), request.Name)
	if err != nil {
		handlerError(err, w)
		return
	}
	status := http.StatusCreated
	if res.Exists {
		status = http.StatusOK
	}
	marshalAndRespond(w, status, res)
}

func (a *Api) HandlerCreatePlatform(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r, "create platforms") {
		return
	}
	var request nameRequest
	if err := decodeJsonBody(r.Body, &request); err != nil {
		badRequestBody(w, err)
		return
	}

	res, err := a.CatalogServiceConfig.CreatePlatform(r.Context(), request.Name)
	if err != nil {
		handlerError(err, w)
		return
	}
	status := http.StatusCreated
	if res.Exists {
		status = http.StatusOK
	}
	marshalAndRespond(w, status, res)
}
