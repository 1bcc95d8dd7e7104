package api

import (
	"fmt"
	"net/http"

	"github.com/tcp_snm/codetrack/internal/service/catalog_service"
)

func (a *Api) HandlerGetQuestions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filters := catalog_service.QuestionFilters{
		Search:     query.Get("search"),
		Topic:      query.Get("topic"),
		Difficulty: query.Get("difficulty"),
	}

	var err error
	if filters.CompanyID, err = optionalInt32Query(r, "company_id"); err != nil {
		handlerError(err, w)
		return
	}
	if filters.PlatformID, err = optionalInt32Query(r, "platform_id"); err != nil {
		handlerError(err, w)
		return
	}

	questions, err := a.CatalogServiceConfig.GetAllQuestions(r.Context(), filters)
	if err != nil {
		handlerError(err, w)
		return
	}

	marshalAndRespond(w, http.StatusOK, questions)
}

func (a *Api) HandlerGetQuestion(w http.ResponseWriter, r *http.Request) {
	platformID, questionID, err := questionKeyFromPath(r)
	if err != nil {
		handlerError(err, w)
		return
	}

	question, err := a.CatalogServiceConfig.GetQuestionByID(r.Context(), platformID, questionID)
	if err != nil {
		handlerError(err, w)
		return
	}
	if question == nil {
		respondNotFound(w, fmt.Sprintf("no question %d/%s", platformID, questionID))
		return
	}

	marshalAndRespond(w, http.StatusOK, question)
}

func (a *Api) HandlerCreateQuestion(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r, "create questions") {
		return
	}

	var request catalog_service.QuestionInput
	if err := decodeJsonBody(r.Body, &request); err != nil {
		badRequestBody(w, err)
		return
	}

	question, err := a.CatalogServiceConfig.CreateQuestion(r.Context(), request)
	if err != nil {
		handlerError(err, w)
		return
	}

	marshalAndRespond(w, http.StatusCreated, question)
}

func (a *Api) HandlerUpdateQuestion(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r, "update questions") {
		return
	}
	platformID, questionID, err := questionKeyFromPath(r)
	if err != nil {
		handlerError(err, w)
		return
	}

	var request catalog_service.QuestionInput
	if err = decodeJsonBody(r.Body, &request); err != nil {
		badRequestBody(w, err)
		return
	}
	// the key is immutable and comes from the path
	request.PlatformID = platformID
	request.QuestionID = questionID

	question, err := a.CatalogServiceConfig.UpdateQuestion(r.Context(), request)
	if err != nil {
		handlerError(err, w)
		return
	}
	if question == nil {
		respondNotFound(w, fmt.Sprintf("no question %d/%s", platformID, questionID))
		return
	}

	marshalAndRespond(w, http.StatusOK, question)
}

func (a *Api) HandlerDeleteQuestion(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r, "delete questions") {
		return
	}
	platformID, questionID, err := questionKeyFromPath(r)
	if err != nil {
		handlerError(err, w)
		return
	}

	question, err := a.CatalogServiceConfig.DeleteQuestion(r.Context(), platformID, questionID)
	if err != nil {
		handlerError(err, w)
		return
	}
	if question == nil {
		respondNotFound(w, fmt.Sprintf("no question %d/%s", platformID, questionID))
		return
	}

	marshalAndRespond(w, http.StatusOK, question)
}

type companyLinkRequest struct {
	CompanyID int32 `json:"company_id"`
}

// HandlerAddQuestionCompany answers 201 with the new link, or 200 with
// changed=false when the link already existed.
func (a *Api) HandlerAddQuestionCompany(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r, "tag questions") {
		return
	}
	platformID, questionID, err := questionKeyFromPath(r)
	if err != nil {
		handlerError(err, w)
		return
	}
	var request companyLinkRequest
	if err = decodeJsonBody(r.Body, &request); err != nil {
		badRequestBody(w, err)
		return
	}

	link, err := a.CatalogServiceConfig.AddQuestionCompany(r.Context(), platformID, questionID, request.CompanyID)
	if err != nil {
		handlerError(err, w)
		return
	}
	if link == nil {
		respondWithJson(w, http.StatusOK, []byte(`{"changed": false}`))
		return
	}

	marshalAndRespond(w, http.StatusCreated, link)
}

func (a *Api) HandlerRemoveQuestionCompany(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r, "untag questions") {
		return
	}
	platformID, questionID, err := questionKeyFromPath(r)
	if err != nil {
		handlerError(err, w)
		return
	}
	companyID, err := parseInt32("company_id", r.URL.Query().Get("company_id"))
	if err != nil {
		handlerError(err, w)
		return
	}

	link, err := a.CatalogServiceConfig.RemoveQuestionCompany(r.Context(), platformID, questionID, companyID)
	if err != nil {
		handlerError(err, w)
		return
	}
	if link == nil {
		respondNotFound(w, "question is not linked to that company")
		return
	}

	marshalAndRespond(w, http.StatusOK, link)
}

// requireAdmin writes the error response itself and reports whether the
// handler may go on.
func (a *Api) requireAdmin(w http.ResponseWriter, r *http.Request, action string) bool {
	userName, ok := claimsUserName(w, r)
	if !ok {
		return false
	}
	if err := a.UserServiceConfig.AuthorizeAdmin(r.Context(), userName, action); err != nil {
		handlerError(err, w)
		return false
	}
	return true
}
