package api

import (
	"errors"
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/codetrack/internal/service/import_service"
	"github.com/tcp_snm/codetrack/internal/track_errors"
)

type interruptedImport struct {
	Error   string                       `json:"error"`
	Summary import_service.ImportSummary `json:"summary"`
}

// HandlerImportQuestions takes a multipart form with a csv "file" and the
// target company in the company_id query parameter.
func (a *Api) HandlerImportQuestions(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r, "import questions") {
		return
	}
	companyID, err := parseInt32("company_id", r.URL.Query().Get("company_id"))
	if err != nil {
		handlerError(err, w)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImportSize)
	if err = r.ParseMultipartForm(maxImportSize); err != nil {
		handlerError(fmt.Errorf("%w, cannot read upload, %w", track_errors.ErrInvalidRequest, err), w)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		handlerError(fmt.Errorf("%w, form field file is required", track_errors.ErrInvalidRequest), w)
		return
	}
	defer file.Close()

	rows, err := import_service.ParseCSV(file)
	if err != nil {
		handlerError(err, w)
		return
	}
	log.WithFields(log.Fields{
		"file": header.Filename,
		"rows": len(rows),
	}).Info("received import")

	summary, err := a.ImportServiceConfig.Import(r.Context(), rows, companyID)
	if errors.Is(err, track_errors.ErrInterrupted) {
		// rows before the interruption are committed, tell the caller which
		marshalAndRespond(w, http.StatusServiceUnavailable, interruptedImport{
			Error:   err.Error(),
			Summary: summary,
		})
		return
	}
	if err != nil {
		handlerError(err, w)
		return
	}

	marshalAndRespond(w, http.StatusOK, summary)
}
