package import_service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/codetrack/internal/database"
	"github.com/tcp_snm/codetrack/internal/service/catalog_service"
	"github.com/tcp_snm/codetrack/internal/track_errors"
)

var errMissingField = errors.New("missing one of difficulty, title, link, topics")

// Import merges rows into the catalog one at a time, tagging every question
// with companyID. A failing row is counted and logged and never stops the
// batch. The returned error is set only when the batch could not start (for
// example an unknown company) or ctx ended midway. In the latter case the
// summary still counts the rows committed before the interruption.
func (s *ImportService) Import(
	ctx context.Context,
	rows []ImportRow,
	companyID int32,
) (ImportSummary, error) {
	summary := ImportSummary{Failures: []RowFailure{}}

	// the company must exist before any row is touched
	company, err := s.DB.GetCompanyByID(ctx, companyID)
	if err != nil {
		return summary, track_errors.HandleDBErrors(
			err, nil, fmt.Sprintf("no company exist with id %d", companyID),
		)
	}

	importLogger := log.WithFields(log.Fields{
		"company_id": company.ID,
		"company":    company.Name,
		"rows":       len(rows),
	})
	importLogger.Info("import started")

	for i, row := range rows {
		// rows are 1-based like a spreadsheet, excluding the header
		rowNumber := i + 1
		if err := ctx.Err(); err != nil {
			return summary, interrupted(importLogger, summary, rowNumber, err)
		}

		outcome, err := s.importRow(ctx, row, company.ID)
		if err != nil && ctx.Err() != nil {
			// the row failed because ctx ended, not because of its data
			return summary, interrupted(importLogger, summary, rowNumber, ctx.Err())
		}
		if err != nil {
			summary.FailedCount++
			summary.Failures = append(summary.Failures, RowFailure{
				Row:    rowNumber,
				Reason: err.Error(),
			})
			importLogger.WithFields(log.Fields{
				"row":   rowNumber,
				"title": row.Title,
			}).Warnf("row not imported, %v", err)
			continue
		}
		switch outcome {
		case outcomeCreated:
			summary.SuccessCount++
		case outcomeSkipped:
			summary.SkippedCount++
		case outcomeLinked:
			summary.OnlyCompanyAssociationCount++
		}
	}

	importLogger.WithFields(log.Fields{
		"success":      summary.SuccessCount,
		"failed":       summary.FailedCount,
		"skipped":      summary.SkippedCount,
		"company_only": summary.OnlyCompanyAssociationCount,
	}).Info("import finished")
	return summary, nil
}

func interrupted(logger *log.Entry, summary ImportSummary, rowNumber int, cause error) error {
	logger.WithFields(log.Fields{
		"stopped_at":   rowNumber,
		"success":      summary.SuccessCount,
		"failed":       summary.FailedCount,
		"skipped":      summary.SkippedCount,
		"company_only": summary.OnlyCompanyAssociationCount,
	}).Warnf("import interrupted, %v", cause)
	return fmt.Errorf(
		"%w, import stopped at row %d, earlier rows are kept, %w",
		track_errors.ErrInterrupted, rowNumber, cause,
	)
}

func (s *ImportService) importRow(
	ctx context.Context,
	row ImportRow,
	companyID int32,
) (rowOutcome, error) {
	// validate
	title := strings.TrimSpace(row.Title)
	link := strings.TrimSpace(row.Link)
	difficulty := strings.TrimSpace(row.Difficulty)
	topics := SplitTopics(row.Topics)
	if title == "" || link == "" || difficulty == "" || len(topics) == 0 {
		return 0, errMissingField
	}

	questionID, derived := DeriveQuestionID(link, title)
	if !derived {
		log.WithFields(log.Fields{
			"link":        link,
			"question_id": questionID,
		}).Warn("cannot derive question id from link, using a random one")
	}
	key := database.QuestionKey{PlatformID: ImportPlatformID, QuestionID: questionID}

	// merge into an existing question
	_, err := s.DB.GetQuestion(ctx, key)
	switch {
	case err == nil:
		companyLink := database.QuestionCompany{
			PlatformID: key.PlatformID,
			QuestionID: key.QuestionID,
			CompanyID:  companyID,
		}
		linked, err := s.DB.QuestionHasCompany(ctx, companyLink)
		if err != nil {
			return 0, fmt.Errorf("%w, cannot check company link, %w", track_errors.ErrInternal, err)
		}
		if linked {
			return outcomeSkipped, nil
		}
		added, err := s.Catalog.AddQuestionCompany(ctx, key.PlatformID, key.QuestionID, companyID)
		if err != nil {
			return 0, err
		}
		if added == nil {
			// linked concurrently between the check and the insert
			return outcomeSkipped, nil
		}
		return outcomeLinked, nil
	case !track_errors.IsNoRows(err):
		return 0, fmt.Errorf("%w, cannot fetch question %s, %w", track_errors.ErrInternal, questionID, err)
	}

	// or create a new one
	if _, err = s.Catalog.CreateQuestion(ctx, catalog_service.QuestionInput{
		PlatformID: ImportPlatformID,
		QuestionID: questionID,
		Title:      title,
		Link:       link,
		Difficulty: difficulty,
		Topics:     topics,
		Companies:  []int32{companyID},
	}); err != nil {
		return 0, err
	}
	return outcomeCreated, nil
}
