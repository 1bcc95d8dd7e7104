package catalog_service

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/codetrack/internal/database"
	"github.com/tcp_snm/codetrack/internal/service"
	"github.com/tcp_snm/codetrack/internal/track_errors"
)

func (c *CatalogService) GetAllQuestions(
	ctx context.Context,
	filters QuestionFilters,
) ([]Question, error) {
	// empty strings mean "no filter"
	params := database.ListQuestionsParams{
		CompanyID:  filters.CompanyID,
		PlatformID: filters.PlatformID,
	}
	if search := strings.TrimSpace(filters.Search); search != "" {
		params.Search = &search
	}
	if topic := strings.TrimSpace(filters.Topic); topic != "" {
		params.Topic = &topic
	}
	if difficulty := service.NormalizeDifficulty(filters.Difficulty); difficulty != "" {
		params.Difficulty = &difficulty
	}

	rows, err := c.DB.ListQuestions(ctx, params)
	if err != nil {
		err = fmt.Errorf("%w, cannot list questions, %w", track_errors.ErrInternal, err)
		log.WithField("filters", filters).Error(err)
		return nil, err
	}

	res := make([]Question, 0, len(rows))
	for _, row := range rows {
		res = append(res, dbRowToQuestion(row))
	}
	return res, nil
}

// GetQuestionByID returns nil when no such question exist.
func (c *CatalogService) GetQuestionByID(
	ctx context.Context,
	platformID int32,
	questionID string,
) (*Question, error) {
	row, err := c.DB.GetQuestionRow(ctx, database.QuestionKey{
		PlatformID: platformID,
		QuestionID: questionID,
	})
	if err != nil {
		if track_errors.IsNoRows(err) {
			return nil, nil
		}
		return nil, track_errors.HandleDBErrors(
			err,
			errMsgs,
			fmt.Sprintf("cannot fetch question %d/%s", platformID, questionID),
		)
	}
	question := dbRowToQuestion(row)
	return &question, nil
}
