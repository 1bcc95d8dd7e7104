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

func normalizeInput(input QuestionInput) QuestionInput {
	input.QuestionID = strings.TrimSpace(input.QuestionID)
	input.Title = strings.TrimSpace(input.Title)
	input.Link = strings.TrimSpace(input.Link)
	input.Difficulty = service.NormalizeDifficulty(input.Difficulty)
	input.Topics = NormalizeTopics(input.Topics)
	return input
}

// CreateQuestion inserts the question together with its topic and company
// links. Nothing is stored if any step fails.
func (c *CatalogService) CreateQuestion(
	ctx context.Context,
	input QuestionInput,
) (Question, error) {
	// validate
	input = normalizeInput(input)
	if err := service.ValidateInput(input); err != nil {
		return Question{}, err
	}

	key := database.QuestionKey{
		PlatformID: input.PlatformID,
		QuestionID: input.QuestionID,
	}
	questionLogger := log.WithFields(log.Fields{
		"platform_id": key.PlatformID,
		"question_id": key.QuestionID,
	})

	var row database.QuestionRow
	err := c.DB.ExecTx(ctx, func(q database.Querier) error {
		// insert the question
		if _, err := q.CreateQuestion(ctx, database.CreateQuestionParams{
			PlatformID: input.PlatformID,
			QuestionID: input.QuestionID,
			Title:      input.Title,
			Link:       input.Link,
			Difficulty: input.Difficulty,
			Topics:     input.Topics,
		}); err != nil {
			return track_errors.HandleDBErrors(err, errMsgs, "cannot insert question")
		}

		// link topics
		if err := linkTopics(ctx, q, key, input.Topics); err != nil {
			return err
		}

		// link companies
		for _, companyID := range input.Companies {
			_, err := q.LinkQuestionCompany(ctx, database.QuestionCompany{
				PlatformID: key.PlatformID,
				QuestionID: key.QuestionID,
				CompanyID:  companyID,
			})
			if err != nil && !track_errors.IsNoRows(err) {
				return track_errors.HandleDBErrors(
					err, errMsgs, fmt.Sprintf("cannot link company %d", companyID),
				)
			}
		}

		// read back the merged view
		var err error
		row, err = q.GetQuestionRow(ctx, key)
		if err != nil {
			return track_errors.HandleDBErrors(err, errMsgs, "cannot fetch created question")
		}
		return nil
	})
	if err != nil {
		err = track_errors.EnsureKnown(err, "cannot create question")
		questionLogger.Error(err)
		return Question{}, err
	}

	questionLogger.Info("question created")
	return dbRowToQuestion(row), nil
}
