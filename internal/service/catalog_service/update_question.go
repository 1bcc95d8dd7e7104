package catalog_service

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/codetrack/internal/database"
	"github.com/tcp_snm/codetrack/internal/service"
	"github.com/tcp_snm/codetrack/internal/track_errors"
)

var errQuestionMissing = errors.New("question missing")

// UpdateQuestion overwrites the scalar fields and replaces the topic links.
// Companies of the input are ignored. Returns nil if the question does not
// exist.
func (c *CatalogService) UpdateQuestion(
	ctx context.Context,
	input QuestionInput,
) (*Question, error) {
	// validate
	input = normalizeInput(input)
	input.Companies = nil
	if err := service.ValidateInput(input); err != nil {
		return nil, err
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
		_, err := q.UpdateQuestion(ctx, database.UpdateQuestionParams{
			PlatformID: input.PlatformID,
			QuestionID: input.QuestionID,
			Title:      input.Title,
			Link:       input.Link,
			Difficulty: input.Difficulty,
			Topics:     input.Topics,
		})
		if err != nil {
			if track_errors.IsNoRows(err) {
				return errQuestionMissing
			}
			return track_errors.HandleDBErrors(err, errMsgs, "cannot update question")
		}

		// replace topic links
		if err = q.DeleteQuestionTopics(ctx, key); err != nil {
			return track_errors.HandleDBErrors(err, errMsgs, "cannot clear question topics")
		}
		if err = linkTopics(ctx, q, key, input.Topics); err != nil {
			return err
		}

		row, err = q.GetQuestionRow(ctx, key)
		if err != nil {
			return track_errors.HandleDBErrors(err, errMsgs, "cannot fetch updated question")
		}
		return nil
	})
	if errors.Is(err, errQuestionMissing) {
		questionLogger.Warn("update of unknown question")
		return nil, nil
	}
	if err != nil {
		err = track_errors.EnsureKnown(err, "cannot update question")
		questionLogger.Error(err)
		return nil, err
	}

	questionLogger.Info("question updated")
	question := dbRowToQuestion(row)
	return &question, nil
}
