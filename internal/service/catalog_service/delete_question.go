package catalog_service

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/codetrack/internal/database"
	"github.com/tcp_snm/codetrack/internal/track_errors"
)

// DeleteQuestion removes the topic and company links and then the question.
// Users' solved marks and problemset entries for it are dropped by the
// schema's cascade. Returns the deleted question, or nil if there was none.
func (c *CatalogService) DeleteQuestion(
	ctx context.Context,
	platformID int32,
	questionID string,
) (*Question, error) {
	key := database.QuestionKey{PlatformID: platformID, QuestionID: questionID}
	questionLogger := log.WithFields(log.Fields{
		"platform_id": platformID,
		"question_id": questionID,
	})

	var row database.QuestionRow
	err := c.DB.ExecTx(ctx, func(q database.Querier) error {
		var err error
		// fetch before delete so the caller gets topics and companies
		row, err = q.GetQuestionRow(ctx, key)
		if err != nil {
			if track_errors.IsNoRows(err) {
				return errQuestionMissing
			}
			return track_errors.HandleDBErrors(err, errMsgs, "cannot fetch question")
		}

		if err = q.DeleteQuestionTopics(ctx, key); err != nil {
			return track_errors.HandleDBErrors(err, errMsgs, "cannot delete question topics")
		}
		if err = q.DeleteQuestionCompanies(ctx, key); err != nil {
			return track_errors.HandleDBErrors(err, errMsgs, "cannot delete question companies")
		}
		if _, err = q.DeleteQuestion(ctx, key); err != nil {
			return track_errors.HandleDBErrors(err, errMsgs, "cannot delete question")
		}
		return nil
	})
	if errors.Is(err, errQuestionMissing) {
		return nil, nil
	}
	if err != nil {
		err = track_errors.EnsureKnown(err, "cannot delete question")
		questionLogger.Error(err)
		return nil, err
	}

	questionLogger.Info("question deleted")
	question := dbRowToQuestion(row)
	return &question, nil
}
