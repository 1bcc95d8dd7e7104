package user_service

import (
	"context"
	"fmt"

	"github.com/tcp_snm/codetrack/internal/database"
	"github.com/tcp_snm/codetrack/internal/service"
	"github.com/tcp_snm/codetrack/internal/track_errors"
)

// MarkSolved records that userName solved the question. Marking it again
// returns the existing mark.
func (u *UserService) MarkSolved(
	ctx context.Context,
	userName string,
	request QuestionRequest,
) (database.Solved, error) {
	// validate
	if err := service.ValidateInput(request); err != nil {
		return database.Solved{}, err
	}
	key := database.UserQuestionParams{
		UserName:   userName,
		PlatformID: request.PlatformID,
		QuestionID: request.QuestionID,
	}

	solved, err := u.DB.CreateSolved(ctx, key)
	if track_errors.IsUniqueViolation(err, "pk_solved") {
		solved, err = u.DB.GetSolved(ctx, key)
	}
	if err != nil {
		return database.Solved{}, track_errors.HandleDBErrors(
			err,
			errMsgs,
			fmt.Sprintf("cannot mark %d/%s solved", request.PlatformID, request.QuestionID),
		)
	}
	return solved, nil
}

// UnmarkSolved returns the removed mark, or nil if there was none.
func (u *UserService) UnmarkSolved(
	ctx context.Context,
	userName string,
	request QuestionRequest,
) (*database.Solved, error) {
	solved, err := u.DB.DeleteSolved(ctx, database.UserQuestionParams{
		UserName:   userName,
		PlatformID: request.PlatformID,
		QuestionID: request.QuestionID,
	})
	if err != nil {
		if track_errors.IsNoRows(err) {
			return nil, nil
		}
		return nil, track_errors.HandleDBErrors(err, errMsgs, "cannot unmark solved")
	}
	return &solved, nil
}

func (u *UserService) ListSolved(ctx context.Context, userName string) ([]database.Solved, error) {
	solved, err := u.DB.ListSolved(ctx, userName)
	if err != nil {
		return nil, track_errors.HandleDBErrors(err, errMsgs, "cannot list solved questions")
	}
	return solved, nil
}
