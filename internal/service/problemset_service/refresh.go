package problemset_service

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/codetrack/internal/database"
	"github.com/tcp_snm/codetrack/internal/track_errors"
)

// Refresh fills the user's problemset up to the target size, first with
// questions their friends solved (most recent first) and then with random
// ones. Questions the user solved or already has are never picked. The whole
// refill commits or nothing does.
//
// Refreshes of one user are serialised through the locker so that two of
// them cannot both see a short problemset and overshoot the target.
func (p *ProblemsetService) Refresh(
	ctx context.Context,
	userName string,
) (RefreshResult, error) {
	refreshLogger := log.WithField("user_name", userName)

	// serialise per user
	release, err := p.Locker.Acquire(ctx, "problemset:"+userName)
	if err != nil {
		refreshLogger.Warnf("cannot lock problemset, %v", err)
		return RefreshResult{}, err
	}
	defer release()

	target := p.target()
	var result RefreshResult
	err = p.DB.ExecTx(ctx, func(q database.Querier) error {
		result = RefreshResult{}

		// the user must exist
		if _, err := q.GetUserByUserName(ctx, userName); err != nil {
			return track_errors.HandleDBErrors(
				err, errMsgs, fmt.Sprintf("no user exist with user_name %s", userName),
			)
		}

		count, err := q.CountDynamicProblemset(ctx, userName)
		if err != nil {
			return track_errors.HandleDBErrors(err, errMsgs, "cannot count problemset")
		}
		result.Count = int(count)
		if result.Count >= target {
			return nil
		}
		result.Refreshed = true

		// friends first
		friends, err := q.ListFriends(ctx, userName)
		if err != nil {
			return track_errors.HandleDBErrors(err, errMsgs, "cannot list friends")
		}
		if len(friends) > 0 {
			candidates, err := q.ListFriendSolvedCandidates(ctx, database.CandidateParams{
				UserName: userName,
				Limit:    int32(target - result.Count),
			})
			if err != nil {
				return track_errors.HandleDBErrors(err, errMsgs, "cannot list friends' solved questions")
			}
			if err = insertEntries(ctx, q, userName, candidates, &result); err != nil {
				return err
			}
		}

		// then random backfill
		if result.Count < target {
			candidates, err := q.ListRandomCandidates(ctx, database.CandidateParams{
				UserName: userName,
				Limit:    int32(target - result.Count),
			})
			if err != nil {
				return track_errors.HandleDBErrors(err, errMsgs, "cannot list random questions")
			}
			if err = insertEntries(ctx, q, userName, candidates, &result); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		err = track_errors.EnsureKnown(err, "cannot refresh problemset")
		refreshLogger.Error(err)
		return RefreshResult{}, err
	}

	if result.Refreshed {
		refreshLogger.WithFields(log.Fields{
			"added": result.Added,
			"count": result.Count,
		}).Info("problemset refreshed")
	}
	return result, nil
}

func insertEntries(
	ctx context.Context,
	q database.Querier,
	userName string,
	candidates []database.QuestionKey,
	result *RefreshResult,
) error {
	for _, key := range candidates {
		_, err := q.InsertDynamicProblemset(ctx, database.UserQuestionParams{
			UserName:   userName,
			PlatformID: key.PlatformID,
			QuestionID: key.QuestionID,
		})
		if track_errors.IsNoRows(err) {
			// already present
			continue
		}
		if err != nil {
			return track_errors.HandleDBErrors(
				err, errMsgs, fmt.Sprintf("cannot add %d/%s to problemset", key.PlatformID, key.QuestionID),
			)
		}
		result.Added++
		result.Count++
	}
	return nil
}
