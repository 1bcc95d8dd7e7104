package problemset_service

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/codetrack/internal/database"
	"github.com/tcp_snm/codetrack/internal/service"
	"github.com/tcp_snm/codetrack/internal/track_errors"
)

// Get lists the user's problemset, newest first.
func (p *ProblemsetService) Get(
	ctx context.Context,
	userName string,
) ([]ProblemsetQuestion, error) {
	rows, err := p.DB.ListDynamicProblemset(ctx, userName)
	if err != nil {
		return nil, track_errors.HandleDBErrors(
			err, errMsgs, fmt.Sprintf("cannot list problemset of %s", userName),
		)
	}

	res := make([]ProblemsetQuestion, 0, len(rows))
	for _, row := range rows {
		topics, companies := row.Topics, row.Companies
		if topics == nil {
			topics = []string{}
		}
		if companies == nil {
			companies = []string{}
		}
		res = append(res, ProblemsetQuestion{
			Entry: Entry{
				UserName:   row.UserName,
				PlatformID: row.PlatformID,
				QuestionID: row.QuestionID,
				AddedAt:    row.AddedAt,
			},
			Title:      row.Title,
			Link:       row.Link,
			Difficulty: row.Difficulty,
			Topics:     topics,
			Companies:  companies,
		})
	}
	return res, nil
}

// Add puts a question in the problemset. Adding a question that is already
// there returns the existing entry.
func (p *ProblemsetService) Add(
	ctx context.Context,
	userName string,
	request EntryRequest,
) (Entry, error) {
	// validate
	if err := service.ValidateInput(request); err != nil {
		return Entry{}, err
	}
	key := database.UserQuestionParams{
		UserName:   userName,
		PlatformID: request.PlatformID,
		QuestionID: request.QuestionID,
	}

	entry, err := p.DB.InsertDynamicProblemset(ctx, key)
	if track_errors.IsNoRows(err) {
		entry, err = p.DB.GetDynamicProblemset(ctx, key)
	}
	if err != nil {
		return Entry{}, track_errors.HandleDBErrors(
			err,
			errMsgs,
			fmt.Sprintf("cannot add %d/%s to problemset", request.PlatformID, request.QuestionID),
		)
	}

	log.WithFields(log.Fields{
		"user_name":   userName,
		"platform_id": request.PlatformID,
		"question_id": request.QuestionID,
	}).Debug("added to problemset")
	return dbEntryToEntry(entry), nil
}

// Remove returns the removed entry, or nil if there was none.
func (p *ProblemsetService) Remove(
	ctx context.Context,
	userName string,
	request EntryRequest,
) (*Entry, error) {
	entry, err := p.DB.DeleteDynamicProblemset(ctx, database.UserQuestionParams{
		UserName:   userName,
		PlatformID: request.PlatformID,
		QuestionID: request.QuestionID,
	})
	if err != nil {
		if track_errors.IsNoRows(err) {
			return nil, nil
		}
		return nil, track_errors.HandleDBErrors(err, errMsgs, "cannot remove from problemset")
	}
	removed := dbEntryToEntry(entry)
	return &removed, nil
}

func (p *ProblemsetService) Count(ctx context.Context, userName string) (int, error) {
	count, err := p.DB.CountDynamicProblemset(ctx, userName)
	if err != nil {
		return 0, track_errors.HandleDBErrors(err, errMsgs, "cannot count problemset")
	}
	return int(count), nil
}
