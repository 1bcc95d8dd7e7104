package catalog_service

import (
	"context"
	"fmt"
	"strings"

	"github.com/tcp_snm/codetrack/internal/database"
	"github.com/tcp_snm/codetrack/internal/track_errors"
)

// NormalizeTopics trims names, drops empty ones and collapses duplicates
// keeping the first occurrence.
func NormalizeTopics(topics []string) []string {
	seen := make(map[string]bool, len(topics))
	res := make([]string, 0, len(topics))
	for _, t := range topics {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		res = append(res, t)
	}
	return res
}

// getOrCreateTopic must run inside the caller's transaction
func getOrCreateTopic(ctx context.Context, q database.Querier, name string) (database.Topic, error) {
	topic, err := q.GetTopicByName(ctx, name)
	if err == nil {
		return topic, nil
	}
	if !track_errors.IsNoRows(err) {
		return database.Topic{}, track_errors.HandleDBErrors(
			err, errMsgs, fmt.Sprintf("cannot fetch topic %s", name),
		)
	}

	topic, err = q.CreateTopic(ctx, name)
	if err != nil {
		return database.Topic{}, track_errors.HandleDBErrors(
			err, errMsgs, fmt.Sprintf("cannot create topic %s", name),
		)
	}
	return topic, nil
}

func linkTopics(
	ctx context.Context,
	q database.Querier,
	key database.QuestionKey,
	topics []string,
) error {
	for _, name := range topics {
		topic, err := getOrCreateTopic(ctx, q, name)
		if err != nil {
			return err
		}
		// duplicate links are ignored
		if _, err = q.LinkQuestionTopic(ctx, database.QuestionTopic{
			PlatformID: key.PlatformID,
			QuestionID: key.QuestionID,
			TopicID:    topic.ID,
		}); err != nil {
			return track_errors.HandleDBErrors(
				err, errMsgs, fmt.Sprintf("cannot link topic %s", name),
			)
		}
	}
	return nil
}

func (c *CatalogService) GetAllTopics(ctx context.Context) ([]database.Topic, error) {
	topics, err := c.DB.ListTopics(ctx)
	if err != nil {
		return nil, track_errors.HandleDBErrors(err, errMsgs, "cannot list topics")
	}
	return topics, nil
}
