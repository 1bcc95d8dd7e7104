package database

import (
	"context"
)

type UserQuestionParams struct {
	UserName   string
	PlatformID int32
	QuestionID string
}

const createSolved = `
INSERT INTO solved (user_name, platform_id, question_id) VALUES ($1, $2, $3)
RETURNING user_name, platform_id, question_id, solved_at
`

func (q *Queries) CreateSolved(ctx context.Context, arg UserQuestionParams) (Solved, error) {
	row := q.db.QueryRow(ctx, createSolved, arg.UserName, arg.PlatformID, arg.QuestionID)
	var i Solved
	err := row.Scan(&i.UserName, &i.PlatformID, &i.QuestionID, &i.SolvedAt)
	return i, err
}

const getSolved = `
SELECT user_name, platform_id, question_id, solved_at
FROM solved WHERE user_name = $1 AND platform_id = $2 AND question_id = $3
`

func (q *Queries) GetSolved(ctx context.Context, arg UserQuestionParams) (Solved, error) {
	row := q.db.QueryRow(ctx, getSolved, arg.UserName, arg.PlatformID, arg.QuestionID)
	var i Solved
	err := row.Scan(&i.UserName, &i.PlatformID, &i.QuestionID, &i.SolvedAt)
	return i, err
}

const deleteSolved = `
DELETE FROM solved WHERE user_name = $1 AND platform_id = $2 AND question_id = $3
RETURNING user_name, platform_id, question_id, solved_at
`

func (q *Queries) DeleteSolved(ctx context.Context, arg UserQuestionParams) (Solved, error) {
	row := q.db.QueryRow(ctx, deleteSolved, arg.UserName, arg.PlatformID, arg.QuestionID)
	var i Solved
	err := row.Scan(&i.UserName, &i.PlatformID, &i.QuestionID, &i.SolvedAt)
	return i, err
}

const listSolved = `
SELECT user_name, platform_id, question_id, solved_at
FROM solved WHERE user_name = $1
ORDER BY solved_at DESC
`

func (q *Queries) ListSolved(ctx context.Context, userName string) ([]Solved, error) {
	rows, err := q.db.Query(ctx, listSolved, userName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Solved{}
	for rows.Next() {
		var i Solved
		if err := rows.Scan(&i.UserName, &i.PlatformID, &i.QuestionID, &i.SolvedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countDynamicProblemset = `
SELECT COUNT(*) FROM dynamic_problemset WHERE user_name = $1
`

func (q *Queries) CountDynamicProblemset(ctx context.Context, userName string) (int64, error) {
	row := q.db.QueryRow(ctx, countDynamicProblemset, userName)
	var count int64
	err := row.Scan(&count)
	return count, err
}

type CandidateParams struct {
	UserName string
	Limit    int32
}

// questions solved by any friend, most recent first, that the user has not
// solved and does not already have in the problemset
const listFriendSolvedCandidates = `
SELECT s.platform_id, s.question_id
FROM solved s
JOIN friends f ON f.friend_user_name = s.user_name
WHERE f.user_name = $1
    AND NOT EXISTS (
        SELECT 1 FROM solved me
        WHERE me.user_name = $1
            AND me.platform_id = s.platform_id
            AND me.question_id = s.question_id
    )
    AND NOT EXISTS (
        SELECT 1 FROM dynamic_problemset d
        WHERE d.user_name = $1
            AND d.platform_id = s.platform_id
            AND d.question_id = s.question_id
    )
GROUP BY s.platform_id, s.question_id
ORDER BY MAX(s.solved_at) DESC, s.platform_id ASC, s.question_id ASC
LIMIT $2
`

func (q *Queries) ListFriendSolvedCandidates(ctx context.Context, arg CandidateParams) ([]QuestionKey, error) {
	return q.listCandidates(ctx, listFriendSolvedCandidates, arg)
}

const listRandomCandidates = `
SELECT q.platform_id, q.question_id
FROM questions q
WHERE NOT EXISTS (
        SELECT 1 FROM solved me
        WHERE me.user_name = $1
            AND me.platform_id = q.platform_id
            AND me.question_id = q.question_id
    )
    AND NOT EXISTS (
        SELECT 1 FROM dynamic_problemset d
        WHERE d.user_name = $1
            AND d.platform_id = q.platform_id
            AND d.question_id = q.question_id
    )
ORDER BY RANDOM()
LIMIT $2
`

func (q *Queries) ListRandomCandidates(ctx context.Context, arg CandidateParams) ([]QuestionKey, error) {
	return q.listCandidates(ctx, listRandomCandidates, arg)
}

func (q *Queries) listCandidates(ctx context.Context, query string, arg CandidateParams) ([]QuestionKey, error) {
	rows, err := q.db.Query(ctx, query, arg.UserName, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []QuestionKey{}
	for rows.Next() {
		var i QuestionKey
		if err := rows.Scan(&i.PlatformID, &i.QuestionID); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const insertDynamicProblemset = `
INSERT INTO dynamic_problemset (user_name, platform_id, question_id) VALUES ($1, $2, $3)
ON CONFLICT DO NOTHING
RETURNING user_name, platform_id, question_id, added_at
`

// returns pgx.ErrNoRows when the entry already existed
func (q *Queries) InsertDynamicProblemset(ctx context.Context, arg UserQuestionParams) (DynamicProblemset, error) {
	row := q.db.QueryRow(ctx, insertDynamicProblemset, arg.UserName, arg.PlatformID, arg.QuestionID)
	var i DynamicProblemset
	err := row.Scan(&i.UserName, &i.PlatformID, &i.QuestionID, &i.AddedAt)
	return i, err
}

const getDynamicProblemset = `
SELECT user_name, platform_id, question_id, added_at
FROM dynamic_problemset WHERE user_name = $1 AND platform_id = $2 AND question_id = $3
`

func (q *Queries) GetDynamicProblemset(ctx context.Context, arg UserQuestionParams) (DynamicProblemset, error) {
	row := q.db.QueryRow(ctx, getDynamicProblemset, arg.UserName, arg.PlatformID, arg.QuestionID)
	var i DynamicProblemset
	err := row.Scan(&i.UserName, &i.PlatformID, &i.QuestionID, &i.AddedAt)
	return i, err
}

const deleteDynamicProblemset = `
DELETE FROM dynamic_problemset WHERE user_name = $1 AND platform_id = $2 AND question_id = $3
RETURNING user_name, platform_id, question_id, added_at
`

func (q *Queries) DeleteDynamicProblemset(ctx context.Context, arg UserQuestionParams) (DynamicProblemset, error) {
	row := q.db.QueryRow(ctx, deleteDynamicProblemset, arg.UserName, arg.PlatformID, arg.QuestionID)
	var i DynamicProblemset
	err := row.Scan(&i.UserName, &i.PlatformID, &i.QuestionID, &i.AddedAt)
	return i, err
}

const listDynamicProblemset = `
SELECT d.user_name, d.platform_id, d.question_id, d.added_at,
    r.title, r.link, r.difficulty, r.topics, r.companies
FROM dynamic_problemset d
JOIN (` + questionRowColumns + `) r
    ON r.platform_id = d.platform_id AND r.question_id = d.question_id
WHERE d.user_name = $1
ORDER BY d.added_at DESC
`

func (q *Queries) ListDynamicProblemset(ctx context.Context, userName string) ([]DynamicProblemsetRow, error) {
	rows, err := q.db.Query(ctx, listDynamicProblemset, userName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []DynamicProblemsetRow{}
	for rows.Next() {
		var i DynamicProblemsetRow
		if err := rows.Scan(
			&i.UserName,
			&i.PlatformID,
			&i.QuestionID,
			&i.AddedAt,
			&i.Title,
			&i.Link,
			&i.Difficulty,
			&i.Topics,
			&i.Companies,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
