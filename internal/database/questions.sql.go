package database

import (
	"context"
)

// selects a question together with its merged topics and company names
const questionRowColumns = `
SELECT q.platform_id, q.question_id, q.title, q.link, q.difficulty,
    ARRAY(
        SELECT u.name FROM (
            SELECT unnest(q.topics) AS name
            UNION
            SELECT tp.name FROM question_topics qt
            JOIN topics tp ON tp.id = qt.topic_id
            WHERE qt.platform_id = q.platform_id AND qt.question_id = q.question_id
        ) u ORDER BY u.name
    )::TEXT[] AS topics,
    ARRAY(
        SELECT c.name FROM question_companies qc
        JOIN companies c ON c.id = qc.company_id
        WHERE qc.platform_id = q.platform_id AND qc.question_id = q.question_id
        ORDER BY c.name
    )::TEXT[] AS companies,
    q.created_at
FROM questions q
`

type CreateQuestionParams struct {
	PlatformID int32
	QuestionID string
	Title      string
	Link       string
	Difficulty string
	Topics     []string
}

const createQuestion = `
INSERT INTO questions (platform_id, question_id, title, link, difficulty, topics)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING platform_id, question_id, title, link, difficulty, topics, created_at
`

func (q *Queries) CreateQuestion(ctx context.Context, arg CreateQuestionParams) (Question, error) {
	row := q.db.QueryRow(ctx, createQuestion,
		arg.PlatformID,
		arg.QuestionID,
		arg.Title,
		arg.Link,
		arg.Difficulty,
		arg.Topics,
	)
	var i Question
	err := row.Scan(
		&i.PlatformID,
		&i.QuestionID,
		&i.Title,
		&i.Link,
		&i.Difficulty,
		&i.Topics,
		&i.CreatedAt,
	)
	return i, err
}

const getQuestion = `
SELECT platform_id, question_id, title, link, difficulty, topics, created_at
FROM questions WHERE platform_id = $1 AND question_id = $2
`

func (q *Queries) GetQuestion(ctx context.Context, key QuestionKey) (Question, error) {
	row := q.db.QueryRow(ctx, getQuestion, key.PlatformID, key.QuestionID)
	var i Question
	err := row.Scan(
		&i.PlatformID,
		&i.QuestionID,
		&i.Title,
		&i.Link,
		&i.Difficulty,
		&i.Topics,
		&i.CreatedAt,
	)
	return i, err
}

const getQuestionRow = questionRowColumns + `
WHERE q.platform_id = $1 AND q.question_id = $2
`

func (q *Queries) GetQuestionRow(ctx context.Context, key QuestionKey) (QuestionRow, error) {
	row := q.db.QueryRow(ctx, getQuestionRow, key.PlatformID, key.QuestionID)
	var i QuestionRow
	err := row.Scan(
		&i.PlatformID,
		&i.QuestionID,
		&i.Title,
		&i.Link,
		&i.Difficulty,
		&i.Topics,
		&i.Companies,
		&i.CreatedAt,
	)
	return i, err
}

type ListQuestionsParams struct {
	// literal, case-insensitive substring of title or question_id
	Search     *string
	Topic      *string
	Difficulty *string
	CompanyID  *int32
	PlatformID *int32
}

const listQuestions = questionRowColumns + `
WHERE ($1::TEXT IS NULL
        OR strpos(lower(q.title), lower($1)) > 0
        OR strpos(lower(q.question_id), lower($1)) > 0)
    AND ($2::TEXT IS NULL
        OR $2 = ANY(q.topics)
        OR EXISTS (
            SELECT 1 FROM question_topics qt
            JOIN topics tp ON tp.id = qt.topic_id
            WHERE qt.platform_id = q.platform_id
                AND qt.question_id = q.question_id
                AND tp.name = $2
        ))
    AND ($3::TEXT IS NULL OR q.difficulty = $3)
    AND ($4::INTEGER IS NULL OR EXISTS (
            SELECT 1 FROM question_companies qc
            WHERE qc.platform_id = q.platform_id
                AND qc.question_id = q.question_id
                AND qc.company_id = $4
        ))
    AND ($5::INTEGER IS NULL OR q.platform_id = $5)
ORDER BY q.platform_id ASC, q.question_id ASC
`

func (q *Queries) ListQuestions(ctx context.Context, arg ListQuestionsParams) ([]QuestionRow, error) {
	rows, err := q.db.Query(ctx, listQuestions,
		arg.Search,
		arg.Topic,
		arg.Difficulty,
		arg.CompanyID,
		arg.PlatformID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []QuestionRow{}
	for rows.Next() {
		var i QuestionRow
		if err := rows.Scan(
			&i.PlatformID,
			&i.QuestionID,
			&i.Title,
			&i.Link,
			&i.Difficulty,
			&i.Topics,
			&i.Companies,
			&i.CreatedAt,
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

type UpdateQuestionParams struct {
	PlatformID int32
	QuestionID string
	Title      string
	Link       string
	Difficulty string
	Topics     []string
}

const updateQuestion = `
UPDATE questions
SET title = $3, link = $4, difficulty = $5, topics = $6
WHERE platform_id = $1 AND question_id = $2
RETURNING platform_id, question_id, title, link, difficulty, topics, created_at
`

func (q *Queries) UpdateQuestion(ctx context.Context, arg UpdateQuestionParams) (Question, error) {
	row := q.db.QueryRow(ctx, updateQuestion,
		arg.PlatformID,
		arg.QuestionID,
		arg.Title,
		arg.Link,
		arg.Difficulty,
		arg.Topics,
	)
	var i Question
	err := row.Scan(
		&i.PlatformID,
		&i.QuestionID,
		&i.Title,
		&i.Link,
		&i.Difficulty,
		&i.Topics,
		&i.CreatedAt,
	)
	return i, err
}

const deleteQuestion = `
DELETE FROM questions WHERE platform_id = $1 AND question_id = $2
RETURNING platform_id, question_id, title, link, difficulty, topics, created_at
`

func (q *Queries) DeleteQuestion(ctx context.Context, key QuestionKey) (Question, error) {
	row := q.db.QueryRow(ctx, deleteQuestion, key.PlatformID, key.QuestionID)
	var i Question
	err := row.Scan(
		&i.PlatformID,
		&i.QuestionID,
		&i.Title,
		&i.Link,
		&i.Difficulty,
		&i.Topics,
		&i.CreatedAt,
	)
	return i, err
}

const linkQuestionTopic = `
INSERT INTO question_topics (platform_id, question_id, topic_id)
VALUES ($1, $2, $3)
ON CONFLICT DO NOTHING
`

// returns the number of links created, 0 when the link already existed
func (q *Queries) LinkQuestionTopic(ctx context.Context, arg QuestionTopic) (int64, error) {
	result, err := q.db.Exec(ctx, linkQuestionTopic, arg.PlatformID, arg.QuestionID, arg.TopicID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const deleteQuestionTopics = `
DELETE FROM question_topics WHERE platform_id = $1 AND question_id = $2
`

func (q *Queries) DeleteQuestionTopics(ctx context.Context, key QuestionKey) error {
	_, err := q.db.Exec(ctx, deleteQuestionTopics, key.PlatformID, key.QuestionID)
	return err
}

const linkQuestionCompany = `
INSERT INTO question_companies (platform_id, question_id, company_id)
VALUES ($1, $2, $3)
ON CONFLICT DO NOTHING
RETURNING platform_id, question_id, company_id
`

// returns pgx.ErrNoRows when the link already existed
func (q *Queries) LinkQuestionCompany(ctx context.Context, arg QuestionCompany) (QuestionCompany, error) {
	row := q.db.QueryRow(ctx, linkQuestionCompany, arg.PlatformID, arg.QuestionID, arg.CompanyID)
	var i QuestionCompany
	err := row.Scan(&i.PlatformID, &i.QuestionID, &i.CompanyID)
	return i, err
}

const unlinkQuestionCompany = `
DELETE FROM question_companies
WHERE platform_id = $1 AND question_id = $2 AND company_id = $3
RETURNING platform_id, question_id, company_id
`

func (q *Queries) UnlinkQuestionCompany(ctx context.Context, arg QuestionCompany) (QuestionCompany, error) {
	row := q.db.QueryRow(ctx, unlinkQuestionCompany, arg.PlatformID, arg.QuestionID, arg.CompanyID)
	var i QuestionCompany
	err := row.Scan(&i.PlatformID, &i.QuestionID, &i.CompanyID)
	return i, err
}

const deleteQuestionCompanies = `
DELETE FROM question_companies WHERE platform_id = $1 AND question_id = $2
`

func (q *Queries) DeleteQuestionCompanies(ctx context.Context, key QuestionKey) error {
	_, err := q.db.Exec(ctx, deleteQuestionCompanies, key.PlatformID, key.QuestionID)
	return err
}

const questionHasCompany = `
SELECT EXISTS (
    SELECT 1 FROM question_companies
    WHERE platform_id = $1 AND question_id = $2 AND company_id = $3
)
`

func (q *Queries) QuestionHasCompany(ctx context.Context, arg QuestionCompany) (bool, error) {
	row := q.db.QueryRow(ctx, questionHasCompany, arg.PlatformID, arg.QuestionID, arg.CompanyID)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}
