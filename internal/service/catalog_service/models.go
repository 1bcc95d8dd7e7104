package catalog_service

import (
	"time"

	"github.com/tcp_snm/codetrack/internal/database"
	"github.com/tcp_snm/codetrack/internal/track_errors"
)

var (
	msgUniqueKey = map[string]string{
		"pk_questions":       "question with that platform_id and question_id already exist",
		"uq_companies_name":  "company with that name already exist",
		"uq_platforms_name":  "platform with that name already exist",
		"uq_topics_name":     "topic with that name already exist",
		"pk_question_topics": "topic is already linked to the question",
	}

	msgForeignKey = map[string]string{
		"fk_questions_platform":          "no platform exist with that platform_id",
		"fk_question_topics_question":    "no question exist with that key",
		"fk_question_topics_topic":       "no topic exist with that id",
		"fk_question_companies_question": "no question exist with that key",
		"fk_question_companies_company":  "no company exist with that company_id",
	}

	errMsgs = map[string]map[string]string{
		track_errors.CodeUniqueConstraint:     msgUniqueKey,
		track_errors.CodeForeignKeyConstraint: msgForeignKey,
	}
)

type CatalogService struct {
	DB database.Store
}

type QuestionFilters struct {
	Search     string
	Topic      string
	Difficulty string
	CompanyID  *int32
	PlatformID *int32
}

type QuestionInput struct {
	PlatformID int32    `json:"platform_id" validate:"required,gte=1"`
	QuestionID string   `json:"question_id" validate:"required,max=255"`
	Title      string   `json:"title" validate:"required,max=500"`
	Link       string   `json:"link" validate:"required,max=2048"`
	Difficulty string   `json:"difficulty" validate:"required,oneof=EASY MEDIUM HARD"`
	Topics     []string `json:"topics" validate:"dive,max=100"`
	Companies  []int32  `json:"companies" validate:"dive,gte=1"`
}

type Question struct {
	PlatformID int32     `json:"platform_id"`
	QuestionID string    `json:"question_id"`
	Title      string    `json:"title"`
	Link       string    `json:"link"`
	Difficulty string    `json:"difficulty"`
	Topics     []string  `json:"topics"`
	Companies  []string  `json:"companies"`
	CreatedAt  time.Time `json:"created_at"`
}

// EntityResult is returned by get-or-create operations. Exists is true when
// the entity was already present.
type EntityResult[T any] struct {
	Exists bool `json:"exists"`
	Entity T    `json:"entity"`
}

func dbRowToQuestion(row database.QuestionRow) Question {
	topics := row.Topics
	if topics == nil {
		topics = []string{}
	}
	companies := row.Companies
	if companies == nil {
		companies = []string{}
	}
	return Question{
		PlatformID: row.PlatformID,
		QuestionID: row.QuestionID,
		Title:      row.Title,
		Link:       row.Link,
		Difficulty: row.Difficulty,
		Topics:     topics,
		Companies:  companies,
		CreatedAt:  row.CreatedAt,
	}
}
