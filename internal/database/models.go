package database

import (
	"time"

	"github.com/google/uuid"
)

type Platform struct {
	ID   int32  `json:"id"`
	Name string `json:"name"`
}

type Company struct {
	ID   int32  `json:"id"`
	Name string `json:"name"`
}

type Topic struct {
	ID   int32  `json:"id"`
	Name string `json:"name"`
}

// Question is the stored row. Topics is the legacy denormalized column,
// use QuestionRow for the merged view.
type Question struct {
	PlatformID int32     `json:"platform_id"`
	QuestionID string    `json:"question_id"`
	Title      string    `json:"title"`
	Link       string    `json:"link"`
	Difficulty string    `json:"difficulty"`
	Topics     []string  `json:"topics"`
	CreatedAt  time.Time `json:"created_at"`
}

// QuestionRow is a question annotated with its company names and the union
// of stored and linked topic names.
type QuestionRow struct {
	PlatformID int32     `json:"platform_id"`
	QuestionID string    `json:"question_id"`
	Title      string    `json:"title"`
	Link       string    `json:"link"`
	Difficulty string    `json:"difficulty"`
	Topics     []string  `json:"topics"`
	Companies  []string  `json:"companies"`
	CreatedAt  time.Time `json:"created_at"`
}

type QuestionKey struct {
	PlatformID int32  `json:"platform_id"`
	QuestionID string `json:"question_id"`
}

type QuestionTopic struct {
	PlatformID int32
	QuestionID string
	TopicID    int32
}

type QuestionCompany struct {
	PlatformID int32  `json:"platform_id"`
	QuestionID string `json:"question_id"`
	CompanyID  int32  `json:"company_id"`
}

type User struct {
	ID               uuid.UUID
	UserName         string
	Email            string
	PasswordHash     string
	FirstName        string
	LastName         string
	CodeforcesHandle *string
	LeetcodeHandle   *string
	IsAdmin          bool
	CreatedAt        time.Time
}

type Friend struct {
	UserName       string    `json:"user_name"`
	FriendUserName string    `json:"friend_user_name"`
	CreatedAt      time.Time `json:"created_at"`
}

type Solved struct {
	UserName   string    `json:"user_name"`
	PlatformID int32     `json:"platform_id"`
	QuestionID string    `json:"question_id"`
	SolvedAt   time.Time `json:"solved_at"`
}

type DynamicProblemset struct {
	UserName   string    `json:"user_name"`
	PlatformID int32     `json:"platform_id"`
	QuestionID string    `json:"question_id"`
	AddedAt    time.Time `json:"added_at"`
}

type DynamicProblemsetRow struct {
	UserName   string    `json:"user_name"`
	PlatformID int32     `json:"platform_id"`
	QuestionID string    `json:"question_id"`
	AddedAt    time.Time `json:"added_at"`
	Title      string    `json:"title"`
	Link       string    `json:"link"`
	Difficulty string    `json:"difficulty"`
	Topics     []string  `json:"topics"`
	Companies  []string  `json:"companies"`
}
