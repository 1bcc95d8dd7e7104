package problemset_service

import (
	"time"

	"github.com/tcp_snm/codetrack/internal/database"
	"github.com/tcp_snm/codetrack/internal/locks"
	"github.com/tcp_snm/codetrack/internal/track_errors"
)

const DefaultTarget = 10

var (
	msgForeignKey = map[string]string{
		"fk_dynamic_problemset_user":     "no user exist with that user_name",
		"fk_dynamic_problemset_question": "no question exist with that platform_id and question_id",
	}

	errMsgs = map[string]map[string]string{
		track_errors.CodeForeignKeyConstraint: msgForeignKey,
	}
)

type ProblemsetService struct {
	DB     database.Store
	Locker locks.Locker
	// Target is the size a refresh fills the problemset up to, DefaultTarget
	// when zero
	Target int
}

type RefreshResult struct {
	Refreshed bool `json:"refreshed"`
	Count     int  `json:"count"`
	Added     int  `json:"added"`
}

type Entry struct {
	UserName   string    `json:"user_name"`
	PlatformID int32     `json:"platform_id"`
	QuestionID string    `json:"question_id"`
	AddedAt    time.Time `json:"added_at"`
}

// ProblemsetQuestion is an entry joined with its question.
type ProblemsetQuestion struct {
	Entry
	Title      string   `json:"title"`
	Link       string   `json:"link"`
	Difficulty string   `json:"difficulty"`
	Topics     []string `json:"topics"`
	Companies  []string `json:"companies"`
}

type EntryRequest struct {
	PlatformID int32  `json:"platform_id" validate:"required,gte=1"`
	QuestionID string `json:"question_id" validate:"required,max=255"`
}

func (p *ProblemsetService) target() int {
	if p.Target <= 0 {
		return DefaultTarget
	}
	return p.Target
}

func dbEntryToEntry(e database.DynamicProblemset) Entry {
	return Entry{
		UserName:   e.UserName,
		PlatformID: e.PlatformID,
		QuestionID: e.QuestionID,
		AddedAt:    e.AddedAt,
	}
}
