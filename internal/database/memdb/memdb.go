// Package memdb is an in-memory database.Store for service tests. It mirrors
// the constraints of the postgres schema (primary keys, unique names, foreign
// keys and cascades) and reports violations as *pgconn.PgError so callers
// exercise the same error paths as in production.
//
// Transactions run against a copy of the state which replaces the live
// state only when the transaction function succeeds. Transactions are
// serialised; queries made through the DB itself wait for a running
// transaction to finish.
package memdb

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/tcp_snm/codetrack/internal/database"
)

// method names accepted by FailOn, besides the Querier method names
const (
	MethodBegin  = "Begin"
	MethodCommit = "Commit"
)

type DB struct {
	*querier

	mu sync.Mutex

	fmu      sync.Mutex
	failures map[string]error
	clock    time.Time
}

var _ database.Store = (*DB)(nil)

func New() *DB {
	d := &DB{
		failures: make(map[string]error),
		clock:    time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
	st := newState()
	st.platforms[1] = database.Platform{ID: 1, Name: "Codeforces"}
	st.platforms[2] = database.Platform{ID: 2, Name: "LeetCode"}
	st.nextPlatformID = 3
	d.querier = &querier{db: d, st: st, mu: &d.mu}
	return d
}

// FailOn makes every following call of method return err, until cleared
// with a nil err.
func (d *DB) FailOn(method string, err error) {
	d.fmu.Lock()
	defer d.fmu.Unlock()
	if err == nil {
		delete(d.failures, method)
		return
	}
	d.failures[method] = err
}

func (d *DB) failure(method string) error {
	d.fmu.Lock()
	defer d.fmu.Unlock()
	return d.failures[method]
}

// now returns a strictly increasing timestamp so that ordering by time is
// deterministic in tests.
func (d *DB) now() time.Time {
	d.fmu.Lock()
	defer d.fmu.Unlock()
	d.clock = d.clock.Add(time.Second)
	return d.clock
}

func (d *DB) ExecTx(ctx context.Context, fn func(q database.Querier) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.failure(MethodBegin); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	clone := d.querier.st.clone()
	tx := &querier{db: d, st: clone, mu: &sync.Mutex{}}
	if err := fn(tx); err != nil {
		return err
	}

	if err := d.failure(MethodCommit); err != nil {
		return err
	}
	d.querier.st = clone
	return nil
}

// SetAdmin flips the admin flag of a user behind the back of any cache, the
// way a manual update of the database would.
func (d *DB) SetAdmin(userName string, admin bool) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	u, ok := d.querier.st.users[userName]
	if !ok {
		return false
	}
	u.IsAdmin = admin
	d.querier.st.users[userName] = u
	return true
}

// Counts reports the number of rows per table, keyed by table name.
func (d *DB) Counts() map[string]int {
	d.mu.Lock()
	defer d.mu.Unlock()
	st := d.querier.st
	return map[string]int{
		"platforms":          len(st.platforms),
		"companies":          len(st.companies),
		"topics":             len(st.topics),
		"questions":          len(st.questions),
		"question_topics":    len(st.questionTopics),
		"question_companies": len(st.questionCompanies),
		"users":              len(st.users),
		"friends":            len(st.friends),
		"solved":             len(st.solved),
		"dynamic_problemset": len(st.dynamic),
	}
}

type state struct {
	platforms map[int32]database.Platform
	companies map[int32]database.Company
	topics    map[int32]database.Topic

	nextPlatformID int32
	nextCompanyID  int32
	nextTopicID    int32

	questions         map[database.QuestionKey]database.Question
	questionTopics    map[database.QuestionTopic]struct{}
	questionCompanies map[database.QuestionCompany]struct{}

	users   map[string]database.User
	friends map[database.AddFriendParams]database.Friend
	solved  map[database.UserQuestionParams]database.Solved
	dynamic map[database.UserQuestionParams]database.DynamicProblemset
}

func newState() *state {
	return &state{
		platforms:         make(map[int32]database.Platform),
		companies:         make(map[int32]database.Company),
		topics:            make(map[int32]database.Topic),
		nextPlatformID:    1,
		nextCompanyID:     1,
		nextTopicID:       1,
		questions:         make(map[database.QuestionKey]database.Question),
		questionTopics:    make(map[database.QuestionTopic]struct{}),
		questionCompanies: make(map[database.QuestionCompany]struct{}),
		users:             make(map[string]database.User),
		friends:           make(map[database.AddFriendParams]database.Friend),
		solved:            make(map[database.UserQuestionParams]database.Solved),
		dynamic:           make(map[database.UserQuestionParams]database.DynamicProblemset),
	}
}

// rows are values and slices inside them are never mutated in place, so a
// shallow copy of every table is enough
func (s *state) clone() *state {
	return &state{
		platforms:         maps.Clone(s.platforms),
		companies:         maps.Clone(s.companies),
		topics:            maps.Clone(s.topics),
		nextPlatformID:    s.nextPlatformID,
		nextCompanyID:     s.nextCompanyID,
		nextTopicID:       s.nextTopicID,
		questions:         maps.Clone(s.questions),
		questionTopics:    maps.Clone(s.questionTopics),
		questionCompanies: maps.Clone(s.questionCompanies),
		users:             maps.Clone(s.users),
		friends:           maps.Clone(s.friends),
		solved:            maps.Clone(s.solved),
		dynamic:           maps.Clone(s.dynamic),
	}
}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{
		Code:           "23505",
		ConstraintName: constraint,
		Message:        "duplicate key value violates unique constraint \"" + constraint + "\"",
	}
}

func foreignKeyViolation(constraint string) error {
	return &pgconn.PgError{
		Code:           "23503",
		ConstraintName: constraint,
		Message:        "insert or update violates foreign key constraint \"" + constraint + "\"",
	}
}
