package problemset_service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tcp_snm/codetrack/internal/database"
	"github.com/tcp_snm/codetrack/internal/database/memdb"
	"github.com/tcp_snm/codetrack/internal/locks"
	"github.com/tcp_snm/codetrack/internal/service"
	"github.com/tcp_snm/codetrack/internal/track_errors"
)

func TestMain(m *testing.M) {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.SetLevel(logrus.WarnLevel)
	service.InitializeServices()
	os.Exit(m.Run())
}

type fixture struct {
	t   *testing.T
	db  *memdb.DB
	svc *ProblemsetService
}

func newFixture(t *testing.T, questions int) *fixture {
	t.Helper()
	db := memdb.New()
	f := &fixture{
		t:   t,
		db:  db,
		svc: &ProblemsetService{DB: db, Locker: locks.NewLocalLocker()},
	}
	for i := range questions {
		if _, err := db.CreateQuestion(context.Background(), database.CreateQuestionParams{
			PlatformID: 2,
			QuestionID: qid(i),
			Title:      fmt.Sprintf("Question %d", i),
			Link:       "https://leetcode.com/problems/" + qid(i),
			Difficulty: "EASY",
			Topics:     []string{"Array"},
		}); err != nil {
			t.Fatalf("seed question: %v", err)
		}
	}
	return f
}

func qid(i int) string { return fmt.Sprintf("q%02d", i) }

func (f *fixture) user(name string) {
	f.t.Helper()
	if _, err := f.db.CreateUser(context.Background(), database.CreateUserParams{
		ID:           uuid.New(),
		UserName:     name,
		Email:        name + "@example.com",
		PasswordHash: "hash",
		FirstName:    name,
		LastName:     name,
	}); err != nil {
		f.t.Fatalf("seed user: %v", err)
	}
}

func (f *fixture) friend(userName, friendUserName string) {
	f.t.Helper()
	if _, err := f.db.AddFriend(context.Background(), database.AddFriendParams{
		UserName:       userName,
		FriendUserName: friendUserName,
	}); err != nil {
		f.t.Fatalf("seed friend: %v", err)
	}
}

func (f *fixture) solve(userName string, questions ...int) {
	f.t.Helper()
	for _, i := range questions {
		if _, err := f.db.CreateSolved(context.Background(), database.UserQuestionParams{
			UserName:   userName,
			PlatformID: 2,
			QuestionID: qid(i),
		}); err != nil {
			f.t.Fatalf("seed solved: %v", err)
		}
	}
}

func (f *fixture) entries(userName string) map[string]bool {
	f.t.Helper()
	got, err := f.svc.Get(context.Background(), userName)
	if err != nil {
		f.t.Fatalf("get: %v", err)
	}
	res := make(map[string]bool, len(got))
	for _, e := range got {
		res[e.QuestionID] = true
	}
	return res
}

func TestRefreshFillsFromFriendsToTarget(t *testing.T) {
	f := newFixture(t, 20)
	f.user("alice")
	f.user("bob")
	f.user("carol")
	f.friend("alice", "bob")
	f.friend("alice", "carol")
	f.solve("bob", 0, 1, 2, 3, 4, 5, 6)
	f.solve("carol", 5, 6, 7, 8, 9, 10, 11, 12)
	f.solve("alice", 12)

	res, err := f.svc.Refresh(context.Background(), "alice")
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if !res.Refreshed || res.Count != 10 || res.Added != 10 {
		t.Fatalf("unexpected result %+v", res)
	}

	got := f.entries("alice")
	if len(got) != 10 {
		t.Fatalf("expected 10 entries, got %d", len(got))
	}
	for id := range got {
		var n int
		fmt.Sscanf(id, "q%d", &n)
		if n > 11 {
			t.Errorf("%s was not solved by a friend or is solved by alice", id)
		}
	}
	// the two oldest friend solves lose to the ten most recent ones
	if got[qid(0)] || got[qid(1)] {
		t.Errorf("expected the oldest friend solves to be left out, got %v", got)
	}
}

func TestRefreshNoOpAtTarget(t *testing.T) {
	f := newFixture(t, 15)
	f.user("alice")
	ctx := context.Background()

	if _, err := f.svc.Refresh(ctx, "alice"); err != nil {
		t.Fatalf("first refresh: %v", err)
	}
	before := f.db.Counts()["dynamic_problemset"]

	res, err := f.svc.Refresh(ctx, "alice")
	if err != nil {
		t.Fatalf("second refresh: %v", err)
	}
	if res.Refreshed || res.Count != 10 || res.Added != 0 {
		t.Errorf("expected {refreshed:false count:10 added:0}, got %+v", res)
	}
	if after := f.db.Counts()["dynamic_problemset"]; after != before {
		t.Errorf("no-op refresh inserted rows: %d -> %d", before, after)
	}
}

func TestRefreshBackfillsRandomly(t *testing.T) {
	f := newFixture(t, 20)
	f.user("alice")
	f.user("bob")
	f.friend("alice", "bob")
	f.solve("bob", 0, 1, 2)
	f.solve("alice", 2, 3, 4)

	res, err := f.svc.Refresh(context.Background(), "alice")
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if res.Added != 10 || res.Count != 10 {
		t.Fatalf("unexpected result %+v", res)
	}
	got := f.entries("alice")
	if !got[qid(0)] || !got[qid(1)] {
		t.Errorf("friend solves missing from %v", got)
	}
	for _, solved := range []int{2, 3, 4} {
		if got[qid(solved)] {
			t.Errorf("%s is already solved by alice", qid(solved))
		}
	}
}

func TestRefreshWithSmallCatalog(t *testing.T) {
	f := newFixture(t, 4)
	f.user("alice")
	f.solve("alice", 0)

	res, err := f.svc.Refresh(context.Background(), "alice")
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if !res.Refreshed || res.Added != 3 || res.Count != 3 {
		t.Errorf("unexpected result %+v", res)
	}

	res, err = f.svc.Refresh(context.Background(), "alice")
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if !res.Refreshed || res.Added != 0 || res.Count != 3 {
		t.Errorf("expected an empty refill, got %+v", res)
	}
}

func TestRefreshRollsBack(t *testing.T) {
	f := newFixture(t, 20)
	f.user("alice")
	f.user("bob")
	f.friend("alice", "bob")
	f.solve("bob", 0, 1, 2)

	// fails after the friend entries were inserted
	f.db.FailOn("ListRandomCandidates", errors.New("statement timeout"))
	_, err := f.svc.Refresh(context.Background(), "alice")
	if !errors.Is(err, track_errors.ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
	if n := f.db.Counts()["dynamic_problemset"]; n != 0 {
		t.Fatalf("expected rollback to leave no entries, got %d", n)
	}

	f.db.FailOn("ListRandomCandidates", nil)
	res, err := f.svc.Refresh(context.Background(), "alice")
	if err != nil || res.Count != 10 {
		t.Fatalf("retry: %+v, %v", res, err)
	}
}

func TestRefreshUnknownUser(t *testing.T) {
	f := newFixture(t, 3)
	if _, err := f.svc.Refresh(context.Background(), "ghost"); !errors.Is(err, track_errors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRefreshHonoursTarget(t *testing.T) {
	f := newFixture(t, 10)
	f.user("alice")
	f.svc.Target = 4

	res, err := f.svc.Refresh(context.Background(), "alice")
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if res.Count != 4 || res.Added != 4 {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestRefreshLockContention(t *testing.T) {
	f := newFixture(t, 10)
	f.user("alice")
	locker := locks.NewLocalLocker()
	locker.Wait = 20 * time.Millisecond
	f.svc.Locker = locker

	release, err := locker.Acquire(context.Background(), "problemset:alice")
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer release()

	if _, err = f.svc.Refresh(context.Background(), "alice"); !errors.Is(err, track_errors.ErrLockNotAcquired) {
		t.Fatalf("expected ErrLockNotAcquired, got %v", err)
	}
}

func TestConcurrentRefreshDoesNotOvershoot(t *testing.T) {
	f := newFixture(t, 30)
	f.user("alice")

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.svc.Refresh(context.Background(), "alice"); err != nil {
				t.Errorf("refresh: %v", err)
			}
		}()
	}
	wg.Wait()

	count, err := f.svc.Count(context.Background(), "alice")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 10 {
		t.Errorf("expected exactly 10 entries, got %d", count)
	}
}

func TestAddGetRemove(t *testing.T) {
	f := newFixture(t, 3)
	f.user("alice")
	ctx := context.Background()

	first, err := f.svc.Add(ctx, "alice", EntryRequest{PlatformID: 2, QuestionID: qid(0)})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	again, err := f.svc.Add(ctx, "alice", EntryRequest{PlatformID: 2, QuestionID: qid(0)})
	if err != nil {
		t.Fatalf("add again: %v", err)
	}
	if again != first {
		t.Errorf("expected the existing entry, got %+v and %+v", first, again)
	}
	if _, err = f.svc.Add(ctx, "alice", EntryRequest{PlatformID: 2, QuestionID: qid(1)}); err != nil {
		t.Fatalf("add: %v", err)
	}

	list, err := f.svc.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(list) != 2 || list[0].QuestionID != qid(1) {
		t.Fatalf("expected newest first, got %+v", list)
	}
	if list[0].Title != "Question 1" || len(list[0].Topics) != 1 {
		t.Errorf("question fields not joined: %+v", list[0])
	}

	removed, err := f.svc.Remove(ctx, "alice", EntryRequest{PlatformID: 2, QuestionID: qid(0)})
	if err != nil || removed == nil || removed.QuestionID != qid(0) {
		t.Fatalf("remove: %+v, %v", removed, err)
	}
	removed, err = f.svc.Remove(ctx, "alice", EntryRequest{PlatformID: 2, QuestionID: qid(0)})
	if err != nil || removed != nil {
		t.Fatalf("expected nil for missing entry, got %+v, %v", removed, err)
	}

	if _, err = f.svc.Add(ctx, "alice", EntryRequest{PlatformID: 2, QuestionID: "missing"}); !errors.Is(err, track_errors.ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest for unknown question, got %v", err)
	}
	if _, err = f.svc.Add(ctx, "alice", EntryRequest{}); !errors.Is(err, track_errors.ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest for empty request, got %v", err)
	}
}
