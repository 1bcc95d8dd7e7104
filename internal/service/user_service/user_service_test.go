package user_service

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tcp_snm/codetrack/internal/database"
	"github.com/tcp_snm/codetrack/internal/database/memdb"
	"github.com/tcp_snm/codetrack/internal/service"
	"github.com/tcp_snm/codetrack/internal/track_errors"
)

func TestMain(m *testing.M) {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.SetLevel(logrus.WarnLevel)
	service.InitializeServices()
	os.Exit(m.Run())
}

func newUsers(t *testing.T, names ...string) (*UserService, *memdb.DB) {
	t.Helper()
	db := memdb.New()
	hash, err := service.GeneratePasswordHash("password123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	for _, name := range names {
		if _, err := db.CreateUser(context.Background(), database.CreateUserParams{
			ID:           uuid.New(),
			UserName:     name,
			Email:        name + "@example.com",
			PasswordHash: hash,
			FirstName:    "First",
			LastName:     "Last",
		}); err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}
	if _, err := db.CreateQuestion(context.Background(), database.CreateQuestionParams{
		PlatformID: 2, QuestionID: "two-sum", Title: "Two Sum",
		Link: "https://leetcode.com/problems/two-sum/", Difficulty: "EASY",
	}); err != nil {
		t.Fatalf("seed question: %v", err)
	}
	return NewUserService(db), db
}

func TestMarkSolvedIsIdempotent(t *testing.T) {
	u, db := newUsers(t, "alice")
	ctx := context.Background()
	req := QuestionRequest{PlatformID: 2, QuestionID: "two-sum"}

	first, err := u.MarkSolved(ctx, "alice", req)
	if err != nil {
		t.Fatalf("mark: %v", err)
	}
	second, err := u.MarkSolved(ctx, "alice", req)
	if err != nil {
		t.Fatalf("mark again: %v", err)
	}
	if first != second {
		t.Errorf("expected the same mark, got %+v and %+v", first, second)
	}
	if n := db.Counts()["solved"]; n != 1 {
		t.Errorf("expected one solved row, got %d", n)
	}

	if _, err = u.MarkSolved(ctx, "alice", QuestionRequest{PlatformID: 2, QuestionID: "nope"}); !errors.Is(err, track_errors.ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest for unknown question, got %v", err)
	}

	removed, err := u.UnmarkSolved(ctx, "alice", req)
	if err != nil || removed == nil {
		t.Fatalf("unmark: %+v, %v", removed, err)
	}
	removed, err = u.UnmarkSolved(ctx, "alice", req)
	if err != nil || removed != nil {
		t.Fatalf("expected nil on second unmark, got %+v, %v", removed, err)
	}
	list, err := u.ListSolved(ctx, "alice")
	if err != nil || len(list) != 0 {
		t.Errorf("expected no solved questions, got %v, %v", list, err)
	}
}

func TestFriends(t *testing.T) {
	u, db := newUsers(t, "alice", "bob", "carol")
	ctx := context.Background()

	if _, err := u.AddFriend(ctx, "alice", "alice"); !errors.Is(err, track_errors.ErrInvalidRequest) {
		t.Errorf("expected self friend to be rejected, got %v", err)
	}
	if _, err := u.AddFriend(ctx, "alice", "ghost"); !errors.Is(err, track_errors.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown friend, got %v", err)
	}

	first, err := u.AddFriend(ctx, "alice", "carol")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	again, err := u.AddFriend(ctx, "alice", "carol")
	if err != nil {
		t.Fatalf("add again: %v", err)
	}
	if first != again {
		t.Errorf("expected existing edge, got %+v and %+v", first, again)
	}
	if _, err = u.AddFriend(ctx, "alice", "bob"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if n := db.Counts()["friends"]; n != 2 {
		t.Errorf("expected 2 edges, got %d", n)
	}

	friends, err := u.ListFriends(ctx, "alice")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(friends) != 2 || friends[0].FriendUserName != "bob" {
		t.Errorf("expected friends sorted by name, got %+v", friends)
	}
	// edges are one way
	if friends, _ = u.ListFriends(ctx, "bob"); len(friends) != 0 {
		t.Errorf("expected bob to have no friends, got %+v", friends)
	}

	removed, err := u.RemoveFriend(ctx, "alice", "bob")
	if err != nil || removed == nil {
		t.Fatalf("remove: %+v, %v", removed, err)
	}
	if removed, err = u.RemoveFriend(ctx, "alice", "bob"); err != nil || removed != nil {
		t.Fatalf("expected nil on second remove, got %+v, %v", removed, err)
	}
}

func TestUpdateProfile(t *testing.T) {
	u, _ := newUsers(t, "alice")
	ctx := context.Background()
	handle := " tourist "
	blank := "  "

	p, err := u.UpdateProfile(ctx, "alice", UpdateProfileRequest{
		FirstName:        "Alice",
		LastName:         "Liddell",
		CodeforcesHandle: &handle,
		LeetcodeHandle:   &blank,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if p.CodeforcesHandle == nil || *p.CodeforcesHandle != "tourist" {
		t.Errorf("expected trimmed codeforces handle, got %v", p.CodeforcesHandle)
	}
	if p.LeetcodeHandle != nil {
		t.Errorf("expected blank leetcode handle to be cleared, got %q", *p.LeetcodeHandle)
	}

	if _, err = u.UpdateProfile(ctx, "alice", UpdateProfileRequest{LastName: "x"}); !errors.Is(err, track_errors.ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest, got %v", err)
	}
	if _, err = u.UpdateProfile(ctx, "ghost", UpdateProfileRequest{FirstName: "a", LastName: "b"}); !errors.Is(err, track_errors.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	me, err := u.GetMe(service.WithClaims(ctx, service.UserCredentialClaims{UserName: "alice"}))
	if err != nil || me.FirstName != "Alice" {
		t.Errorf("get me: %+v, %v", me, err)
	}
}

func TestChangePassword(t *testing.T) {
	u, _ := newUsers(t, "alice")
	ctx := context.Background()

	err := u.ChangePassword(ctx, "alice", ChangePasswordRequest{OldPassword: "wrong-one", NewPassword: "newpassword"})
	if !errors.Is(err, track_errors.ErrInvalidUserCredentials) {
		t.Errorf("expected ErrInvalidUserCredentials, got %v", err)
	}
	err = u.ChangePassword(ctx, "alice", ChangePasswordRequest{OldPassword: "password123", NewPassword: "password123"})
	if !errors.Is(err, track_errors.ErrPasswordUnchanged) {
		t.Errorf("expected ErrPasswordUnchanged, got %v", err)
	}
	if err = u.ChangePassword(ctx, "alice", ChangePasswordRequest{OldPassword: "password123", NewPassword: "newpassword"}); err != nil {
		t.Fatalf("change: %v", err)
	}

	user, err := u.FetchUserByUserName(ctx, "alice")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if !service.PasswordMatches(user.PasswordHash, "newpassword") {
		t.Errorf("new password not stored")
	}
}

func TestPasswordUpdateMustChangeHash(t *testing.T) {
	_, db := newUsers(t, "alice")
	ctx := context.Background()
	user, _ := db.GetUserByUserName(ctx, "alice")

	updated, err := db.UpdatePassword(ctx, database.UpdatePasswordParams{
		UserName:     "alice",
		PasswordHash: user.PasswordHash,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated != 0 {
		t.Errorf("expected the same hash to be rejected, got %d rows", updated)
	}
}

func TestIsAdminIsCached(t *testing.T) {
	u, db := newUsers(t, "alice")
	ctx := context.Background()

	if err := u.AuthorizeAdmin(ctx, "alice", "create questions"); !errors.Is(err, track_errors.ErrUnAuthorized) {
		t.Fatalf("expected ErrUnAuthorized, got %v", err)
	}

	db.SetAdmin("alice", true)
	isAdmin, err := u.IsAdmin(ctx, "alice")
	if err != nil {
		t.Fatalf("is admin: %v", err)
	}
	if isAdmin {
		t.Errorf("expected the cached flag until it is forgotten")
	}

	u.forgetAdmin("alice")
	if err = u.AuthorizeAdmin(ctx, "alice", "create questions"); err != nil {
		t.Errorf("expected admin after cache drop, got %v", err)
	}

	if _, err = u.IsAdmin(ctx, "ghost"); !errors.Is(err, track_errors.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSetAdminRefreshesCache(t *testing.T) {
	u, _ := newUsers(t, "alice", "bob")
	ctx := context.Background()

	// warm the cache with the old flag
	if isAdmin, err := u.IsAdmin(ctx, "bob"); err != nil || isAdmin {
		t.Fatalf("expected bob not to be admin, got %v, %v", isAdmin, err)
	}

	profile, err := u.SetAdmin(ctx, "bob", true)
	if err != nil {
		t.Fatalf("set admin: %v", err)
	}
	if !profile.IsAdmin {
		t.Errorf("expected the returned profile to be admin")
	}
	if err = u.AuthorizeAdmin(ctx, "bob", "create questions"); err != nil {
		t.Errorf("expected the promotion to be seen at once, got %v", err)
	}

	if _, err = u.SetAdmin(ctx, "bob", false); err != nil {
		t.Fatalf("demote: %v", err)
	}
	if err = u.AuthorizeAdmin(ctx, "bob", "create questions"); !errors.Is(err, track_errors.ErrUnAuthorized) {
		t.Errorf("expected the demotion to be seen at once, got %v", err)
	}

	if _, err = u.SetAdmin(ctx, "ghost", true); !errors.Is(err, track_errors.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown user, got %v", err)
	}
}
