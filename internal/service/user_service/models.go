package user_service

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/tcp_snm/codetrack/internal/database"
	"github.com/tcp_snm/codetrack/internal/track_errors"
)

const (
	adminCacheSize = 256
	adminCacheTTL  = 5 * time.Minute
)

var (
	msgUniqueKey = map[string]string{
		"uq_users_user_name": "user with that user_name already exist",
		"uq_users_email":     "user with that email already exist",
	}

	msgForeignKey = map[string]string{
		"fk_friends_user":    "no user exist with that user_name",
		"fk_friends_friend":  "no user exist with that friend_user_name",
		"fk_solved_user":     "no user exist with that user_name",
		"fk_solved_question": "no question exist with that platform_id and question_id",
	}

	errMsgs = map[string]map[string]string{
		track_errors.CodeUniqueConstraint:     msgUniqueKey,
		track_errors.CodeForeignKeyConstraint: msgForeignKey,
	}
)

type UserService struct {
	DB database.Store

	// user_name -> is_admin
	adminCache *expirable.LRU[string, bool]
}

func NewUserService(db database.Store) *UserService {
	return &UserService{
		DB:         db,
		adminCache: expirable.NewLRU[string, bool](adminCacheSize, nil, adminCacheTTL),
	}
}

type Profile struct {
	UserName         string    `json:"user_name"`
	Email            string    `json:"email"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	CodeforcesHandle *string   `json:"codeforces_handle"`
	LeetcodeHandle   *string   `json:"leetcode_handle"`
	IsAdmin          bool      `json:"is_admin"`
	CreatedAt        time.Time `json:"created_at"`
}

type UpdateProfileRequest struct {
	FirstName        string  `json:"first_name" validate:"required,max=50"`
	LastName         string  `json:"last_name" validate:"required,max=50"`
	CodeforcesHandle *string `json:"codeforces_handle" validate:"omitempty,max=64"`
	LeetcodeHandle   *string `json:"leetcode_handle" validate:"omitempty,max=64"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=7,max=72"`
}

type QuestionRequest struct {
	PlatformID int32  `json:"platform_id" validate:"required,gte=1"`
	QuestionID string `json:"question_id" validate:"required,max=255"`
}

func dbUserToProfile(u database.User) Profile {
	return Profile{
		UserName:         u.UserName,
		Email:            u.Email,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		CodeforcesHandle: u.CodeforcesHandle,
		LeetcodeHandle:   u.LeetcodeHandle,
		IsAdmin:          u.IsAdmin,
		CreatedAt:        u.CreatedAt,
	}
}

type SetAdminRequest struct {
	IsAdmin bool `json:"is_admin"`
}
