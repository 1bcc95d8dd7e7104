package database

import (
	"context"

	"github.com/google/uuid"
)

const userColumns = `id, user_name, email, password_hash, first_name, last_name,
    codeforces_handle, leetcode_handle, is_admin, created_at`

type CreateUserParams struct {
	ID           uuid.UUID
	UserName     string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
}

const createUser = `
INSERT INTO users (id, user_name, email, password_hash, first_name, last_name)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + userColumns

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	row := q.db.QueryRow(ctx, createUser,
		arg.ID,
		arg.UserName,
		arg.Email,
		arg.PasswordHash,
		arg.FirstName,
		arg.LastName,
	)
	return scanUser(row)
}

const getUserByUserName = `
SELECT ` + userColumns + ` FROM users WHERE user_name = $1
`

func (q *Queries) GetUserByUserName(ctx context.Context, userName string) (User, error) {
	return scanUser(q.db.QueryRow(ctx, getUserByUserName, userName))
}

const getUserByEmail = `
SELECT ` + userColumns + ` FROM users WHERE email = $1
`

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	return scanUser(q.db.QueryRow(ctx, getUserByEmail, email))
}

type UpdateUserProfileParams struct {
	UserName         string
	FirstName        string
	LastName         string
	CodeforcesHandle *string
	LeetcodeHandle   *string
}

const updateUserProfile = `
UPDATE users
SET first_name = $2, last_name = $3, codeforces_handle = $4, leetcode_handle = $5
WHERE user_name = $1
RETURNING ` + userColumns

func (q *Queries) UpdateUserProfile(ctx context.Context, arg UpdateUserProfileParams) (User, error) {
	row := q.db.QueryRow(ctx, updateUserProfile,
		arg.UserName,
		arg.FirstName,
		arg.LastName,
		arg.CodeforcesHandle,
		arg.LeetcodeHandle,
	)
	return scanUser(row)
}

type UpdatePasswordParams struct {
	UserName     string
	PasswordHash string
}

// the stored credential is only replaced when it actually changes
const updatePassword = `
UPDATE users SET password_hash = $2
WHERE user_name = $1 AND password_hash <> $2
`

func (q *Queries) UpdatePassword(ctx context.Context, arg UpdatePasswordParams) (int64, error) {
	result, err := q.db.Exec(ctx, updatePassword, arg.UserName, arg.PasswordHash)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

type SetUserAdminParams struct {
	UserName string
	IsAdmin  bool
}

const setUserAdmin = `
UPDATE users SET is_admin = $2
WHERE user_name = $1
RETURNING ` + userColumns

func (q *Queries) SetUserAdmin(ctx context.Context, arg SetUserAdminParams) (User, error) {
	return scanUser(q.db.QueryRow(ctx, setUserAdmin, arg.UserName, arg.IsAdmin))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (User, error) {
	var i User
	err := row.Scan(
		&i.ID,
		&i.UserName,
		&i.Email,
		&i.PasswordHash,
		&i.FirstName,
		&i.LastName,
		&i.CodeforcesHandle,
		&i.LeetcodeHandle,
		&i.IsAdmin,
		&i.CreatedAt,
	)
	return i, err
}

type AddFriendParams struct {
	UserName       string
	FriendUserName string
}

const addFriend = `
INSERT INTO friends (user_name, friend_user_name) VALUES ($1, $2)
ON CONFLICT DO NOTHING
RETURNING user_name, friend_user_name, created_at
`

// returns pgx.ErrNoRows when the edge already existed
func (q *Queries) AddFriend(ctx context.Context, arg AddFriendParams) (Friend, error) {
	row := q.db.QueryRow(ctx, addFriend, arg.UserName, arg.FriendUserName)
	var i Friend
	err := row.Scan(&i.UserName, &i.FriendUserName, &i.CreatedAt)
	return i, err
}

const removeFriend = `
DELETE FROM friends WHERE user_name = $1 AND friend_user_name = $2
RETURNING user_name, friend_user_name, created_at
`

func (q *Queries) RemoveFriend(ctx context.Context, arg AddFriendParams) (Friend, error) {
	row := q.db.QueryRow(ctx, removeFriend, arg.UserName, arg.FriendUserName)
	var i Friend
	err := row.Scan(&i.UserName, &i.FriendUserName, &i.CreatedAt)
	return i, err
}

const listFriends = `
SELECT user_name, friend_user_name, created_at
FROM friends WHERE user_name = $1
ORDER BY friend_user_name ASC
`

func (q *Queries) ListFriends(ctx context.Context, userName string) ([]Friend, error) {
	rows, err := q.db.Query(ctx, listFriends, userName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Friend{}
	for rows.Next() {
		var i Friend
		if err := rows.Scan(&i.UserName, &i.FriendUserName, &i.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
