package database

import (
	"context"
)

type Querier interface {
	// platforms
	CreatePlatform(ctx context.Context, name string) (Platform, error)
	GetPlatformByName(ctx context.Context, name string) (Platform, error)
	ListPlatforms(ctx context.Context) ([]Platform, error)

	// companies
	CreateCompany(ctx context.Context, name string) (Company, error)
	GetCompanyByName(ctx context.Context, name string) (Company, error)
	GetCompanyByID(ctx context.Context, id int32) (Company, error)
	ListCompanies(ctx context.Context) ([]Company, error)

	// topics
	CreateTopic(ctx context.Context, name string) (Topic, error)
	GetTopicByName(ctx context.Context, name string) (Topic, error)
	ListTopics(ctx context.Context) ([]Topic, error)

	// questions
	CreateQuestion(ctx context.Context, arg CreateQuestionParams) (Question, error)
	GetQuestion(ctx context.Context, key QuestionKey) (Question, error)
	GetQuestionRow(ctx context.Context, key QuestionKey) (QuestionRow, error)
	ListQuestions(ctx context.Context, arg ListQuestionsParams) ([]QuestionRow, error)
	UpdateQuestion(ctx context.Context, arg UpdateQuestionParams) (Question, error)
	DeleteQuestion(ctx context.Context, key QuestionKey) (Question, error)
	LinkQuestionTopic(ctx context.Context, arg QuestionTopic) (int64, error)
	DeleteQuestionTopics(ctx context.Context, key QuestionKey) error
	LinkQuestionCompany(ctx context.Context, arg QuestionCompany) (QuestionCompany, error)
	UnlinkQuestionCompany(ctx context.Context, arg QuestionCompany) (QuestionCompany, error)
	DeleteQuestionCompanies(ctx context.Context, key QuestionKey) error
	QuestionHasCompany(ctx context.Context, arg QuestionCompany) (bool, error)

	// users
	CreateUser(ctx context.Context, arg CreateUserParams) (User, error)
	GetUserByUserName(ctx context.Context, userName string) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	UpdateUserProfile(ctx context.Context, arg UpdateUserProfileParams) (User, error)
	UpdatePassword(ctx context.Context, arg UpdatePasswordParams) (int64, error)
	SetUserAdmin(ctx context.Context, arg SetUserAdminParams) (User, error)

	// friends
	AddFriend(ctx context.Context, arg AddFriendParams) (Friend, error)
	RemoveFriend(ctx context.Context, arg AddFriendParams) (Friend, error)
	ListFriends(ctx context.Context, userName string) ([]Friend, error)

	// solved
	CreateSolved(ctx context.Context, arg UserQuestionParams) (Solved, error)
	GetSolved(ctx context.Context, arg UserQuestionParams) (Solved, error)
	DeleteSolved(ctx context.Context, arg UserQuestionParams) (Solved, error)
	ListSolved(ctx context.Context, userName string) ([]Solved, error)

	// dynamic problemset
	CountDynamicProblemset(ctx context.Context, userName string) (int64, error)
	ListFriendSolvedCandidates(ctx context.Context, arg CandidateParams) ([]QuestionKey, error)
	ListRandomCandidates(ctx context.Context, arg CandidateParams) ([]QuestionKey, error)
	InsertDynamicProblemset(ctx context.Context, arg UserQuestionParams) (DynamicProblemset, error)
	GetDynamicProblemset(ctx context.Context, arg UserQuestionParams) (DynamicProblemset, error)
	DeleteDynamicProblemset(ctx context.Context, arg UserQuestionParams) (DynamicProblemset, error)
	ListDynamicProblemset(ctx context.Context, userName string) ([]DynamicProblemsetRow, error)
}

var _ Querier = (*Queries)(nil)
