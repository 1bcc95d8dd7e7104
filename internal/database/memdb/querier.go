package memdb

import (
	"cmp"
	"context"
	"maps"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tcp_snm/codetrack/internal/database"
)

type querier struct {
	db *DB
	st *state
	mu *sync.Mutex
}

var _ database.Querier = (*querier)(nil)

func (q *querier) enter(method string) (func(), error) {
	q.mu.Lock()
	if err := q.db.failure(method); err != nil {
		q.mu.Unlock()
		return nil, err
	}
	return q.mu.Unlock, nil
}

// platforms

func (q *querier) CreatePlatform(ctx context.Context, name string) (database.Platform, error) {
	leave, err := q.enter("CreatePlatform")
	if err != nil {
		return database.Platform{}, err
	}
	defer leave()
	for _, p := range q.st.platforms {
		if p.Name == name {
			return database.Platform{}, uniqueViolation("uq_platforms_name")
		}
	}
	p := database.Platform{ID: q.st.nextPlatformID, Name: name}
	q.st.nextPlatformID++
	q.st.platforms[p.ID] = p
	return p, nil
}

func (q *querier) GetPlatformByName(ctx context.Context, name string) (database.Platform, error) {
	leave, err := q.enter("GetPlatformByName")
	if err != nil {
		return database.Platform{}, err
	}
	defer leave()
	for _, p := range q.st.platforms {
		if p.Name == name {
			return p, nil
		}
	}
	return database.Platform{}, pgx.ErrNoRows
}

func (q *querier) ListPlatforms(ctx context.Context) ([]database.Platform, error) {
	leave, err := q.enter("ListPlatforms")
	if err != nil {
		return nil, err
	}
	defer leave()
	items := slices.Collect(maps.Values(q.st.platforms))
	slices.SortFunc(items, func(a, b database.Platform) int { return cmp.Compare(a.Name, b.Name) })
	return items, nil
}

// companies

func (q *querier) CreateCompany(ctx context.Context, name string) (database.Company, error) {
	leave, err := q.enter("CreateCompany")
	if err != nil {
		return database.Company{}, err
	}
	defer leave()
	for _, c := range q.st.companies {
		if c.Name == name {
			return database.Company{}, uniqueViolation("uq_companies_name")
		}
	}
	c := database.Company{ID: q.st.nextCompanyID, Name: name}
	q.st.nextCompanyID++
	q.st.companies[c.ID] = c
	return c, nil
}

func (q *querier) GetCompanyByName(ctx context.Context, name string) (database.Company, error) {
	leave, err := q.enter("GetCompanyByName")
	if err != nil {
		return database.Company{}, err
	}
	defer leave()
	for _, c := range q.st.companies {
		if c.Name == name {
			return c, nil
		}
	}
	return database.Company{}, pgx.ErrNoRows
}

func (q *querier) GetCompanyByID(ctx context.Context, id int32) (database.Company, error) {
	leave, err := q.enter("GetCompanyByID")
	if err != nil {
		return database.Company{}, err
	}
	defer leave()
	c, ok := q.st.companies[id]
	if !ok {
		return database.Company{}, pgx.ErrNoRows
	}
	return c, nil
}

func (q *querier) ListCompanies(ctx context.Context) ([]database.Company, error) {
	leave, err := q.enter("ListCompanies")
	if err != nil {
		return nil, err
	}
	defer leave()
	items := slices.Collect(maps.Values(q.st.companies))
	slices.SortFunc(items, func(a, b database.Company) int { return cmp.Compare(a.Name, b.Name) })
	return items, nil
}

// topics

func (q *querier) CreateTopic(ctx context.Context, name string) (database.Topic, error) {
	leave, err := q.enter("CreateTopic")
	if err != nil {
		return database.Topic{}, err
	}
	defer leave()
	for _, t := range q.st.topics {
		if t.Name == name {
			return database.Topic{}, uniqueViolation("uq_topics_name")
		}
	}
	t := database.Topic{ID: q.st.nextTopicID, Name: name}
	q.st.nextTopicID++
	q.st.topics[t.ID] = t
	return t, nil
}

func (q *querier) GetTopicByName(ctx context.Context, name string) (database.Topic, error) {
	leave, err := q.enter("GetTopicByName")
	if err != nil {
		return database.Topic{}, err
	}
	defer leave()
	for _, t := range q.st.topics {
		if t.Name == name {
			return t, nil
		}
	}
	return database.Topic{}, pgx.ErrNoRows
}

func (q *querier) ListTopics(ctx context.Context) ([]database.Topic, error) {
	leave, err := q.enter("ListTopics")
	if err != nil {
		return nil, err
	}
	defer leave()
	items := slices.Collect(maps.Values(q.st.topics))
	slices.SortFunc(items, func(a, b database.Topic) int { return cmp.Compare(a.Name, b.Name) })
	return items, nil
}

// questions

func (q *querier) CreateQuestion(ctx context.Context, arg database.CreateQuestionParams) (database.Question, error) {
	leave, err := q.enter("CreateQuestion")
	if err != nil {
		return database.Question{}, err
	}
	defer leave()
	if _, ok := q.st.platforms[arg.PlatformID]; !ok {
		return database.Question{}, foreignKeyViolation("fk_questions_platform")
	}
	key := database.QuestionKey{PlatformID: arg.PlatformID, QuestionID: arg.QuestionID}
	if _, ok := q.st.questions[key]; ok {
		return database.Question{}, uniqueViolation("pk_questions")
	}
	question := database.Question{
		PlatformID: arg.PlatformID,
		QuestionID: arg.QuestionID,
		Title:      arg.Title,
		Link:       arg.Link,
		Difficulty: arg.Difficulty,
		Topics:     cloneStrings(arg.Topics),
		CreatedAt:  q.db.now(),
	}
	q.st.questions[key] = question
	return question, nil
}

func (q *querier) GetQuestion(ctx context.Context, key database.QuestionKey) (database.Question, error) {
	leave, err := q.enter("GetQuestion")
	if err != nil {
		return database.Question{}, err
	}
	defer leave()
	question, ok := q.st.questions[key]
	if !ok {
		return database.Question{}, pgx.ErrNoRows
	}
	return question, nil
}

func (q *querier) GetQuestionRow(ctx context.Context, key database.QuestionKey) (database.QuestionRow, error) {
	leave, err := q.enter("GetQuestionRow")
	if err != nil {
		return database.QuestionRow{}, err
	}
	defer leave()
	question, ok := q.st.questions[key]
	if !ok {
		return database.QuestionRow{}, pgx.ErrNoRows
	}
	return q.questionRow(question), nil
}

func (q *querier) ListQuestions(ctx context.Context, arg database.ListQuestionsParams) ([]database.QuestionRow, error) {
	leave, err := q.enter("ListQuestions")
	if err != nil {
		return nil, err
	}
	defer leave()
	items := []database.QuestionRow{}
	for _, question := range q.st.questions {
		row := q.questionRow(question)
		if arg.Search != nil {
			search := strings.ToLower(*arg.Search)
			if !strings.Contains(strings.ToLower(row.Title), search) &&
				!strings.Contains(strings.ToLower(row.QuestionID), search) {
				continue
			}
		}
		if arg.Topic != nil && !slices.Contains(row.Topics, *arg.Topic) {
			continue
		}
		if arg.Difficulty != nil && row.Difficulty != *arg.Difficulty {
			continue
		}
		if arg.CompanyID != nil {
			link := database.QuestionCompany{
				PlatformID: row.PlatformID,
				QuestionID: row.QuestionID,
				CompanyID:  *arg.CompanyID,
			}
			if _, ok := q.st.questionCompanies[link]; !ok {
				continue
			}
		}
		if arg.PlatformID != nil && row.PlatformID != *arg.PlatformID {
			continue
		}
		items = append(items, row)
	}
	slices.SortFunc(items, func(a, b database.QuestionRow) int {
		return cmp.Or(
			cmp.Compare(a.PlatformID, b.PlatformID),
			cmp.Compare(a.QuestionID, b.QuestionID),
		)
	})
	return items, nil
}

func (q *querier) UpdateQuestion(ctx context.Context, arg database.UpdateQuestionParams) (database.Question, error) {
	leave, err := q.enter("UpdateQuestion")
	if err != nil {
		return database.Question{}, err
	}
	defer leave()
	key := database.QuestionKey{PlatformID: arg.PlatformID, QuestionID: arg.QuestionID}
	question, ok := q.st.questions[key]
	if !ok {
		return database.Question{}, pgx.ErrNoRows
	}
	question.Title = arg.Title
	question.Link = arg.Link
	question.Difficulty = arg.Difficulty
	question.Topics = cloneStrings(arg.Topics)
	q.st.questions[key] = question
	return question, nil
}

func (q *querier) DeleteQuestion(ctx context.Context, key database.QuestionKey) (database.Question, error) {
	leave, err := q.enter("DeleteQuestion")
	if err != nil {
		return database.Question{}, err
	}
	defer leave()
	question, ok := q.st.questions[key]
	if !ok {
		return database.Question{}, pgx.ErrNoRows
	}
	delete(q.st.questions, key)

	// ON DELETE CASCADE
	for link := range q.st.questionTopics {
		if link.PlatformID == key.PlatformID && link.QuestionID == key.QuestionID {
			delete(q.st.questionTopics, link)
		}
	}
	for link := range q.st.questionCompanies {
		if link.PlatformID == key.PlatformID && link.QuestionID == key.QuestionID {
			delete(q.st.questionCompanies, link)
		}
	}
	for k := range q.st.solved {
		if k.PlatformID == key.PlatformID && k.QuestionID == key.QuestionID {
			delete(q.st.solved, k)
		}
	}
	for k := range q.st.dynamic {
		if k.PlatformID == key.PlatformID && k.QuestionID == key.QuestionID {
			delete(q.st.dynamic, k)
		}
	}
	return question, nil
}

func (q *querier) LinkQuestionTopic(ctx context.Context, arg database.QuestionTopic) (int64, error) {
	leave, err := q.enter("LinkQuestionTopic")
	if err != nil {
		return 0, err
	}
	defer leave()
	key := database.QuestionKey{PlatformID: arg.PlatformID, QuestionID: arg.QuestionID}
	if _, ok := q.st.questions[key]; !ok {
		return 0, foreignKeyViolation("fk_question_topics_question")
	}
	if _, ok := q.st.topics[arg.TopicID]; !ok {
		return 0, foreignKeyViolation("fk_question_topics_topic")
	}
	if _, ok := q.st.questionTopics[arg]; ok {
		return 0, nil
	}
	q.st.questionTopics[arg] = struct{}{}
	return 1, nil
}

func (q *querier) DeleteQuestionTopics(ctx context.Context, key database.QuestionKey) error {
	leave, err := q.enter("DeleteQuestionTopics")
	if err != nil {
		return err
	}
	defer leave()
	for link := range q.st.questionTopics {
		if link.PlatformID == key.PlatformID && link.QuestionID == key.QuestionID {
			delete(q.st.questionTopics, link)
		}
	}
	return nil
}

func (q *querier) LinkQuestionCompany(ctx context.Context, arg database.QuestionCompany) (database.QuestionCompany, error) {
	leave, err := q.enter("LinkQuestionCompany")
	if err != nil {
		return database.QuestionCompany{}, err
	}
	defer leave()
	key := database.QuestionKey{PlatformID: arg.PlatformID, QuestionID: arg.QuestionID}
	if _, ok := q.st.questions[key]; !ok {
		return database.QuestionCompany{}, foreignKeyViolation("fk_question_companies_question")
	}
	if _, ok := q.st.companies[arg.CompanyID]; !ok {
		return database.QuestionCompany{}, foreignKeyViolation("fk_question_companies_company")
	}
	if _, ok := q.st.questionCompanies[arg]; ok {
		return database.QuestionCompany{}, pgx.ErrNoRows
	}
	q.st.questionCompanies[arg] = struct{}{}
	return arg, nil
}

func (q *querier) UnlinkQuestionCompany(ctx context.Context, arg database.QuestionCompany) (database.QuestionCompany, error) {
	leave, err := q.enter("UnlinkQuestionCompany")
	if err != nil {
		return database.QuestionCompany{}, err
	}
	defer leave()
	if _, ok := q.st.questionCompanies[arg]; !ok {
		return database.QuestionCompany{}, pgx.ErrNoRows
	}
	delete(q.st.questionCompanies, arg)
	return arg, nil
}

func (q *querier) DeleteQuestionCompanies(ctx context.Context, key database.QuestionKey) error {
	leave, err := q.enter("DeleteQuestionCompanies")
	if err != nil {
		return err
	}
	defer leave()
	for link := range q.st.questionCompanies {
		if link.PlatformID == key.PlatformID && link.QuestionID == key.QuestionID {
			delete(q.st.questionCompanies, link)
		}
	}
	return nil
}

func (q *querier) QuestionHasCompany(ctx context.Context, arg database.QuestionCompany) (bool, error) {
	leave, err := q.enter("QuestionHasCompany")
	if err != nil {
		return false, err
	}
	defer leave()
	_, ok := q.st.questionCompanies[arg]
	return ok, nil
}

// users

func (q *querier) CreateUser(ctx context.Context, arg database.CreateUserParams) (database.User, error) {
	leave, err := q.enter("CreateUser")
	if err != nil {
		return database.User{}, err
	}
	defer leave()
	if _, ok := q.st.users[arg.UserName]; ok {
		return database.User{}, uniqueViolation("uq_users_user_name")
	}
	for _, u := range q.st.users {
		if u.Email == arg.Email {
			return database.User{}, uniqueViolation("uq_users_email")
		}
		if u.ID == arg.ID {
			return database.User{}, uniqueViolation("users_pkey")
		}
	}
	user := database.User{
		ID:           arg.ID,
		UserName:     arg.UserName,
		Email:        arg.Email,
		PasswordHash: arg.PasswordHash,
		FirstName:    arg.FirstName,
		LastName:     arg.LastName,
		CreatedAt:    q.db.now(),
	}
	q.st.users[arg.UserName] = user
	return user, nil
}

func (q *querier) GetUserByUserName(ctx context.Context, userName string) (database.User, error) {
	leave, err := q.enter("GetUserByUserName")
	if err != nil {
		return database.User{}, err
	}
	defer leave()
	user, ok := q.st.users[userName]
	if !ok {
		return database.User{}, pgx.ErrNoRows
	}
	return user, nil
}

func (q *querier) GetUserByEmail(ctx context.Context, email string) (database.User, error) {
	leave, err := q.enter("GetUserByEmail")
	if err != nil {
		return database.User{}, err
	}
	defer leave()
	for _, u := range q.st.users {
		if u.Email == email {
			return u, nil
		}
	}
	return database.User{}, pgx.ErrNoRows
}

func (q *querier) UpdateUserProfile(ctx context.Context, arg database.UpdateUserProfileParams) (database.User, error) {
	leave, err := q.enter("UpdateUserProfile")
	if err != nil {
		return database.User{}, err
	}
	defer leave()
	user, ok := q.st.users[arg.UserName]
	if !ok {
		return database.User{}, pgx.ErrNoRows
	}
	user.FirstName = arg.FirstName
	user.LastName = arg.LastName
	user.CodeforcesHandle = arg.CodeforcesHandle
	user.LeetcodeHandle = arg.LeetcodeHandle
	q.st.users[arg.UserName] = user
	return user, nil
}

func (q *querier) UpdatePassword(ctx context.Context, arg database.UpdatePasswordParams) (int64, error) {
	leave, err := q.enter("UpdatePassword")
	if err != nil {
		return 0, err
	}
	defer leave()
	user, ok := q.st.users[arg.UserName]
	if !ok || user.PasswordHash == arg.PasswordHash {
		return 0, nil
	}
	user.PasswordHash = arg.PasswordHash
	q.st.users[arg.UserName] = user
	return 1, nil
}

func (q *querier) SetUserAdmin(ctx context.Context, arg database.SetUserAdminParams) (database.User, error) {
	leave, err := q.enter("SetUserAdmin")
	if err != nil {
		return database.User{}, err
	}
	defer leave()
	user, ok := q.st.users[arg.UserName]
	if !ok {
		return database.User{}, pgx.ErrNoRows
	}
	user.IsAdmin = arg.IsAdmin
	q.st.users[arg.UserName] = user
	return user, nil
}

// friends

func (q *querier) AddFriend(ctx context.Context, arg database.AddFriendParams) (database.Friend, error) {
	leave, err := q.enter("AddFriend")
	if err != nil {
		return database.Friend{}, err
	}
	defer leave()
	if _, ok := q.st.users[arg.UserName]; !ok {
		return database.Friend{}, foreignKeyViolation("fk_friends_user")
	}
	if _, ok := q.st.users[arg.FriendUserName]; !ok {
		return database.Friend{}, foreignKeyViolation("fk_friends_friend")
	}
	if _, ok := q.st.friends[arg]; ok {
		return database.Friend{}, pgx.ErrNoRows
	}
	friend := database.Friend{
		UserName:       arg.UserName,
		FriendUserName: arg.FriendUserName,
		CreatedAt:      q.db.now(),
	}
	q.st.friends[arg] = friend
	return friend, nil
}

func (q *querier) RemoveFriend(ctx context.Context, arg database.AddFriendParams) (database.Friend, error) {
	leave, err := q.enter("RemoveFriend")
	if err != nil {
		return database.Friend{}, err
	}
	defer leave()
	friend, ok := q.st.friends[arg]
	if !ok {
		return database.Friend{}, pgx.ErrNoRows
	}
	delete(q.st.friends, arg)
	return friend, nil
}

func (q *querier) ListFriends(ctx context.Context, userName string) ([]database.Friend, error) {
	leave, err := q.enter("ListFriends")
	if err != nil {
		return nil, err
	}
	defer leave()
	items := []database.Friend{}
	for k, f := range q.st.friends {
		if k.UserName == userName {
			items = append(items, f)
		}
	}
	slices.SortFunc(items, func(a, b database.Friend) int {
		return cmp.Compare(a.FriendUserName, b.FriendUserName)
	})
	return items, nil
}

// solved

func (q *querier) CreateSolved(ctx context.Context, arg database.UserQuestionParams) (database.Solved, error) {
	leave, err := q.enter("CreateSolved")
	if err != nil {
		return database.Solved{}, err
	}
	defer leave()
	if err := q.checkUserQuestion(arg, "fk_solved_user", "fk_solved_question"); err != nil {
		return database.Solved{}, err
	}
	if _, ok := q.st.solved[arg]; ok {
		return database.Solved{}, uniqueViolation("pk_solved")
	}
	solved := database.Solved{
		UserName:   arg.UserName,
		PlatformID: arg.PlatformID,
		QuestionID: arg.QuestionID,
		SolvedAt:   q.db.now(),
	}
	q.st.solved[arg] = solved
	return solved, nil
}

func (q *querier) GetSolved(ctx context.Context, arg database.UserQuestionParams) (database.Solved, error) {
	leave, err := q.enter("GetSolved")
	if err != nil {
		return database.Solved{}, err
	}
	defer leave()
	solved, ok := q.st.solved[arg]
	if !ok {
		return database.Solved{}, pgx.ErrNoRows
	}
	return solved, nil
}

func (q *querier) DeleteSolved(ctx context.Context, arg database.UserQuestionParams) (database.Solved, error) {
	leave, err := q.enter("DeleteSolved")
	if err != nil {
		return database.Solved{}, err
	}
	defer leave()
	solved, ok := q.st.solved[arg]
	if !ok {
		return database.Solved{}, pgx.ErrNoRows
	}
	delete(q.st.solved, arg)
	return solved, nil
}

func (q *querier) ListSolved(ctx context.Context, userName string) ([]database.Solved, error) {
	leave, err := q.enter("ListSolved")
	if err != nil {
		return nil, err
	}
	defer leave()
	items := []database.Solved{}
	for k, s := range q.st.solved {
		if k.UserName == userName {
			items = append(items, s)
		}
	}
	slices.SortFunc(items, func(a, b database.Solved) int { return b.SolvedAt.Compare(a.SolvedAt) })
	return items, nil
}

// dynamic problemset

func (q *querier) CountDynamicProblemset(ctx context.Context, userName string) (int64, error) {
	leave, err := q.enter("CountDynamicProblemset")
	if err != nil {
		return 0, err
	}
	defer leave()
	var count int64
	for k := range q.st.dynamic {
		if k.UserName == userName {
			count++
		}
	}
	return count, nil
}

// excluded reports whether key is already solved by or recommended to userName
func (q *querier) excluded(userName string, key database.QuestionKey) bool {
	k := database.UserQuestionParams{
		UserName:   userName,
		PlatformID: key.PlatformID,
		QuestionID: key.QuestionID,
	}
	_, solved := q.st.solved[k]
	_, recommended := q.st.dynamic[k]
	return solved || recommended
}

func (q *querier) ListFriendSolvedCandidates(ctx context.Context, arg database.CandidateParams) ([]database.QuestionKey, error) {
	leave, err := q.enter("ListFriendSolvedCandidates")
	if err != nil {
		return nil, err
	}
	defer leave()

	friends := make(map[string]bool)
	for k := range q.st.friends {
		if k.UserName == arg.UserName {
			friends[k.FriendUserName] = true
		}
	}

	latest := make(map[database.QuestionKey]time.Time)
	for k, s := range q.st.solved {
		if !friends[k.UserName] {
			continue
		}
		key := database.QuestionKey{PlatformID: k.PlatformID, QuestionID: k.QuestionID}
		if q.excluded(arg.UserName, key) {
			continue
		}
		if s.SolvedAt.After(latest[key]) {
			latest[key] = s.SolvedAt
		}
	}

	items := slices.Collect(maps.Keys(latest))
	slices.SortFunc(items, func(a, b database.QuestionKey) int {
		return cmp.Or(
			latest[b].Compare(latest[a]),
			cmp.Compare(a.PlatformID, b.PlatformID),
			cmp.Compare(a.QuestionID, b.QuestionID),
		)
	})
	return limit(items, arg.Limit), nil
}

func (q *querier) ListRandomCandidates(ctx context.Context, arg database.CandidateParams) ([]database.QuestionKey, error) {
	leave, err := q.enter("ListRandomCandidates")
	if err != nil {
		return nil, err
	}
	defer leave()
	items := []database.QuestionKey{}
	for key := range q.st.questions {
		if !q.excluded(arg.UserName, key) {
			items = append(items, key)
		}
	}
	rand.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
	return limit(items, arg.Limit), nil
}

func (q *querier) InsertDynamicProblemset(ctx context.Context, arg database.UserQuestionParams) (database.DynamicProblemset, error) {
	leave, err := q.enter("InsertDynamicProblemset")
	if err != nil {
		return database.DynamicProblemset{}, err
	}
	defer leave()
	if err := q.checkUserQuestion(arg, "fk_dynamic_problemset_user", "fk_dynamic_problemset_question"); err != nil {
		return database.DynamicProblemset{}, err
	}
	if _, ok := q.st.dynamic[arg]; ok {
		return database.DynamicProblemset{}, pgx.ErrNoRows
	}
	entry := database.DynamicProblemset{
		UserName:   arg.UserName,
		PlatformID: arg.PlatformID,
		QuestionID: arg.QuestionID,
		AddedAt:    q.db.now(),
	}
	q.st.dynamic[arg] = entry
	return entry, nil
}

func (q *querier) GetDynamicProblemset(ctx context.Context, arg database.UserQuestionParams) (database.DynamicProblemset, error) {
	leave, err := q.enter("GetDynamicProblemset")
	if err != nil {
		return database.DynamicProblemset{}, err
	}
	defer leave()
	entry, ok := q.st.dynamic[arg]
	if !ok {
		return database.DynamicProblemset{}, pgx.ErrNoRows
	}
	return entry, nil
}

func (q *querier) DeleteDynamicProblemset(ctx context.Context, arg database.UserQuestionParams) (database.DynamicProblemset, error) {
	leave, err := q.enter("DeleteDynamicProblemset")
	if err != nil {
		return database.DynamicProblemset{}, err
	}
	defer leave()
	entry, ok := q.st.dynamic[arg]
	if !ok {
		return database.DynamicProblemset{}, pgx.ErrNoRows
	}
	delete(q.st.dynamic, arg)
	return entry, nil
}

func (q *querier) ListDynamicProblemset(ctx context.Context, userName string) ([]database.DynamicProblemsetRow, error) {
	leave, err := q.enter("ListDynamicProblemset")
	if err != nil {
		return nil, err
	}
	defer leave()
	items := []database.DynamicProblemsetRow{}
	for k, entry := range q.st.dynamic {
		if k.UserName != userName {
			continue
		}
		question := q.st.questions[database.QuestionKey{PlatformID: k.PlatformID, QuestionID: k.QuestionID}]
		row := q.questionRow(question)
		items = append(items, database.DynamicProblemsetRow{
			UserName:   entry.UserName,
			PlatformID: entry.PlatformID,
			QuestionID: entry.QuestionID,
			AddedAt:    entry.AddedAt,
			Title:      row.Title,
			Link:       row.Link,
			Difficulty: row.Difficulty,
			Topics:     row.Topics,
			Companies:  row.Companies,
		})
	}
	slices.SortFunc(items, func(a, b database.DynamicProblemsetRow) int {
		return b.AddedAt.Compare(a.AddedAt)
	})
	return items, nil
}

// helpers

func (q *querier) checkUserQuestion(arg database.UserQuestionParams, userFK, questionFK string) error {
	if _, ok := q.st.users[arg.UserName]; !ok {
		return foreignKeyViolation(userFK)
	}
	key := database.QuestionKey{PlatformID: arg.PlatformID, QuestionID: arg.QuestionID}
	if _, ok := q.st.questions[key]; !ok {
		return foreignKeyViolation(questionFK)
	}
	return nil
}

func (q *querier) questionRow(question database.Question) database.QuestionRow {
	topicSet := make(map[string]struct{})
	for _, name := range question.Topics {
		topicSet[name] = struct{}{}
	}
	for link := range q.st.questionTopics {
		if link.PlatformID == question.PlatformID && link.QuestionID == question.QuestionID {
			topicSet[q.st.topics[link.TopicID].Name] = struct{}{}
		}
	}
	topics := slices.Sorted(maps.Keys(topicSet))

	companies := []string{}
	for link := range q.st.questionCompanies {
		if link.PlatformID == question.PlatformID && link.QuestionID == question.QuestionID {
			companies = append(companies, q.st.companies[link.CompanyID].Name)
		}
	}
	slices.Sort(companies)

	return database.QuestionRow{
		PlatformID: question.PlatformID,
		QuestionID: question.QuestionID,
		Title:      question.Title,
		Link:       question.Link,
		Difficulty: question.Difficulty,
		Topics:     topics,
		Companies:  companies,
		CreatedAt:  question.CreatedAt,
	}
}

func cloneStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return slices.Clone(s)
}

func limit[T any](items []T, n int32) []T {
	if n < 0 {
		n = 0
	}
	if len(items) > int(n) {
		return items[:n]
	}
	return items
}
