package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
	"github.com/tcp_snm/codetrack/internal/database/memdb"
	"github.com/tcp_snm/codetrack/internal/locks"
	"github.com/tcp_snm/codetrack/internal/service"
	"github.com/tcp_snm/codetrack/internal/service/auth_service"
	"github.com/tcp_snm/codetrack/internal/service/catalog_service"
	"github.com/tcp_snm/codetrack/internal/service/import_service"
	"github.com/tcp_snm/codetrack/internal/service/problemset_service"
	"github.com/tcp_snm/codetrack/internal/service/user_service"
	"github.com/tcp_snm/codetrack/internal/track_errors"
	"github.com/tcp_snm/codetrack/middleware"
)

var secret = []byte("test-secret")

func TestMain(m *testing.M) {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.SetLevel(logrus.WarnLevel)
	service.InitializeServices()
	os.Exit(m.Run())
}

func newTestApi(t *testing.T) (*Api, *memdb.DB) {
	t.Helper()
	db := memdb.New()
	catalog := &catalog_service.CatalogService{DB: db}
	return &Api{
		AuthServiceConfig:    &auth_service.AuthService{DB: db, JWTSecret: secret},
		UserServiceConfig:    user_service.NewUserService(db),
		CatalogServiceConfig: catalog,
		ImportServiceConfig:  &import_service.ImportService{DB: db, Catalog: catalog},
		ProblemsetServiceConfig: &problemset_service.ProblemsetService{
			DB:     db,
			Locker: locks.NewLocalLocker(),
		},
	}, db
}

func newTestServer(t *testing.T) (*httptest.Server, *memdb.DB) {
	t.Helper()
	a, db := newTestApi(t)
	auth := middleware.JWTMiddleware(secret)

	r := chi.NewRouter()
	r.Post("/v1/auth/signup", a.HandlerSignUp)
	r.Post("/v1/auth/login", a.HandlerLogin)
	r.Get("/v1/me", auth(a.HandlerGetMe))
	r.Get("/v1/questions", auth(a.HandlerGetQuestions))
	r.Post("/v1/questions", auth(a.HandlerCreateQuestion))
	r.Get("/v1/questions/{platform_id}/{question_id}", auth(a.HandlerGetQuestion))
	r.Post("/v1/questions/import", auth(a.HandlerImportQuestions))
	r.Post("/v1/companies", auth(a.HandlerCreateCompany))
	r.Put("/v1/users/{user_name}/admin", auth(a.HandlerSetAdmin))
	r.Post("/v1/problemset/refresh", auth(a.HandlerRefreshProblemset))

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, db
}

type client struct {
	t     *testing.T
	base  string
	token string
}

func (c *client) do(method, path string, body any) (*http.Response, []byte) {
	c.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			c.t.Fatalf("marshal: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, c.base+path, reader)
	if err != nil {
		c.t.Fatalf("request: %v", err)
	}
	return c.send(req)
}

func (c *client) send(req *http.Request) (*http.Response, []byte) {
	c.t.Helper()
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		c.t.Fatalf("%s %s: %v", req.Method, req.URL, err)
	}
	defer resp.Body.Close()
	var buf bytes.Buffer
	buf.ReadFrom(resp.Body)
	return resp, buf.Bytes()
}

func (c *client) signUpAndLogin(userName string) {
	c.t.Helper()
	resp, body := c.do(http.MethodPost, "/v1/auth/signup", map[string]string{
		"user_name":  userName,
		"first_name": "Test",
		"last_name":  "User",
		"password":   "password123",
		"email":      userName + "@example.com",
	})
	if resp.StatusCode != http.StatusCreated {
		c.t.Fatalf("signup: %d %s", resp.StatusCode, body)
	}

	resp, body = c.do(http.MethodPost, "/v1/auth/login", map[string]any{
		"user_name": userName,
		"password":  "password123",
	})
	if resp.StatusCode != http.StatusOK {
		c.t.Fatalf("login: %d %s", resp.StatusCode, body)
	}
	var login auth_service.UserLoginResponse
	if err := json.Unmarshal(body, &login); err != nil {
		c.t.Fatalf("decode login: %v", err)
	}
	var cookie bool
	for _, ck := range resp.Cookies() {
		if ck.Name == middleware.KeyJwtSessionCookieName && ck.Value == login.Token {
			cookie = true
		}
	}
	if !cookie {
		c.t.Errorf("expected the session cookie to be set")
	}
	c.token = login.Token
}

func TestAuthFlow(t *testing.T) {
	srv, _ := newTestServer(t)
	c := &client{t: t, base: srv.URL}

	resp, _ := c.do(http.MethodGet, "/v1/me", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.StatusCode)
	}

	c.signUpAndLogin("alice01")
	resp, body := c.do(http.MethodGet, "/v1/me", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("me: %d %s", resp.StatusCode, body)
	}
	var me user_service.Profile
	if err := json.Unmarshal(body, &me); err != nil || me.UserName != "alice01" {
		t.Errorf("unexpected profile %s, %v", body, err)
	}

	resp, _ = c.do(http.MethodPost, "/v1/auth/signup", map[string]string{
		"user_name": "alice01", "first_name": "A", "last_name": "B",
		"password": "password123", "email": "other@example.com",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409 for taken user_name, got %d", resp.StatusCode)
	}
}

func TestAdminOnlyMutations(t *testing.T) {
	srv, db := newTestServer(t)
	c := &client{t: t, base: srv.URL}
	c.signUpAndLogin("mallory")

	resp, _ := c.do(http.MethodPost, "/v1/companies", map[string]string{"name": "Google"})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for non admin, got %d", resp.StatusCode)
	}
	if n := db.Counts()["companies"]; n != 0 {
		t.Errorf("company created by non admin")
	}
}

func importSheet(t *testing.T, c *client, companyID int32, sheet string) (int, import_service.ImportSummary) {
	t.Helper()
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile("file", "google.csv")
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	part.Write([]byte(sheet))
	form.Close()

	req, err := http.NewRequest(http.MethodPost, fmt.Sprintf("%s/v1/questions/import?company_id=%d", c.base, companyID), &buf)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	resp, body := c.send(req)

	var summary import_service.ImportSummary
	if resp.StatusCode == http.StatusOK {
		if err := json.Unmarshal(body, &summary); err != nil {
			t.Fatalf("decode summary: %v", err)
		}
	}
	return resp.StatusCode, summary
}

func TestImportAndBrowse(t *testing.T) {
	srv, db := newTestServer(t)
	c := &client{t: t, base: srv.URL}
	c.signUpAndLogin("admin01")
	db.SetAdmin("admin01", true)

	resp, body := c.do(http.MethodPost, "/v1/companies", map[string]string{"name": "Google"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create company: %d %s", resp.StatusCode, body)
	}
	var company catalog_service.EntityResult[struct {
		ID int32 `json:"id"`
	}]
	json.Unmarshal(body, &company)

	resp, _ = c.do(http.MethodPost, "/v1/companies", map[string]string{"name": "Google"})
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 for existing company, got %d", resp.StatusCode)
	}

	sheet := "Difficulty,Title,Link,Topics\n" +
		`easy,Two Sum,https://x.com/problems/two-sum/,"Array,Hash Table"` + "\n" +
		",Missing Difficulty,https://x.com/problems/missing/,Array\n"

	status, summary := importSheet(t, c, company.Entity.ID, sheet)
	if status != http.StatusOK {
		t.Fatalf("import status %d", status)
	}
	if summary.SuccessCount != 1 || summary.FailedCount != 1 {
		t.Errorf("unexpected summary %+v", summary)
	}
	_, summary = importSheet(t, c, company.Entity.ID, sheet)
	if summary.SkippedCount != 1 || summary.SuccessCount != 0 {
		t.Errorf("unexpected re-import summary %+v", summary)
	}

	if status, _ = importSheet(t, c, 99, sheet); status != http.StatusNotFound {
		t.Errorf("expected 404 for unknown company, got %d", status)
	}

	resp, body = c.do(http.MethodGet, "/v1/questions/2/two-sum", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get question: %d %s", resp.StatusCode, body)
	}
	var q catalog_service.Question
	json.Unmarshal(body, &q)
	if q.Difficulty != "EASY" || len(q.Companies) != 1 || q.Companies[0] != "Google" {
		t.Errorf("unexpected question %+v", q)
	}

	resp, _ = c.do(http.MethodGet, "/v1/questions/2/three-sum", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for missing question, got %d", resp.StatusCode)
	}
	resp, _ = c.do(http.MethodGet, "/v1/questions/two/two-sum", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for bad platform id, got %d", resp.StatusCode)
	}

	resp, body = c.do(http.MethodGet, "/v1/questions?difficulty=easy&search=sum", nil)
	var list []catalog_service.Question
	if err := json.Unmarshal(body, &list); err != nil || len(list) != 1 {
		t.Errorf("unexpected list %s, %v", body, err)
	}

	resp, body = c.do(http.MethodPost, "/v1/problemset/refresh", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("refresh: %d %s", resp.StatusCode, body)
	}
	var refresh problemset_service.RefreshResult
	json.Unmarshal(body, &refresh)
	if !refresh.Refreshed || refresh.Added != 1 || refresh.Count != 1 {
		t.Errorf("unexpected refresh %+v", refresh)
	}
}

func TestImportInterruptedReportsPartialSummary(t *testing.T) {
	a, db := newTestApi(t)
	ctx := context.Background()
	if _, err := a.AuthServiceConfig.SignUp(ctx, auth_service.UserRegistration{
		UserName: "admin01", FirstName: "A", LastName: "B",
		Password: "password123", Email: "admin01@example.com",
	}); err != nil {
		t.Fatalf("signup: %v", err)
	}
	db.SetAdmin("admin01", true)
	company, err := db.CreateCompany(ctx, "Google")
	if err != nil {
		t.Fatalf("company: %v", err)
	}

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, _ := form.CreateFormFile("file", "google.csv")
	part.Write([]byte("Difficulty,Title,Link,Topics\nEASY,Two Sum,https://x.com/problems/two-sum/,Array\n"))
	form.Close()

	// the client went away before the first row
	reqCtx, cancel := context.WithCancel(service.WithClaims(ctx, service.UserCredentialClaims{UserName: "admin01"}))
	cancel()
	r := httptest.NewRequest(
		http.MethodPost, fmt.Sprintf("/v1/questions/import?company_id=%d", company.ID), &buf,
	).WithContext(reqCtx)
	r.Header.Set("Content-Type", form.FormDataContentType())
	w := httptest.NewRecorder()
	a.HandlerImportQuestions(w, r)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d %s", w.Code, w.Body.String())
	}
	var body interruptedImport
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Summary.SuccessCount != 0 || !strings.Contains(body.Error, "row 1") {
		t.Errorf("unexpected body %+v", body)
	}
}

func TestSetAdminRoute(t *testing.T) {
	srv, db := newTestServer(t)
	admin := &client{t: t, base: srv.URL}
	admin.signUpAndLogin("admin01")
	db.SetAdmin("admin01", true)
	bob := &client{t: t, base: srv.URL}
	bob.signUpAndLogin("bob0001")

	resp, _ := bob.do(http.MethodPut, "/v1/users/admin01/admin", map[string]bool{"is_admin": false})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for non admin, got %d", resp.StatusCode)
	}

	resp, body := admin.do(http.MethodPut, "/v1/users/bob0001/admin", map[string]bool{"is_admin": true})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("promote: %d %s", resp.StatusCode, body)
	}
	// bob's earlier denial was cached, the promotion must still be seen
	resp, _ = bob.do(http.MethodPost, "/v1/companies", map[string]string{"name": "Google"})
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("expected promoted user to create a company, got %d", resp.StatusCode)
	}

	resp, _ = admin.do(http.MethodPut, "/v1/users/ghost01/admin", map[string]bool{"is_admin": true})
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for unknown user, got %d", resp.StatusCode)
	}
}

func TestHandlerErrorStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("%w, x", track_errors.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("%w, x", track_errors.ErrInvalidRequest), http.StatusBadRequest},
		{fmt.Errorf("%w, x", track_errors.ErrEntityAlreadyExist), http.StatusConflict},
		{track_errors.ErrLockNotAcquired, http.StatusConflict},
		{track_errors.ErrUnAuthorized, http.StatusForbidden},
		{track_errors.ErrInvalidUserCredentials, http.StatusUnauthorized},
		{track_errors.ErrPasswordUnchanged, http.StatusBadRequest},
		{fmt.Errorf("%w, x", track_errors.ErrInterrupted), http.StatusServiceUnavailable},
		{errors.New("pool closed"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		handlerError(tt.err, w)
		if w.Code != tt.status {
			t.Errorf("%v: got %d, want %d", tt.err, w.Code, tt.status)
		}
	}

	w := httptest.NewRecorder()
	handlerError(errors.New("pool closed"), w)
	if strings.Contains(w.Body.String(), "pool closed") {
		t.Errorf("internal error leaked: %s", w.Body.String())
	}
}

func TestClaimsRequired(t *testing.T) {
	a := &Api{}
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/v1/friends", nil).WithContext(context.Background())
	a.HandlerGetFriends(w, r)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 without claims, got %d", w.Code)
	}
}
