package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dicoslang/backoffice/internal/middleware"
	"github.com/dicoslang/backoffice/internal/models"
	"github.com/dicoslang/backoffice/internal/services"
)

const testSecret = "handlers-test-secret"

type envelope struct {
	Success bool              `json:"success"`
	Data    json.RawMessage   `json:"data"`
	Error   string            `json:"error"`
	Errors  map[string]string `json:"errors"`
}

type apiFixture struct {
	t      *testing.T
	store  *services.Store
	router http.Handler
	admin  *models.User
	editor *models.User
	member *models.User
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	store := services.NewMemoryStore()
	router := NewRouter(RouterConfig{
		Store:          store,
		Verifier:       middleware.JWTVerifier{Secret: testSecret},
		JWTSecret:      testSecret,
		JWTExpiration:  time.Hour,
		AllowedOrigins: []string{"http://localhost:3000"},
	})
	f := &apiFixture{t: t, store: store, router: router}
	f.admin = f.user("admin", models.RoleAdmin, "motdepasse-admin")
	f.editor = f.user("editor", models.RoleEditor, "")
	f.member = f.user("membre", models.RoleUser, "motdepasse-membre")
	return f
}

func (f *apiFixture) user(pseudo string, role models.UserRole, password string) *models.User {
	f.t.Helper()
	u := &models.User{Username: pseudo, Email: pseudo + "@exemple.com", Role: role}
	if password != "" {
		hash, err := services.HashPassword(password)
		require.NoError(f.t, err)
		u.PasswordHash = hash
	}
	saved, err := f.store.Users.Save(context.Background(), u)
	require.NoError(f.t, err)
	return saved
}

func (f *apiFixture) word(text string, status models.WordStatus) *models.Word {
	f.t.Helper()
	w, err := f.store.Words.Save(context.Background(), &models.Word{Text: text, Definition: "déf", Status: status})
	require.NoError(f.t, err)
	return w
}

// do sends a request as u (nil for anonymous) and decodes the envelope.
func (f *apiFixture) do(u *models.User, method, path string, body interface{}) (int, envelope) {
	f.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(f.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if u != nil {
		token, err := middleware.IssueToken(testSecret, u, time.Hour)
		require.NoError(f.t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	var env envelope
	if rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(f.t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec.Code, env
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

func TestHealthAndMetrics(t *testing.T) {
	f := newAPIFixture(t)

	for _, path := range []string{"/health", "/metrics"} {
		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestLogin(t *testing.T) {
	f := newAPIFixture(t)

	code, env := f.do(nil, http.MethodPost, "/api/auth/login", models.LoginRequest{
		Email: "admin@exemple.com", Password: "motdepasse-admin",
	})
	require.Equal(t, http.StatusOK, code)
	auth := decodeData[models.AuthResponse](t, env)
	assert.NotEmpty(t, auth.Token)
	assert.Equal(t, f.admin.ID, auth.User.ID)

	stored, err := f.store.Users.GetByID(context.Background(), f.admin.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored.LastLogin)

	code, _ = f.do(nil, http.MethodPost, "/api/auth/login", models.LoginRequest{
		Email: "admin@exemple.com", Password: "faux",
	})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = f.do(nil, http.MethodPost, "/api/auth/login", models.LoginRequest{
		Email: "membre@exemple.com", Password: "motdepasse-membre",
	})
	assert.Equal(t, http.StatusForbidden, code)

	code, env = f.do(nil, http.MethodPost, "/api/auth/login", models.LoginRequest{})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, env.Errors, "email")
	assert.Contains(t, env.Errors, "password")
}

func TestRoleGates(t *testing.T) {
	f := newAPIFixture(t)

	code, _ := f.do(nil, http.MethodGet, "/api/words", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = f.do(f.member, http.MethodGet, "/api/words", nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = f.do(f.editor, http.MethodGet, "/api/words", nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = f.do(f.editor, http.MethodGet, "/api/users", nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, env := f.do(f.admin, http.MethodGet, "/api/users", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, decodeData[[]models.UserSummary](t, env), 3)

	code, env = f.do(f.editor, http.MethodGet, "/api/auth/me", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, f.editor.ID, decodeData[models.User](t, env).ID)
}

func TestWordEndpoints(t *testing.T) {
	f := newAPIFixture(t)

	code, env := f.do(f.editor, http.MethodPost, "/api/words", models.SaveWordRequest{Text: "wesh"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, env.Errors, "definition")

	code, env = f.do(f.editor, http.MethodPost, "/api/words", models.SaveWordRequest{
		Text: "wesh", Definition: "salut", Status: models.WordStatusActive,
	})
	require.Equal(t, http.StatusCreated, code)
	created := decodeData[models.Word](t, env)
	assert.Equal(t, f.editor.ID, created.CreatedBy)

	code, env = f.do(f.editor, http.MethodGet, "/api/words?status=active", nil)
	require.Equal(t, http.StatusOK, code)
	rows := decodeData[[]models.WordWithAuthor](t, env)
	require.Len(t, rows, 1)
	assert.Equal(t, "editor", rows[0].AuthorName)

	code, env = f.do(f.editor, http.MethodGet, "/api/words/search?q=we", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decodeData[[]models.Word](t, env), 1)

	code, _ = f.do(f.editor, http.MethodPost, "/api/words/"+created.ID+"/view", nil)
	assert.Equal(t, http.StatusOK, code)
	stored, err := f.store.Words.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.ViewsCount)

	code, _ = f.do(f.editor, http.MethodGet, "/api/words/missing", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = f.do(f.editor, http.MethodGet, "/api/words?status=archived", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestModerationFlow(t *testing.T) {
	f := newAPIFixture(t)
	word := f.word("wesh", models.WordStatusActive)
	author := f.user("auteur", models.RoleUser, "")

	report := func(text string) models.CommentReport {
		code, env := f.do(f.admin, http.MethodPost, "/api/comments", models.CreateCommentRequest{
			WordID: word.ID, UserID: author.ID, Text: text,
		})
		require.Equal(t, http.StatusCreated, code)
		c := decodeData[models.Comment](t, env)

		code, env = f.do(f.admin, http.MethodPost, "/api/comments/"+c.ID+"/report", models.ReportCommentRequest{
			ReporterID: f.member.ID, Reason: "insulte",
		})
		require.Equal(t, http.StatusCreated, code)
		return decodeData[models.CommentReport](t, env)
	}

	first := report("un")
	second := report("deux")

	code, env := f.do(f.admin, http.MethodGet, "/api/moderation/reports", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decodeData[[]models.ReportView](t, env), 2)

	code, env = f.do(f.admin, http.MethodPost, "/api/moderation/reports/"+first.ID+"/block-warn", nil)
	require.Equal(t, http.StatusOK, code)
	outcome := decodeData[models.WarnOutcome](t, env)
	assert.Equal(t, 1, outcome.Warnings)
	assert.False(t, outcome.Banned)

	code, _ = f.do(f.admin, http.MethodPost, "/api/moderation/reports/"+first.ID+"/block-warn", nil)
	assert.Equal(t, http.StatusConflict, code)

	code, env = f.do(f.admin, http.MethodPost, "/api/moderation/reports/"+second.ID+"/block-warn",
		models.ReasonRequest{Reason: "Récidive"})
	require.Equal(t, http.StatusOK, code)
	outcome = decodeData[models.WarnOutcome](t, env)
	assert.Equal(t, 2, outcome.Warnings)
	assert.True(t, outcome.Banned)

	code, env = f.do(f.admin, http.MethodGet, "/api/users/banned-check?pseudo=auteur", nil)
	require.Equal(t, http.StatusOK, code)
	check := decodeData[models.BanCheck](t, env)
	assert.True(t, check.Banned)
	assert.Equal(t, "Récidive", check.Reason)

	code, _ = f.do(f.admin, http.MethodPost, "/api/users/"+author.ID+"/unban", nil)
	require.Equal(t, http.StatusOK, code)
	stored, err := f.store.Users.GetByID(context.Background(), author.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusActive, stored.Status)
	assert.Empty(t, stored.BanReason)

	code, _ = f.do(f.admin, http.MethodPost, "/api/moderation/reports/missing/dismiss", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestSuggestionEndpoints(t *testing.T) {
	f := newAPIFixture(t)

	code, env := f.do(f.editor, http.MethodPost, "/api/suggestions", models.CreateSuggestionRequest{
		UserID: f.member.ID, Text: "chelou", Definition: "bizarre",
	})
	require.Equal(t, http.StatusCreated, code)
	sg := decodeData[models.Suggestion](t, env)

	code, env = f.do(f.editor, http.MethodPost, "/api/suggestions/"+sg.ID+"/approve", models.ReviewRequest{Note: "ok"})
	require.Equal(t, http.StatusOK, code)
	result := decodeData[models.ApprovalResult](t, env)
	assert.Equal(t, models.WordStatusPending, result.Word.Status)
	assert.Equal(t, f.editor.ID, result.Suggestion.ReviewedBy)

	code, _ = f.do(f.editor, http.MethodPost, "/api/suggestions/"+sg.ID+"/reject", nil)
	assert.Equal(t, http.StatusConflict, code)

	code, env = f.do(f.editor, http.MethodGet, "/api/suggestions/stats", nil)
	require.Equal(t, http.StatusOK, code)
	stats := decodeData[models.SuggestionStats](t, env)
	assert.Equal(t, 1, stats.Approved)
	assert.InDelta(t, 100.0, stats.ApprovalRate, 0.001)
}

func TestVoteEndpoints(t *testing.T) {
	f := newAPIFixture(t)
	word := f.word("daron", models.WordStatusActive)

	code, env := f.do(f.admin, http.MethodPost, "/api/votes", models.CastVoteRequest{
		UserID: f.member.ID, WordID: word.ID, Value: models.VoteLike,
	})
	require.Equal(t, http.StatusOK, code)
	vote := decodeData[models.Vote](t, env)

	code, _ = f.do(f.admin, http.MethodPost, "/api/votes", models.CastVoteRequest{
		UserID: f.member.ID, WordID: word.ID, Value: 3,
	})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = f.do(f.admin, http.MethodGet, "/api/votes", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = f.do(f.admin, http.MethodGet, "/api/votes?wordId="+word.ID, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decodeData[[]models.Vote](t, env), 1)

	code, _ = f.do(f.admin, http.MethodDelete, "/api/votes/"+vote.ID, nil)
	require.Equal(t, http.StatusOK, code)
	stored, err := f.store.Words.GetByID(context.Background(), word.ID)
	require.NoError(t, err)
	assert.Zero(t, stored.LikesCount)
}

func TestDeleteAccountEndpoint(t *testing.T) {
	f := newAPIFixture(t)

	code, _ := f.do(f.admin, http.MethodDelete, "/api/users/"+f.admin.ID, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, env := f.do(f.admin, http.MethodDelete, "/api/users/"+f.member.ID, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, f.member.ID, decodeData[models.AccountDeletion](t, env).UserID)

	code, _ = f.do(f.admin, http.MethodGet, "/api/users/"+f.member.ID, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestWordOfTheDayEndpoint(t *testing.T) {
	f := newAPIFixture(t)

	code, _ := f.do(f.editor, http.MethodGet, "/api/word-of-the-day", nil)
	assert.Equal(t, http.StatusNotFound, code)

	word := f.word("wesh", models.WordStatusActive)
	code, env := f.do(f.editor, http.MethodGet, "/api/word-of-the-day", nil)
	require.Equal(t, http.StatusOK, code)
	pick := decodeData[models.WordOfTheDay](t, env)
	assert.Equal(t, word.ID, pick.WordID)
	require.NotNil(t, pick.Word)

	code, _ = f.do(f.editor, http.MethodPost, "/api/word-of-the-day/rotate", nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestDashboardEndpoint(t *testing.T) {
	f := newAPIFixture(t)
	f.word("wesh", models.WordStatusActive)

	code, env := f.do(f.admin, http.MethodGet, "/api/stats?days=7", nil)
	require.Equal(t, http.StatusOK, code)
	stats := decodeData[models.DashboardStats](t, env)
	assert.Equal(t, 3, stats.TotalUsers)
	assert.Equal(t, 1, stats.ActiveWords)
}

func TestUpdateUserKeepsBanAndRole(t *testing.T) {
	f := newAPIFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.Users.Ban(ctx, f.member.ID, "spam"))

	code, env := f.do(f.admin, http.MethodPut, "/api/users/"+f.member.ID, models.SaveUserRequest{
		Username: "membre", Email: "membre@exemple.com", City: "Marseille",
	})
	require.Equal(t, http.StatusOK, code)
	updated := decodeData[models.User](t, env)
	assert.Equal(t, "Marseille", updated.City)
	assert.Equal(t, models.UserStatusBanned, updated.Status)
	assert.Equal(t, "spam", updated.BanReason)

	code, _ = f.do(f.admin, http.MethodPut, "/api/users/"+f.admin.ID, models.SaveUserRequest{
		Username: "admin", Email: "admin@exemple.com", City: "Lille",
	})
	require.Equal(t, http.StatusOK, code)
	code, _ = f.do(f.admin, http.MethodGet, "/api/users", nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestBlockAndWarnAcceptsEmptyChunkedBody(t *testing.T) {
	f := newAPIFixture(t)
	ctx := context.Background()
	word := f.word("wesh", models.WordStatusActive)
	comment, err := f.store.Comments.Create(ctx, &models.Comment{WordID: word.ID, UserID: f.member.ID, Text: "un"})
	require.NoError(t, err)
	report, err := services.NewModerationService(f.store).ReportComment(ctx, comment.ID,
		&models.ReportCommentRequest{ReporterID: f.editor.ID})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/moderation/reports/"+report.ID+"/block-warn", nil)
	req.Body = io.NopCloser(strings.NewReader(""))
	req.ContentLength = -1
	token, err := middleware.IssueToken(testSecret, f.admin, time.Hour)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	code, _ := f.do(f.admin, http.MethodPost, "/api/users/"+f.member.ID+"/ban", nil)
	assert.Equal(t, http.StatusOK, code)
}
