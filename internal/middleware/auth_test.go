package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dicoslang/backoffice/internal/models"
	"github.com/dicoslang/backoffice/internal/services"
)

const testSecret = "test-secret"

func saveUser(t *testing.T, users services.UserService, u *models.User) *models.User {
	t.Helper()
	saved, err := users.Save(context.Background(), u)
	require.NoError(t, err)
	return saved
}

func protected(users services.UserService, roles ...models.UserRole) http.Handler {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-User", GetUserID(r.Context()))
		w.WriteHeader(http.StatusOK)
	})
	return Authenticate(JWTVerifier{Secret: testSecret}, users)(RequireRole(roles...)(ok))
}

func call(t *testing.T, h http.Handler, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/words", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func bearer(t *testing.T, u *models.User) string {
	t.Helper()
	token, err := IssueToken(testSecret, u, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestAuthenticate(t *testing.T) {
	users := services.NewMemoryUserService()
	admin := saveUser(t, users, &models.User{Username: "admin", Email: "admin@exemple.com", Role: models.RoleAdmin})
	h := protected(users, models.RoleAdmin)

	rec := call(t, h, bearer(t, admin))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, admin.ID, rec.Header().Get("X-User"))

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic abc"},
		{"garbage token", "Bearer not-a-token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, http.StatusUnauthorized, call(t, h, tt.header).Code)
		})
	}
}

func TestAuthenticateRejectsForeignSecret(t *testing.T) {
	users := services.NewMemoryUserService()
	admin := saveUser(t, users, &models.User{Username: "admin", Email: "admin@exemple.com", Role: models.RoleAdmin})

	token, err := IssueToken("other-secret", admin, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, call(t, protected(users, models.RoleAdmin), "Bearer "+token).Code)
}

func TestAuthenticateExpiredToken(t *testing.T) {
	users := services.NewMemoryUserService()
	admin := saveUser(t, users, &models.User{Username: "admin", Email: "admin@exemple.com", Role: models.RoleAdmin})

	token, err := IssueToken(testSecret, admin, -time.Minute)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, call(t, protected(users, models.RoleAdmin), "Bearer "+token).Code)
}

func TestAuthenticateUnknownUser(t *testing.T) {
	users := services.NewMemoryUserService()
	ghost := &models.User{ID: "ghost", Email: "ghost@exemple.com", Role: models.RoleAdmin}

	assert.Equal(t, http.StatusUnauthorized, call(t, protected(users, models.RoleAdmin), bearer(t, ghost)).Code)
}

func TestAuthenticateFallsBackToEmail(t *testing.T) {
	users := services.NewMemoryUserService()
	stored := saveUser(t, users, &models.User{Username: "editor", Email: "editor@exemple.com", Role: models.RoleEditor})

	firebaseUID := &models.User{ID: "firebase-uid", Email: stored.Email}
	rec := call(t, protected(users, models.RoleEditor), bearer(t, firebaseUID))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, stored.ID, rec.Header().Get("X-User"))
}

func TestRequireRole(t *testing.T) {
	users := services.NewMemoryUserService()
	editor := saveUser(t, users, &models.User{Username: "editor", Email: "editor@exemple.com", Role: models.RoleEditor})
	member := saveUser(t, users, &models.User{Username: "member", Email: "member@exemple.com", Role: models.RoleUser})
	bannedAdmin := saveUser(t, users, &models.User{
		Username: "banned", Email: "banned@exemple.com", Role: models.RoleAdmin, Status: models.UserStatusBanned,
	})
	inactiveAdmin := saveUser(t, users, &models.User{
		Username: "inactive", Email: "inactive@exemple.com", Role: models.RoleAdmin, Status: models.UserStatusInactive,
	})

	staff := protected(users, models.RoleAdmin, models.RoleEditor)
	adminOnly := protected(users, models.RoleAdmin)

	assert.Equal(t, http.StatusOK, call(t, staff, bearer(t, editor)).Code)
	assert.Equal(t, http.StatusForbidden, call(t, adminOnly, bearer(t, editor)).Code)
	assert.Equal(t, http.StatusForbidden, call(t, staff, bearer(t, member)).Code)
	assert.Equal(t, http.StatusForbidden, call(t, staff, bearer(t, bannedAdmin)).Code)
	assert.Equal(t, http.StatusForbidden, call(t, staff, bearer(t, inactiveAdmin)).Code)
}

type stubVerifier struct {
	id  *Identity
	err error
}

func (s stubVerifier) VerifyToken(ctx context.Context, token string) (*Identity, error) {
	return s.id, s.err
}

func TestMultiVerifier(t *testing.T) {
	ctx := context.Background()
	want := &Identity{UserID: "u1"}

	m := MultiVerifier{nil, stubVerifier{err: ErrInvalidToken}, stubVerifier{id: want}}
	got, err := m.VerifyToken(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = MultiVerifier{stubVerifier{err: ErrInvalidToken}}.VerifyToken(ctx, "token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGetUserEmptyContext(t *testing.T) {
	assert.Empty(t, GetUserID(context.Background()))
	assert.Nil(t, GetUser(context.Background()))
}
