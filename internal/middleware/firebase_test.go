package middleware

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dicoslang/backoffice/internal/models"
	"github.com/dicoslang/backoffice/internal/services"
)

func TestFirebaseIdentityEmailVerification(t *testing.T) {
	tests := []struct {
		name   string
		claims map[string]interface{}
		want   string
	}{
		{"verified", map[string]interface{}{"email": "boss@exemple.com", "email_verified": true}, "boss@exemple.com"},
		{"unverified", map[string]interface{}{"email": "boss@exemple.com", "email_verified": false}, ""},
		{"claim missing", map[string]interface{}{"email": "boss@exemple.com"}, ""},
		{"claim not a bool", map[string]interface{}{"email": "boss@exemple.com", "email_verified": "true"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := firebaseIdentity("firebase-uid", tt.claims)
			assert.Equal(t, "firebase-uid", id.UserID)
			assert.Equal(t, tt.want, id.Email)
		})
	}
}

func TestUnverifiedFirebaseEmailIsRejected(t *testing.T) {
	users := services.NewMemoryUserService()
	saveUser(t, users, &models.User{Username: "boss", Email: "boss@exemple.com", Role: models.RoleAdmin})

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	handler := func(claims map[string]interface{}) http.Handler {
		verifier := stubVerifier{id: firebaseIdentity("other-uid", claims)}
		return Authenticate(verifier, users)(RequireRole(models.RoleAdmin)(ok))
	}

	unverified := map[string]interface{}{"email": "boss@exemple.com", "email_verified": false}
	assert.Equal(t, http.StatusUnauthorized, call(t, handler(unverified), "Bearer firebase-token").Code)

	verified := map[string]interface{}{"email": "boss@exemple.com", "email_verified": true}
	assert.Equal(t, http.StatusOK, call(t, handler(verified), "Bearer firebase-token").Code)
}
