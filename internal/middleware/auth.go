package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dicoslang/backoffice/internal/models"
	"github.com/dicoslang/backoffice/internal/services"
)

type contextKey string

const (
	UserIDKey contextKey = "userID"
	UserKey   contextKey = "user"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Identity is what a verified bearer token says about its holder.
type Identity struct {
	UserID string
	Email  string
}

// TokenVerifier checks a bearer token.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*Identity, error)
}

// JWTVerifier accepts HS256 tokens issued by IssueToken.
type JWTVerifier struct {
	Secret string
}

func (v JWTVerifier) VerifyToken(ctx context.Context, tokenString string) (*Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(v.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return nil, ErrInvalidToken
	}
	email, _ := claims["email"].(string)
	return &Identity{UserID: userID, Email: email}, nil
}

// IssueToken signs an HS256 token for a back-office user.
func IssueToken(secret string, u *models.User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": u.ID,
		"email":   u.Email,
		"role":    string(u.Role),
		"exp":     now.Add(ttl).Unix(),
		"iat":     now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// MultiVerifier tries each verifier in turn; the first success wins.
type MultiVerifier []TokenVerifier

func (m MultiVerifier) VerifyToken(ctx context.Context, token string) (*Identity, error) {
	for _, v := range m {
		if v == nil {
			continue
		}
		if id, err := v.VerifyToken(ctx, token); err == nil {
			return id, nil
		}
	}
	return nil, ErrInvalidToken
}

// Authenticate verifies the bearer token and loads the caller's user document
// into the request context.
func Authenticate(verifier TokenVerifier, users services.UserService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Authorization header required"))
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Invalid authorization header format"))
				return
			}

			id, err := verifier.VerifyToken(r.Context(), parts[1])
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Invalid or expired token"))
				return
			}

			user, err := lookupUser(r.Context(), users, id)
			if err != nil {
				if !errors.Is(err, services.ErrUserNotFound) {
					log.Printf("[Authenticate] user=%s err=%v", id.UserID, err)
				}
				writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unknown user"))
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, user.ID)
			ctx = context.WithValue(ctx, UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// lookupUser resolves by id, then by email for Firebase accounts whose uid
// is not the document id.
func lookupUser(ctx context.Context, users services.UserService, id *Identity) (*models.User, error) {
	user, err := users.GetByID(ctx, id.UserID)
	if errors.Is(err, services.ErrUserNotFound) && id.Email != "" {
		return users.GetByEmail(ctx, id.Email)
	}
	return user, err
}

// RequireRole lets through active staff holding one of roles.
func RequireRole(roles ...models.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := GetUser(r.Context())
			if user == nil {
				writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
				return
			}
			if user.Status == models.UserStatusBanned || user.Status == models.UserStatusInactive {
				writeJSON(w, http.StatusForbidden, models.NewErrorResponse("Account disabled"))
				return
			}
			for _, role := range roles {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeJSON(w, http.StatusForbidden, models.NewErrorResponse("Insufficient permissions"))
		})
	}
}

// GetUserID extracts user ID from context
func GetUserID(ctx context.Context) string {
	userID, ok := ctx.Value(UserIDKey).(string)
	if !ok {
		return ""
	}
	return userID
}

// GetUser returns the authenticated user, or nil.
func GetUser(ctx context.Context) *models.User {
	u, _ := ctx.Value(UserKey).(*models.User)
	return u
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
