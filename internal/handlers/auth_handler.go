package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/dicoslang/backoffice/internal/middleware"
	"github.com/dicoslang/backoffice/internal/models"
	"github.com/dicoslang/backoffice/internal/services"
)

type AuthHandler struct {
	users         services.UserService
	jwtSecret     string
	jwtExpiration time.Duration
}

func NewAuthHandler(users services.UserService, jwtSecret string, jwtExpiration time.Duration) *AuthHandler {
	return &AuthHandler{
		users:         users,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// Login checks a staff password and issues a local token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !validate(w, "Login", req.Validate()) {
		return
	}

	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	user, err := h.users.GetByEmail(ctx, req.Email)
	if err == nil {
		err = services.CheckPassword(user, req.Password)
	}
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) || errors.Is(err, services.ErrInvalidPassword) {
			writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Invalid email or password"))
			return
		}
		log.Printf("[Login] email=%s err=%v", req.Email, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Login failed"))
		return
	}

	if !user.IsStaff() || user.Status == models.UserStatusBanned || user.Status == models.UserStatusInactive {
		writeJSON(w, http.StatusForbidden, models.NewErrorResponse("Back-office access denied"))
		return
	}

	token, err := middleware.IssueToken(h.jwtSecret, user, h.jwtExpiration)
	if err != nil {
		log.Printf("[Login] sign token user=%s err=%v", user.ID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to generate token"))
		return
	}
	if err := h.users.TouchLastLogin(ctx, user.ID); err != nil {
		log.Printf("[Login] last login user=%s err=%v", user.ID, err)
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(models.AuthResponse{
		Token: token,
		User:  *user,
	}))
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	if user == nil {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(user))
}
