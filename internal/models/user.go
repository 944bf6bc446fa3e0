package models

import (
	"net/mail"
	"strings"
	"time"
)

type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
	UserStatusBanned   UserStatus = "banned"
	UserStatusVisitor  UserStatus = "visitor"
)

// Valid reports whether s is one of the known user statuses.
func (s UserStatus) Valid() bool {
	switch s {
	case UserStatusActive, UserStatusInactive, UserStatusBanned, UserStatusVisitor:
		return true
	}
	return false
}

type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleEditor UserRole = "editor"
	RoleUser   UserRole = "user"
)

func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleEditor || r == RoleUser
}

// WarningBanThreshold is the warning count at which a user is banned.
const WarningBanThreshold = 2

const (
	DefaultWarningReason = "Contenu inapproprié"
	DefaultBanReason     = "Violation des règles de la communauté"
	DefaultBannedReason  = "Compte banni"
)

// User is a dictionary member or staff account. Field names follow the
// documents already stored by the mobile app.
type User struct {
	ID           string     `json:"id" bson:"_id"`
	Username     string     `json:"pseudo" bson:"pseudo"`
	FirstName    string     `json:"prenom" bson:"prenom"`
	BirthYear    int        `json:"age" bson:"age"`
	City         string     `json:"ville" bson:"ville"`
	Email        string     `json:"email" bson:"email"`
	Status       UserStatus `json:"status" bson:"status"`
	Role         UserRole   `json:"role" bson:"role"`
	Favorites    []string   `json:"favoris" bson:"favoris"`
	Warnings     int        `json:"warnings" bson:"warnings"`
	BanReason    string     `json:"banReason" bson:"banReason"`
	PasswordHash string     `json:"-" bson:"passwordHash,omitempty"`
	LastLogin    *time.Time `json:"lastLogin,omitempty" bson:"lastLogin,omitempty"`
	CreatedAt    time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// IsStaff reports whether the user may use the back-office at all.
func (u *User) IsStaff() bool {
	return u.Role == RoleAdmin || u.Role == RoleEditor
}

// UserSummary is a user row enriched with activity counts for the users table.
type UserSummary struct {
	User
	CommentsCount    int `json:"commentsCount"`
	SuggestionsCount int `json:"suggestionsCount"`
	VotesCount       int `json:"votesCount"`
}

type SaveUserRequest struct {
	Username  string     `json:"pseudo"`
	FirstName string     `json:"prenom"`
	BirthYear int        `json:"age"`
	City      string     `json:"ville"`
	Email     string     `json:"email"`
	Status    UserStatus `json:"status"`
	Role      UserRole   `json:"role"`
}

func (r *SaveUserRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if strings.TrimSpace(r.Username) == "" {
		errors["pseudo"] = "Pseudo is required"
	}
	if r.Email == "" {
		errors["email"] = "Email is required"
	} else if _, err := mail.ParseAddress(r.Email); err != nil {
		errors["email"] = "Email is invalid"
	}
	if r.BirthYear != 0 && (r.BirthYear < 1900 || r.BirthYear > time.Now().Year()) {
		errors["age"] = "Birth year is out of range"
	}
	if r.Status != "" && !r.Status.Valid() {
		errors["status"] = "Unknown status"
	}
	if r.Role != "" && !r.Role.Valid() {
		errors["role"] = "Unknown role"
	}

	return errors
}

// Apply copies the request onto u. An empty status or role keeps the stored
// value; new users default to active and user.
func (r *SaveUserRequest) Apply(u *User) {
	u.Username = strings.TrimSpace(r.Username)
	u.FirstName = strings.TrimSpace(r.FirstName)
	u.BirthYear = r.BirthYear
	u.City = strings.TrimSpace(r.City)
	u.Email = strings.TrimSpace(r.Email)
	if r.Status != "" {
		u.Status = r.Status
		if r.Status != UserStatusBanned {
			u.BanReason = ""
		}
	} else if u.Status == "" {
		u.Status = UserStatusActive
	}
	if r.Role != "" {
		u.Role = r.Role
	} else if u.Role == "" {
		u.Role = RoleUser
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type ReasonRequest struct {
	Reason string `json:"reason"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

func (r *LoginRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Email == "" {
		errors["email"] = "Email is required"
	}
	if r.Password == "" {
		errors["password"] = "Password is required"
	}

	return errors
}

// BanCheck is the answer to "is this email or pseudo banned".
type BanCheck struct {
	Banned bool   `json:"banned"`
	Reason string `json:"reason,omitempty"`
}
