package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dicoslang/backoffice/internal/models"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidPassword = errors.New("invalid password")
	ErrInvalidStatus   = errors.New("invalid status")
)

// UserService is the accessor for the users collection.
type UserService interface {
	// Save creates the user when ID is empty, otherwise replaces the document.
	Save(ctx context.Context, u *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Count(ctx context.Context, status models.UserStatus) (int, error)
	Delete(ctx context.Context, id string) error
	// UpdateStatus clears banReason for every status except banned.
	UpdateStatus(ctx context.Context, id string, status models.UserStatus) error
	AddFavorite(ctx context.Context, userID, wordID string) error
	RemoveFavorite(ctx context.Context, userID, wordID string) error
	TouchLastLogin(ctx context.Context, id string) error
	// AddWarning increments warnings and bans the user once the count reaches
	// models.WarningBanThreshold, in one atomic update.
	AddWarning(ctx context.Context, id, reason string) (*models.User, error)
	Ban(ctx context.Context, id, reason string) error
	Unban(ctx context.Context, id string) error
	ResetWarnings(ctx context.Context, id string) error
	// FindBanned returns a banned user matching email or pseudo.
	FindBanned(ctx context.Context, email, username string) (*models.User, error)
}

// HashPassword hashes a local-login password.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword compares password with the user's stored hash.
func CheckPassword(u *models.User, password string) error {
	if u.PasswordHash == "" {
		return ErrInvalidPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return ErrInvalidPassword
	}
	return nil
}

// prepareUser fills identity, defaults and timestamps before a write.
func prepareUser(u *models.User, now time.Time) *models.User {
	out := *u
	if out.ID == "" {
		out.ID = uuid.New().String()
	}
	if out.CreatedAt.IsZero() {
		out.CreatedAt = now
	}
	out.UpdatedAt = now
	if out.Status == "" {
		out.Status = models.UserStatusActive
	}
	if out.Role == "" {
		out.Role = models.RoleUser
	}
	out.Favorites = cloneStrings(out.Favorites)
	return &out
}

func warningBanReason(reason string) string {
	if r := strings.TrimSpace(reason); r != "" {
		return r
	}
	return models.DefaultWarningReason
}

func banReasonOrDefault(reason string) string {
	if r := strings.TrimSpace(reason); r != "" {
		return r
	}
	return models.DefaultBanReason
}

// MemoryUserService keeps users in process memory.
type MemoryUserService struct {
	users *memTable[models.User]
}

func NewMemoryUserService() *MemoryUserService {
	return &MemoryUserService{
		users: newMemTable(func(u *models.User) *models.User {
			c := *u
			c.Favorites = cloneStrings(u.Favorites)
			if u.LastLogin != nil {
				t := *u.LastLogin
				c.LastLogin = &t
			}
			return &c
		}),
	}
}

func (s *MemoryUserService) Save(ctx context.Context, u *models.User) (*models.User, error) {
	out := prepareUser(u, time.Now().UTC())
	s.users.put(out.ID, out)
	return out, nil
}

func (s *MemoryUserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := s.users.get(id)
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *MemoryUserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	matches := s.users.filter(func(u *models.User) bool { return u.Email == email })
	if len(matches) == 0 {
		return nil, ErrUserNotFound
	}
	return matches[0], nil
}

func (s *MemoryUserService) List(ctx context.Context) ([]*models.User, error) {
	out := s.users.filter(nil)
	sortNewestFirst(out, func(u *models.User) time.Time { return u.CreatedAt })
	return out, nil
}

func (s *MemoryUserService) Count(ctx context.Context, status models.UserStatus) (int, error) {
	return len(s.users.filter(func(u *models.User) bool {
		return status == "" || u.Status == status
	})), nil
}

func (s *MemoryUserService) Delete(ctx context.Context, id string) error {
	if !s.users.remove(id) {
		return ErrUserNotFound
	}
	return nil
}

func (s *MemoryUserService) mutate(id string, fn func(u *models.User)) (*models.User, error) {
	out, found, err := s.users.update(id, func(u *models.User) error {
		fn(u)
		u.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrUserNotFound
	}
	return out, nil
}

func (s *MemoryUserService) UpdateStatus(ctx context.Context, id string, status models.UserStatus) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	_, err := s.mutate(id, func(u *models.User) {
		u.Status = status
		if status != models.UserStatusBanned {
			u.BanReason = ""
		}
	})
	return err
}

func (s *MemoryUserService) AddFavorite(ctx context.Context, userID, wordID string) error {
	_, err := s.mutate(userID, func(u *models.User) {
		for _, id := range u.Favorites {
			if id == wordID {
				return
			}
		}
		u.Favorites = append(u.Favorites, wordID)
	})
	return err
}

func (s *MemoryUserService) RemoveFavorite(ctx context.Context, userID, wordID string) error {
	_, err := s.mutate(userID, func(u *models.User) {
		kept := u.Favorites[:0]
		for _, id := range u.Favorites {
			if id != wordID {
				kept = append(kept, id)
			}
		}
		u.Favorites = kept
	})
	return err
}

func (s *MemoryUserService) TouchLastLogin(ctx context.Context, id string) error {
	_, err := s.mutate(id, func(u *models.User) {
		now := time.Now().UTC()
		u.LastLogin = &now
	})
	return err
}

func (s *MemoryUserService) AddWarning(ctx context.Context, id, reason string) (*models.User, error) {
	return s.mutate(id, func(u *models.User) {
		u.Warnings++
		if u.Warnings >= models.WarningBanThreshold {
			u.Status = models.UserStatusBanned
			u.BanReason = warningBanReason(reason)
		}
	})
}

func (s *MemoryUserService) Ban(ctx context.Context, id, reason string) error {
	_, err := s.mutate(id, func(u *models.User) {
		u.Status = models.UserStatusBanned
		u.BanReason = banReasonOrDefault(reason)
	})
	return err
}

func (s *MemoryUserService) Unban(ctx context.Context, id string) error {
	_, err := s.mutate(id, func(u *models.User) {
		u.Status = models.UserStatusActive
		u.BanReason = ""
	})
	return err
}

func (s *MemoryUserService) ResetWarnings(ctx context.Context, id string) error {
	_, err := s.mutate(id, func(u *models.User) {
		u.Warnings = 0
	})
	return err
}

func (s *MemoryUserService) FindBanned(ctx context.Context, email, username string) (*models.User, error) {
	for _, match := range []func(u *models.User) bool{
		func(u *models.User) bool { return email != "" && u.Email == email },
		func(u *models.User) bool { return username != "" && u.Username == username },
	} {
		found := s.users.filter(func(u *models.User) bool {
			return u.Status == models.UserStatusBanned && match(u)
		})
		if len(found) > 0 {
			return found[0], nil
		}
	}
	return nil, ErrUserNotFound
}
