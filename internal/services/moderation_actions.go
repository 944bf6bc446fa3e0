package services

import (
	"context"
	"errors"
	"log"

	"github.com/dicoslang/backoffice/internal/metrics"
	"github.com/dicoslang/backoffice/internal/models"
)

// ModerationActions are the manual sanctions an admin applies to a user
// outside the report workflow.
type ModerationActions struct {
	Users UserService
}

func (m *ModerationActions) Ban(ctx context.Context, userID, reason, adminID string) error {
	if err := m.Users.Ban(ctx, userID, reason); err != nil {
		return err
	}
	metrics.UsersBanned.WithLabelValues("manual").Inc()
	log.Printf("[moderation] user banned user=%s admin=%s", userID, adminID)
	return nil
}

func (m *ModerationActions) Unban(ctx context.Context, userID, adminID string) error {
	if err := m.Users.Unban(ctx, userID); err != nil {
		return err
	}
	log.Printf("[moderation] user unbanned user=%s admin=%s", userID, adminID)
	return nil
}

func (m *ModerationActions) ResetWarnings(ctx context.Context, userID, adminID string) error {
	if err := m.Users.ResetWarnings(ctx, userID); err != nil {
		return err
	}
	log.Printf("[moderation] warnings reset user=%s admin=%s", userID, adminID)
	return nil
}

// CheckBanned reports whether an email or pseudo belongs to a banned user.
func (m *ModerationActions) CheckBanned(ctx context.Context, email, username string) (*models.BanCheck, error) {
	if email == "" && username == "" {
		return &models.BanCheck{}, nil
	}
	u, err := m.Users.FindBanned(ctx, email, username)
	if errors.Is(err, ErrUserNotFound) {
		return &models.BanCheck{}, nil
	}
	if err != nil {
		return nil, err
	}
	reason := u.BanReason
	if reason == "" {
		reason = models.DefaultBannedReason
	}
	return &models.BanCheck{Banned: true, Reason: reason}, nil
}
