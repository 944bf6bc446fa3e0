package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/dicoslang/backoffice/internal/models"
)

// AccountService deletes a user together with everything they authored.
type AccountService struct {
	store *Store
}

func NewAccountService(store *Store) *AccountService {
	return &AccountService{store: store}
}

// DefaultAccountTimeout bounds a cascade delete.
func DefaultAccountTimeout() time.Duration { return 20 * time.Second }

// DeleteAccount removes, in order:
// - votes cast by the user, taking their likes back from the words
// - comments by the user
// - suggestions by the user
// - reports filed by or against the user
// - the user document
func (s *AccountService) DeleteAccount(ctx context.Context, userID string) (*models.AccountDeletion, error) {
	out := &models.AccountDeletion{UserID: userID}
	err := s.store.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.store.Users.GetByID(ctx, userID); err != nil {
			return err
		}

		votes, err := s.store.Votes.DeleteByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("delete votes: %w", err)
		}
		out.VoteIDs = make([]string, 0, len(votes))
		for _, v := range votes {
			out.VoteIDs = append(out.VoteIDs, v.ID)
			if v.Value != models.VoteLike {
				continue
			}
			if err := s.store.Words.AdjustLikes(ctx, v.WordID, -1); err != nil && !errors.Is(err, ErrWordNotFound) {
				return fmt.Errorf("adjust likes word=%s: %w", v.WordID, err)
			}
		}

		if out.CommentIDs, err = s.store.Comments.DeleteByUser(ctx, userID); err != nil {
			return fmt.Errorf("delete comments: %w", err)
		}
		if out.SuggestionIDs, err = s.store.Suggestions.DeleteByUser(ctx, userID); err != nil {
			return fmt.Errorf("delete suggestions: %w", err)
		}
		if out.ReportIDs, err = s.store.Reports.DeleteByUser(ctx, userID); err != nil {
			return fmt.Errorf("delete reports: %w", err)
		}
		return s.store.Users.Delete(ctx, userID)
	})
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			log.Printf("[DeleteAccount] user=%s err=%v", userID, err)
		}
		return nil, err
	}

	log.Printf("[accounts] deleted user=%s comments=%d votes=%d suggestions=%d reports=%d",
		userID, len(out.CommentIDs), len(out.VoteIDs), len(out.SuggestionIDs), len(out.ReportIDs))
	return out, nil
}
