package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dicoslang/backoffice/internal/models"
)

var ErrVoteNotFound = errors.New("vote not found")

type VoteService interface {
	// Save inserts the vote, or replaces it when the ID already exists.
	Save(ctx context.Context, v *models.Vote) (*models.Vote, error)
	GetByID(ctx context.Context, id string) (*models.Vote, error)
	FindByUserAndWord(ctx context.Context, userID, wordID string) (*models.Vote, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Vote, error)
	ListByWord(ctx context.Context, wordID string) ([]*models.Vote, error)
	// ListSince returns votes created at or after since, oldest first.
	ListSince(ctx context.Context, since time.Time) ([]*models.Vote, error)
	Count(ctx context.Context) (int, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	// Delete removes the vote and returns it.
	Delete(ctx context.Context, id string) (*models.Vote, error)
	// DeleteByUser removes every vote cast by userID and returns them.
	DeleteByUser(ctx context.Context, userID string) ([]*models.Vote, error)
}

func prepareVote(v *models.Vote, now time.Time) *models.Vote {
	out := *v
	if out.ID == "" {
		out.ID = uuid.New().String()
	}
	if out.CreatedAt.IsZero() {
		out.CreatedAt = now
	}
	return &out
}

type MemoryVoteService struct {
	votes *memTable[models.Vote]
}

func NewMemoryVoteService() *MemoryVoteService {
	return &MemoryVoteService{votes: newMemTable(shallowClone[models.Vote])}
}

func (s *MemoryVoteService) Save(ctx context.Context, v *models.Vote) (*models.Vote, error) {
	out := prepareVote(v, time.Now().UTC())
	s.votes.put(out.ID, out)
	return out, nil
}

func (s *MemoryVoteService) GetByID(ctx context.Context, id string) (*models.Vote, error) {
	v, ok := s.votes.get(id)
	if !ok {
		return nil, ErrVoteNotFound
	}
	return v, nil
}

func (s *MemoryVoteService) FindByUserAndWord(ctx context.Context, userID, wordID string) (*models.Vote, error) {
	found := s.votes.filter(func(v *models.Vote) bool { return v.UserID == userID && v.WordID == wordID })
	if len(found) == 0 {
		return nil, ErrVoteNotFound
	}
	return found[0], nil
}

func (s *MemoryVoteService) list(keep func(v *models.Vote) bool) []*models.Vote {
	out := s.votes.filter(keep)
	sortNewestFirst(out, func(v *models.Vote) time.Time { return v.CreatedAt })
	return out
}

func (s *MemoryVoteService) ListByUser(ctx context.Context, userID string) ([]*models.Vote, error) {
	return s.list(func(v *models.Vote) bool { return v.UserID == userID }), nil
}

func (s *MemoryVoteService) ListByWord(ctx context.Context, wordID string) ([]*models.Vote, error) {
	return s.list(func(v *models.Vote) bool { return v.WordID == wordID }), nil
}

func (s *MemoryVoteService) ListSince(ctx context.Context, since time.Time) ([]*models.Vote, error) {
	out := s.list(func(v *models.Vote) bool { return !v.CreatedAt.Before(since) })
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func (s *MemoryVoteService) Count(ctx context.Context) (int, error) {
	return len(s.votes.filter(nil)), nil
}

func (s *MemoryVoteService) CountByUser(ctx context.Context, userID string) (int, error) {
	rows, _ := s.ListByUser(ctx, userID)
	return len(rows), nil
}

func (s *MemoryVoteService) Delete(ctx context.Context, id string) (*models.Vote, error) {
	removed := s.votes.removeWhere(func(v *models.Vote) bool { return v.ID == id })
	if len(removed) == 0 {
		return nil, ErrVoteNotFound
	}
	return removed[0], nil
}

func (s *MemoryVoteService) DeleteByUser(ctx context.Context, userID string) ([]*models.Vote, error) {
	return s.votes.removeWhere(func(v *models.Vote) bool { return v.UserID == userID }), nil
}
