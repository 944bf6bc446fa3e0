package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dicoslang/backoffice/internal/models"
)

var (
	ErrSuggestionNotFound   = errors.New("suggestion not found")
	ErrSuggestionNotPending = errors.New("suggestion already reviewed")
)

type SuggestionService interface {
	// Create stores a new suggestion with status pending.
	Create(ctx context.Context, sg *models.Suggestion) (*models.Suggestion, error)
	GetByID(ctx context.Context, id string) (*models.Suggestion, error)
	ListByStatus(ctx context.Context, status models.SuggestionStatus) ([]*models.Suggestion, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Suggestion, error)
	Count(ctx context.Context, status models.SuggestionStatus) (int, error)
	// Review moves a pending suggestion to status. It fails with
	// ErrSuggestionNotPending when the suggestion was already reviewed.
	Review(ctx context.Context, id string, status models.SuggestionStatus, reviewedBy, note string) (*models.Suggestion, error)
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID string) ([]string, error)
}

func prepareSuggestion(sg *models.Suggestion, now time.Time) *models.Suggestion {
	out := *sg
	if out.ID == "" {
		out.ID = uuid.New().String()
	}
	out.Status = models.SuggestionStatusPending
	out.ReviewedBy = ""
	out.ReviewNote = ""
	if out.CreatedAt.IsZero() {
		out.CreatedAt = now
	}
	out.UpdatedAt = now
	return &out
}

type MemorySuggestionService struct {
	suggestions *memTable[models.Suggestion]
}

func NewMemorySuggestionService() *MemorySuggestionService {
	return &MemorySuggestionService{suggestions: newMemTable(shallowClone[models.Suggestion])}
}

func (s *MemorySuggestionService) Create(ctx context.Context, sg *models.Suggestion) (*models.Suggestion, error) {
	out := prepareSuggestion(sg, time.Now().UTC())
	s.suggestions.put(out.ID, out)
	return out, nil
}

func (s *MemorySuggestionService) GetByID(ctx context.Context, id string) (*models.Suggestion, error) {
	sg, ok := s.suggestions.get(id)
	if !ok {
		return nil, ErrSuggestionNotFound
	}
	return sg, nil
}

func (s *MemorySuggestionService) list(keep func(sg *models.Suggestion) bool) []*models.Suggestion {
	out := s.suggestions.filter(keep)
	sortNewestFirst(out, func(sg *models.Suggestion) time.Time { return sg.CreatedAt })
	return out
}

func (s *MemorySuggestionService) ListByStatus(ctx context.Context, status models.SuggestionStatus) ([]*models.Suggestion, error) {
	return s.list(func(sg *models.Suggestion) bool { return status == "" || sg.Status == status }), nil
}

func (s *MemorySuggestionService) ListByUser(ctx context.Context, userID string) ([]*models.Suggestion, error) {
	return s.list(func(sg *models.Suggestion) bool { return sg.UserID == userID }), nil
}

func (s *MemorySuggestionService) Count(ctx context.Context, status models.SuggestionStatus) (int, error) {
	rows, _ := s.ListByStatus(ctx, status)
	return len(rows), nil
}

func (s *MemorySuggestionService) Review(ctx context.Context, id string, status models.SuggestionStatus, reviewedBy, note string) (*models.Suggestion, error) {
	out, found, err := s.suggestions.update(id, func(sg *models.Suggestion) error {
		if sg.Status != models.SuggestionStatusPending {
			return ErrSuggestionNotPending
		}
		sg.Status = status
		sg.ReviewedBy = reviewedBy
		sg.ReviewNote = note
		sg.UpdatedAt = time.Now().UTC()
		return nil
	})
	if !found {
		return nil, ErrSuggestionNotFound
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MemorySuggestionService) Delete(ctx context.Context, id string) error {
	if !s.suggestions.remove(id) {
		return ErrSuggestionNotFound
	}
	return nil
}

func (s *MemorySuggestionService) DeleteByUser(ctx context.Context, userID string) ([]string, error) {
	removed := s.suggestions.removeWhere(func(sg *models.Suggestion) bool { return sg.UserID == userID })
	ids := make([]string, 0, len(removed))
	for _, sg := range removed {
		ids = append(ids, sg.ID)
	}
	return ids, nil
}
