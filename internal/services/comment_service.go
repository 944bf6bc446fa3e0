package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dicoslang/backoffice/internal/models"
)

var ErrCommentNotFound = errors.New("comment not found")

type CommentService interface {
	Create(ctx context.Context, c *models.Comment) (*models.Comment, error)
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	List(ctx context.Context) ([]*models.Comment, error)
	ListByWord(ctx context.Context, wordID string) ([]*models.Comment, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Comment, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	UpdateText(ctx context.Context, id, text string) (*models.Comment, error)
	UpdateStatus(ctx context.Context, id string, status models.CommentStatus) error
	// Block replaces the text with models.BlockedCommentText and hides the comment.
	Block(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	// DeleteByUser removes every comment authored by userID.
	DeleteByUser(ctx context.Context, userID string) ([]string, error)
}

func prepareComment(c *models.Comment, now time.Time) *models.Comment {
	out := *c
	if out.ID == "" {
		out.ID = uuid.New().String()
	}
	if out.Status == "" {
		out.Status = models.CommentStatusActive
	}
	if out.CreatedAt.IsZero() {
		out.CreatedAt = now
	}
	out.UpdatedAt = now
	return &out
}

type MemoryCommentService struct {
	comments *memTable[models.Comment]
}

func NewMemoryCommentService() *MemoryCommentService {
	return &MemoryCommentService{comments: newMemTable(shallowClone[models.Comment])}
}

func (s *MemoryCommentService) Create(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	out := prepareComment(c, time.Now().UTC())
	s.comments.put(out.ID, out)
	return out, nil
}

func (s *MemoryCommentService) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	c, ok := s.comments.get(id)
	if !ok {
		return nil, ErrCommentNotFound
	}
	return c, nil
}

func (s *MemoryCommentService) list(keep func(c *models.Comment) bool) []*models.Comment {
	out := s.comments.filter(keep)
	sortNewestFirst(out, func(c *models.Comment) time.Time { return c.CreatedAt })
	return out
}

func (s *MemoryCommentService) List(ctx context.Context) ([]*models.Comment, error) {
	return s.list(nil), nil
}

func (s *MemoryCommentService) ListByWord(ctx context.Context, wordID string) ([]*models.Comment, error) {
	return s.list(func(c *models.Comment) bool { return c.WordID == wordID }), nil
}

func (s *MemoryCommentService) ListByUser(ctx context.Context, userID string) ([]*models.Comment, error) {
	return s.list(func(c *models.Comment) bool { return c.UserID == userID }), nil
}

func (s *MemoryCommentService) CountByUser(ctx context.Context, userID string) (int, error) {
	rows, _ := s.ListByUser(ctx, userID)
	return len(rows), nil
}

func (s *MemoryCommentService) mutate(id string, fn func(c *models.Comment)) (*models.Comment, error) {
	out, found, _ := s.comments.update(id, func(c *models.Comment) error {
		fn(c)
		c.UpdatedAt = time.Now().UTC()
		return nil
	})
	if !found {
		return nil, ErrCommentNotFound
	}
	return out, nil
}

func (s *MemoryCommentService) UpdateText(ctx context.Context, id, text string) (*models.Comment, error) {
	return s.mutate(id, func(c *models.Comment) { c.Text = text })
}

func (s *MemoryCommentService) UpdateStatus(ctx context.Context, id string, status models.CommentStatus) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	_, err := s.mutate(id, func(c *models.Comment) { c.Status = status })
	return err
}

func (s *MemoryCommentService) Block(ctx context.Context, id string) error {
	_, err := s.mutate(id, func(c *models.Comment) {
		c.Text = models.BlockedCommentText
		c.Status = models.CommentStatusHidden
	})
	return err
}

func (s *MemoryCommentService) Delete(ctx context.Context, id string) error {
	if !s.comments.remove(id) {
		return ErrCommentNotFound
	}
	return nil
}

func (s *MemoryCommentService) DeleteByUser(ctx context.Context, userID string) ([]string, error) {
	removed := s.comments.removeWhere(func(c *models.Comment) bool { return c.UserID == userID })
	ids := make([]string, 0, len(removed))
	for _, c := range removed {
		ids = append(ids, c.ID)
	}
	return ids, nil
}
