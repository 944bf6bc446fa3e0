package services

import (
	"context"
	"errors"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dicoslang/backoffice/internal/models"
)

var (
	ErrWordNotFound  = errors.New("word not found")
	ErrNoActiveWords = errors.New("no active words")
)

const (
	searchLimit   = 20
	trendingLimit = 10
)

type WordService interface {
	// Save creates the word when ID is empty, otherwise replaces the document.
	Save(ctx context.Context, w *models.Word) (*models.Word, error)
	GetByID(ctx context.Context, id string) (*models.Word, error)
	List(ctx context.Context) ([]*models.Word, error)
	ListByStatus(ctx context.Context, status models.WordStatus) ([]*models.Word, error)
	Count(ctx context.Context, status models.WordStatus) (int, error)
	Delete(ctx context.Context, id string) error
	UpdateStatus(ctx context.Context, id string, status models.WordStatus) error
	IncrementViews(ctx context.Context, id string) error
	// AdjustLikes adds delta to likesCount atomically.
	AdjustLikes(ctx context.Context, id string, delta int) error
	// Search returns active words whose text starts with prefix.
	Search(ctx context.Context, prefix string, limit int) ([]*models.Word, error)
	// Trending returns active words ordered by likes, most liked first.
	Trending(ctx context.Context, limit int) ([]*models.Word, error)
	RandomActive(ctx context.Context) (*models.Word, error)
}

func prepareWord(w *models.Word, now time.Time) *models.Word {
	out := *w
	if out.ID == "" {
		out.ID = uuid.New().String()
	}
	if out.CreatedAt.IsZero() {
		out.CreatedAt = now
	}
	out.UpdatedAt = now
	if out.Status == "" {
		out.Status = models.WordStatusPending
	}
	out.Tags = cloneStrings(out.Tags)
	return &out
}

func clampLimit(limit, def int) int {
	if limit <= 0 || limit > def {
		return def
	}
	return limit
}

type MemoryWordService struct {
	words *memTable[models.Word]
}

func NewMemoryWordService() *MemoryWordService {
	return &MemoryWordService{
		words: newMemTable(func(w *models.Word) *models.Word {
			c := *w
			c.Tags = cloneStrings(w.Tags)
			return &c
		}),
	}
}

func (s *MemoryWordService) Save(ctx context.Context, w *models.Word) (*models.Word, error) {
	out := prepareWord(w, time.Now().UTC())
	s.words.put(out.ID, out)
	return out, nil
}

func (s *MemoryWordService) GetByID(ctx context.Context, id string) (*models.Word, error) {
	w, ok := s.words.get(id)
	if !ok {
		return nil, ErrWordNotFound
	}
	return w, nil
}

func (s *MemoryWordService) List(ctx context.Context) ([]*models.Word, error) {
	return s.ListByStatus(ctx, "")
}

func (s *MemoryWordService) ListByStatus(ctx context.Context, status models.WordStatus) ([]*models.Word, error) {
	out := s.words.filter(func(w *models.Word) bool {
		return status == "" || w.Status == status
	})
	sortNewestFirst(out, func(w *models.Word) time.Time { return w.CreatedAt })
	return out, nil
}

func (s *MemoryWordService) Count(ctx context.Context, status models.WordStatus) (int, error) {
	rows, _ := s.ListByStatus(ctx, status)
	return len(rows), nil
}

func (s *MemoryWordService) Delete(ctx context.Context, id string) error {
	if !s.words.remove(id) {
		return ErrWordNotFound
	}
	return nil
}

func (s *MemoryWordService) mutate(id string, fn func(w *models.Word)) error {
	_, found, _ := s.words.update(id, func(w *models.Word) error {
		fn(w)
		w.UpdatedAt = time.Now().UTC()
		return nil
	})
	if !found {
		return ErrWordNotFound
	}
	return nil
}

func (s *MemoryWordService) UpdateStatus(ctx context.Context, id string, status models.WordStatus) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	return s.mutate(id, func(w *models.Word) { w.Status = status })
}

func (s *MemoryWordService) IncrementViews(ctx context.Context, id string) error {
	return s.mutate(id, func(w *models.Word) { w.ViewsCount++ })
}

func (s *MemoryWordService) AdjustLikes(ctx context.Context, id string, delta int) error {
	return s.mutate(id, func(w *models.Word) { w.LikesCount += delta })
}

func (s *MemoryWordService) Search(ctx context.Context, prefix string, limit int) ([]*models.Word, error) {
	out := s.words.filter(func(w *models.Word) bool {
		return w.Status == models.WordStatusActive && strings.HasPrefix(w.Text, prefix)
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Text < out[j].Text })
	if n := clampLimit(limit, searchLimit); len(out) > n {
		out = out[:n]
	}
	return out, nil
}

func (s *MemoryWordService) Trending(ctx context.Context, limit int) ([]*models.Word, error) {
	out := s.words.filter(func(w *models.Word) bool { return w.Status == models.WordStatusActive })
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].LikesCount != out[j].LikesCount {
			return out[i].LikesCount > out[j].LikesCount
		}
		return out[i].Text < out[j].Text
	})
	if limit <= 0 {
		limit = trendingLimit
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemoryWordService) RandomActive(ctx context.Context) (*models.Word, error) {
	active := s.words.filter(func(w *models.Word) bool { return w.Status == models.WordStatusActive })
	if len(active) == 0 {
		return nil, ErrNoActiveWords
	}
	return active[rand.Intn(len(active))], nil
}
