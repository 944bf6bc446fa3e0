package services

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/dicoslang/backoffice/internal/metrics"
	"github.com/dicoslang/backoffice/internal/models"
)

// WordOfTheDay picks one random active word per UTC day.
type WordOfTheDay struct {
	words WordService
	picks WordOfTheDayService
	cache PickCache // optional
	now   func() time.Time

	// mu serializes picks made by this process.
	mu sync.Mutex
}

func NewWordOfTheDay(store *Store, cache PickCache) *WordOfTheDay {
	return &WordOfTheDay{
		words: store.Words,
		picks: store.WordsOfTheDay,
		cache: cache,
		now:   time.Now,
	}
}

// Today returns today's pick, choosing one when the day has none yet.
func (w *WordOfTheDay) Today(ctx context.Context) (*models.WordOfTheDay, error) {
	day := DayKey(w.now())

	if w.cache != nil {
		pick, err := w.cache.Get(ctx, day)
		if err == nil && pick.Word != nil {
			return pick, nil
		}
		if err != nil && !errors.Is(err, errCacheMiss) {
			log.Printf("[wotd] cache read failed day=%s err=%v", day, err)
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	pick, err := w.picks.Get(ctx, day)
	switch {
	case err == nil:
		word, werr := w.words.GetByID(ctx, pick.WordID)
		if werr == nil {
			pick.Word = word
			w.remember(ctx, pick)
			return pick, nil
		}
		if !errors.Is(werr, ErrWordNotFound) {
			return nil, werr
		}
		log.Printf("[wotd] picked word gone day=%s word=%s, picking again", day, pick.WordID)
	case !errors.Is(err, ErrWordOfTheDayNotFound):
		return nil, err
	}
	return w.pick(ctx, day)
}

// Rotate replaces today's pick with a fresh random word.
func (w *WordOfTheDay) Rotate(ctx context.Context) (*models.WordOfTheDay, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pick(ctx, DayKey(w.now()))
}

func (w *WordOfTheDay) pick(ctx context.Context, day string) (*models.WordOfTheDay, error) {
	word, err := w.words.RandomActive(ctx)
	if err != nil {
		return nil, err
	}

	now := w.now().UTC()
	date, _ := time.Parse("2006-01-02", day)
	pick := &models.WordOfTheDay{
		ID:        day,
		WordID:    word.ID,
		Date:      date,
		CreatedAt: now,
	}
	if err := w.picks.Put(ctx, pick); err != nil {
		return nil, err
	}
	if err := w.words.IncrementViews(ctx, word.ID); err != nil {
		log.Printf("[wotd] view count failed word=%s err=%v", word.ID, err)
	} else {
		word.ViewsCount++
	}

	pick.Word = word
	w.remember(ctx, pick)
	metrics.WordOfTheDayPicks.Inc()
	log.Printf("[wotd] picked day=%s word=%s text=%q", day, word.ID, word.Text)
	return pick, nil
}

// remember caches the pick until the end of its UTC day.
func (w *WordOfTheDay) remember(ctx context.Context, pick *models.WordOfTheDay) {
	if w.cache == nil {
		return
	}
	now := w.now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, time.UTC)
	if err := w.cache.Set(ctx, pick, midnight.Sub(now)); err != nil {
		log.Printf("[wotd] cache write failed day=%s err=%v", pick.ID, err)
	}
}
