package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dicoslang/backoffice/internal/models"
)

type fakePickCache struct {
	mu    sync.Mutex
	picks map[string]*models.WordOfTheDay
	ttls  map[string]time.Duration
}

func newFakePickCache() *fakePickCache {
	return &fakePickCache{
		picks: make(map[string]*models.WordOfTheDay),
		ttls:  make(map[string]time.Duration),
	}
}

func (c *fakePickCache) Get(ctx context.Context, day string) (*models.WordOfTheDay, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.picks[day]
	if !ok {
		return nil, errCacheMiss
	}
	copied := *p
	return &copied, nil
}

func (c *fakePickCache) Set(ctx context.Context, pick *models.WordOfTheDay, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	copied := *pick
	c.picks[pick.ID] = &copied
	c.ttls[pick.ID] = ttl
	return nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestWordOfTheDayStableWithinDay(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	for _, text := range []string{"wesh", "chelou", "daron"} {
		mustWord(t, store, text, models.WordStatusActive)
	}
	mustWord(t, store, "brouillon", models.WordStatusPending)

	wotd := NewWordOfTheDay(store, nil)
	wotd.now = fixedClock(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))

	first, err := wotd.Today(ctx)
	require.NoError(t, err)
	require.NotNil(t, first.Word)
	assert.Equal(t, "2026-03-14", first.ID)
	assert.Equal(t, models.WordStatusActive, first.Word.Status)
	assert.Equal(t, 1, first.Word.ViewsCount)

	wotd.now = fixedClock(time.Date(2026, 3, 14, 23, 59, 0, 0, time.UTC))
	second, err := wotd.Today(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.WordID, second.WordID)

	stored, err := store.Words.GetByID(ctx, first.WordID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.ViewsCount)
}

func TestWordOfTheDayNewDayPicksAgain(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	mustWord(t, store, "wesh", models.WordStatusActive)

	wotd := NewWordOfTheDay(store, nil)
	wotd.now = fixedClock(time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC))
	_, err := wotd.Today(ctx)
	require.NoError(t, err)

	wotd.now = fixedClock(time.Date(2026, 3, 15, 0, 1, 0, 0, time.UTC))
	next, err := wotd.Today(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-15", next.ID)
	assert.Equal(t, 2, next.Word.ViewsCount)
}

func TestWordOfTheDayRepicksDeletedWord(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	gone := mustWord(t, store, "disparu", models.WordStatusActive)

	wotd := NewWordOfTheDay(store, nil)
	first, err := wotd.Today(ctx)
	require.NoError(t, err)
	require.Equal(t, gone.ID, first.WordID)

	require.NoError(t, store.Words.Delete(ctx, gone.ID))
	kept := mustWord(t, store, "restant", models.WordStatusActive)

	again, err := wotd.Today(ctx)
	require.NoError(t, err)
	assert.Equal(t, kept.ID, again.WordID)
}

func TestWordOfTheDayNoActiveWords(t *testing.T) {
	store := NewMemoryStore()
	mustWord(t, store, "brouillon", models.WordStatusPending)

	_, err := NewWordOfTheDay(store, nil).Today(context.Background())
	assert.ErrorIs(t, err, ErrNoActiveWords)
}

func TestWordOfTheDayCachedUntilMidnight(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	mustWord(t, store, "wesh", models.WordStatusActive)
	cache := newFakePickCache()

	wotd := NewWordOfTheDay(store, cache)
	wotd.now = fixedClock(time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC))

	pick, err := wotd.Today(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6*time.Hour, cache.ttls[pick.ID])

	cached, err := cache.Get(ctx, pick.ID)
	require.NoError(t, err)
	require.NotNil(t, cached.Word)
	assert.Equal(t, pick.WordID, cached.Word.ID)

	// A cache hit does not count another view.
	_, err = wotd.Today(ctx)
	require.NoError(t, err)
	stored, err := store.Words.GetByID(ctx, pick.WordID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.ViewsCount)
}

func TestRotateReplacesPick(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	w := mustWord(t, store, "wesh", models.WordStatusActive)

	wotd := NewWordOfTheDay(store, nil)
	_, err := wotd.Today(ctx)
	require.NoError(t, err)

	rotated, err := wotd.Rotate(ctx)
	require.NoError(t, err)
	assert.Equal(t, w.ID, rotated.WordID)
	assert.Equal(t, 2, rotated.Word.ViewsCount)

	stored, err := store.WordsOfTheDay.Get(ctx, DayKey(time.Now()))
	require.NoError(t, err)
	assert.Equal(t, w.ID, stored.WordID)
}
