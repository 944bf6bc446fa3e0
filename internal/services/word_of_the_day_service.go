package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dicoslang/backoffice/internal/models"
)

var ErrWordOfTheDayNotFound = errors.New("no word of the day for this date")

// DayKey formats t as the UTC date used as word-of-the-day id.
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordOfTheDayService is the accessor for the daily pick history.
type WordOfTheDayService interface {
	Get(ctx context.Context, day string) (*models.WordOfTheDay, error)
	// Put stores the pick for its day, replacing any earlier pick.
	Put(ctx context.Context, pick *models.WordOfTheDay) error
}

type MemoryWordOfTheDayService struct {
	picks *memTable[models.WordOfTheDay]
}

func NewMemoryWordOfTheDayService() *MemoryWordOfTheDayService {
	return &MemoryWordOfTheDayService{
		picks: newMemTable(func(p *models.WordOfTheDay) *models.WordOfTheDay {
			c := *p
			c.Word = nil
			return &c
		}),
	}
}

func (s *MemoryWordOfTheDayService) Get(ctx context.Context, day string) (*models.WordOfTheDay, error) {
	p, ok := s.picks.get(day)
	if !ok {
		return nil, ErrWordOfTheDayNotFound
	}
	return p, nil
}

func (s *MemoryWordOfTheDayService) Put(ctx context.Context, pick *models.WordOfTheDay) error {
	s.picks.put(pick.ID, pick)
	return nil
}

type MongoWordOfTheDayService struct {
	col *mongo.Collection
}

func NewMongoWordOfTheDayService(db *mongo.Database) *MongoWordOfTheDayService {
	return &MongoWordOfTheDayService{col: db.Collection(WordOfTheDayCollection)}
}

func (s *MongoWordOfTheDayService) Get(ctx context.Context, day string) (*models.WordOfTheDay, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var p models.WordOfTheDay
	if err := s.col.FindOne(ctx, byID(day)).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrWordOfTheDayNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *MongoWordOfTheDayService) Put(ctx context.Context, pick *models.WordOfTheDay) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err := s.col.ReplaceOne(ctx, byID(pick.ID), pick, options.Replace().SetUpsert(true))
	return err
}
