package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dicoslang/backoffice/internal/models"
)

type MongoWordService struct {
	col *mongo.Collection
}

func NewMongoWordService(ctx context.Context, db *mongo.Database) *MongoWordService {
	col := db.Collection(WordsCollection)
	ensureIndexes(ctx, col, []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "text", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "likesCount", Value: -1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	})
	return &MongoWordService{col: col}
}

func (s *MongoWordService) Save(ctx context.Context, w *models.Word) (*models.Word, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	out := prepareWord(w, time.Now().UTC())
	if _, err := s.col.ReplaceOne(ctx, byID(out.ID), out, options.Replace().SetUpsert(true)); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MongoWordService) GetByID(ctx context.Context, id string) (*models.Word, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var w models.Word
	if err := s.col.FindOne(ctx, byID(id)).Decode(&w); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrWordNotFound
		}
		return nil, err
	}
	return &w, nil
}

func (s *MongoWordService) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]*models.Word, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cur, err := s.col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	return decodeAll[models.Word](ctx, cur)
}

func (s *MongoWordService) List(ctx context.Context) ([]*models.Word, error) {
	return s.find(ctx, bson.M{}, newestFirst)
}

func (s *MongoWordService) ListByStatus(ctx context.Context, status models.WordStatus) ([]*models.Word, error) {
	if status == "" {
		return s.List(ctx)
	}
	return s.find(ctx, bson.M{"status": status}, newestFirst)
}

func (s *MongoWordService) Count(ctx context.Context, status models.WordStatus) (int, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	n, err := s.col.CountDocuments(ctx, filter)
	return int(n), err
}

func (s *MongoWordService) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := s.col.DeleteOne(ctx, byID(id))
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrWordNotFound
	}
	return nil
}

func (s *MongoWordService) updateOne(ctx context.Context, id string, update bson.M) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := s.col.UpdateOne(ctx, byID(id), update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrWordNotFound
	}
	return nil
}

func (s *MongoWordService) UpdateStatus(ctx context.Context, id string, status models.WordStatus) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	return s.updateOne(ctx, id, bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()}})
}

func (s *MongoWordService) IncrementViews(ctx context.Context, id string) error {
	return s.updateOne(ctx, id, bson.M{"$inc": bson.M{"viewsCount": 1}})
}

func (s *MongoWordService) AdjustLikes(ctx context.Context, id string, delta int) error {
	return s.updateOne(ctx, id, bson.M{"$inc": bson.M{"likesCount": delta}})
}

func (s *MongoWordService) Search(ctx context.Context, prefix string, limit int) ([]*models.Word, error) {
	filter := bson.M{
		"status": models.WordStatusActive,
		"text":   bson.M{"$gte": prefix, "$lte": prefix + "\uf8ff"},
	}
	return s.find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "text", Value: 1}}).
		SetLimit(int64(clampLimit(limit, searchLimit))))
}

func (s *MongoWordService) Trending(ctx context.Context, limit int) ([]*models.Word, error) {
	if limit <= 0 {
		limit = trendingLimit
	}
	return s.find(ctx, bson.M{"status": models.WordStatusActive}, options.Find().
		SetSort(bson.D{{Key: "likesCount", Value: -1}, {Key: "text", Value: 1}}).
		SetLimit(int64(limit)))
}

func (s *MongoWordService) RandomActive(ctx context.Context) (*models.Word, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cur, err := s.col.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": models.WordStatusActive}}},
		{{Key: "$sample", Value: bson.M{"size": 1}}},
	})
	if err != nil {
		return nil, err
	}
	words, err := decodeAll[models.Word](ctx, cur)
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, ErrNoActiveWords
	}
	return words[0], nil
}
