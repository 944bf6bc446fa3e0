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

type MongoSuggestionService struct {
	col *mongo.Collection
}

func NewMongoSuggestionService(ctx context.Context, db *mongo.Database) *MongoSuggestionService {
	col := db.Collection(SuggestionsCollection)
	ensureIndexes(ctx, col, []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "userId", Value: 1}}},
	})
	return &MongoSuggestionService{col: col}
}

func (s *MongoSuggestionService) Create(ctx context.Context, sg *models.Suggestion) (*models.Suggestion, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	out := prepareSuggestion(sg, time.Now().UTC())
	if _, err := s.col.InsertOne(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MongoSuggestionService) GetByID(ctx context.Context, id string) (*models.Suggestion, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var sg models.Suggestion
	if err := s.col.FindOne(ctx, byID(id)).Decode(&sg); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSuggestionNotFound
		}
		return nil, err
	}
	return &sg, nil
}

func (s *MongoSuggestionService) find(ctx context.Context, filter bson.M) ([]*models.Suggestion, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cur, err := s.col.Find(ctx, filter, newestFirst)
	if err != nil {
		return nil, err
	}
	return decodeAll[models.Suggestion](ctx, cur)
}

func (s *MongoSuggestionService) ListByStatus(ctx context.Context, status models.SuggestionStatus) ([]*models.Suggestion, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return s.find(ctx, filter)
}

func (s *MongoSuggestionService) ListByUser(ctx context.Context, userID string) ([]*models.Suggestion, error) {
	return s.find(ctx, bson.M{"userId": userID})
}

func (s *MongoSuggestionService) Count(ctx context.Context, status models.SuggestionStatus) (int, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	n, err := s.col.CountDocuments(ctx, filter)
	return int(n), err
}

func (s *MongoSuggestionService) Review(ctx context.Context, id string, status models.SuggestionStatus, reviewedBy, note string) (*models.Suggestion, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var out models.Suggestion
	err := s.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": models.SuggestionStatusPending},
		bson.M{"$set": bson.M{
			"status":     status,
			"reviewedBy": reviewedBy,
			"reviewNote": note,
			"updatedAt":  time.Now().UTC(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&out)
	if err == nil {
		return &out, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	n, err := s.col.CountDocuments(ctx, byID(id))
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrSuggestionNotFound
	}
	return nil, ErrSuggestionNotPending
}

func (s *MongoSuggestionService) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := s.col.DeleteOne(ctx, byID(id))
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrSuggestionNotFound
	}
	return nil
}

func (s *MongoSuggestionService) DeleteByUser(ctx context.Context, userID string) ([]string, error) {
	return deleteMatching(ctx, s.col, bson.M{"userId": userID})
}
