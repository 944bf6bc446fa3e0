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

type MongoVoteService struct {
	col *mongo.Collection
}

func NewMongoVoteService(ctx context.Context, db *mongo.Database) *MongoVoteService {
	col := db.Collection(VotesCollection)
	ensureIndexes(ctx, col, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "wordId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "wordId", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: 1}}},
	})
	return &MongoVoteService{col: col}
}

func (s *MongoVoteService) Save(ctx context.Context, v *models.Vote) (*models.Vote, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	out := prepareVote(v, time.Now().UTC())
	if _, err := s.col.ReplaceOne(ctx, byID(out.ID), out, options.Replace().SetUpsert(true)); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MongoVoteService) findOne(ctx context.Context, filter bson.M) (*models.Vote, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var v models.Vote
	if err := s.col.FindOne(ctx, filter).Decode(&v); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrVoteNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (s *MongoVoteService) GetByID(ctx context.Context, id string) (*models.Vote, error) {
	return s.findOne(ctx, byID(id))
}

func (s *MongoVoteService) FindByUserAndWord(ctx context.Context, userID, wordID string) (*models.Vote, error) {
	return s.findOne(ctx, bson.M{"userId": userID, "wordId": wordID})
}

func (s *MongoVoteService) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*models.Vote, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cur, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	return decodeAll[models.Vote](ctx, cur)
}

func (s *MongoVoteService) ListByUser(ctx context.Context, userID string) ([]*models.Vote, error) {
	return s.find(ctx, bson.M{"userId": userID}, newestFirst)
}

func (s *MongoVoteService) ListByWord(ctx context.Context, wordID string) ([]*models.Vote, error) {
	return s.find(ctx, bson.M{"wordId": wordID}, newestFirst)
}

func (s *MongoVoteService) ListSince(ctx context.Context, since time.Time) ([]*models.Vote, error) {
	return s.find(ctx,
		bson.M{"createdAt": bson.M{"$gte": since}},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}),
	)
}

func (s *MongoVoteService) count(ctx context.Context, filter bson.M) (int, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	n, err := s.col.CountDocuments(ctx, filter)
	return int(n), err
}

func (s *MongoVoteService) Count(ctx context.Context) (int, error) {
	return s.count(ctx, bson.M{})
}

func (s *MongoVoteService) CountByUser(ctx context.Context, userID string) (int, error) {
	return s.count(ctx, bson.M{"userId": userID})
}

func (s *MongoVoteService) Delete(ctx context.Context, id string) (*models.Vote, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var v models.Vote
	if err := s.col.FindOneAndDelete(ctx, byID(id)).Decode(&v); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrVoteNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (s *MongoVoteService) DeleteByUser(ctx context.Context, userID string) ([]*models.Vote, error) {
	votes, err := s.find(ctx, bson.M{"userId": userID}, newestFirst)
	if err != nil {
		return nil, err
	}
	if len(votes) == 0 {
		return votes, nil
	}

	ids := make([]string, 0, len(votes))
	for _, v := range votes {
		ids = append(ids, v.ID)
	}
	if _, err := s.col.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}}); err != nil {
		return nil, err
	}
	return votes, nil
}
