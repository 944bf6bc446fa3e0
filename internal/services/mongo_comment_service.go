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

type MongoCommentService struct {
	col *mongo.Collection
}

func NewMongoCommentService(ctx context.Context, db *mongo.Database) *MongoCommentService {
	col := db.Collection(CommentsCollection)
	ensureIndexes(ctx, col, []mongo.IndexModel{
		{Keys: bson.D{{Key: "wordId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
	})
	return &MongoCommentService{col: col}
}

func (s *MongoCommentService) Create(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	out := prepareComment(c, time.Now().UTC())
	if _, err := s.col.InsertOne(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MongoCommentService) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var c models.Comment
	if err := s.col.FindOne(ctx, byID(id)).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (s *MongoCommentService) find(ctx context.Context, filter bson.M) ([]*models.Comment, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cur, err := s.col.Find(ctx, filter, newestFirst)
	if err != nil {
		return nil, err
	}
	return decodeAll[models.Comment](ctx, cur)
}

func (s *MongoCommentService) List(ctx context.Context) ([]*models.Comment, error) {
	return s.find(ctx, bson.M{})
}

func (s *MongoCommentService) ListByWord(ctx context.Context, wordID string) ([]*models.Comment, error) {
	return s.find(ctx, bson.M{"wordId": wordID})
}

func (s *MongoCommentService) ListByUser(ctx context.Context, userID string) ([]*models.Comment, error) {
	return s.find(ctx, bson.M{"userId": userID})
}

func (s *MongoCommentService) CountByUser(ctx context.Context, userID string) (int, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	n, err := s.col.CountDocuments(ctx, bson.M{"userId": userID})
	return int(n), err
}

func (s *MongoCommentService) UpdateText(ctx context.Context, id, text string) (*models.Comment, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var out models.Comment
	err := s.col.FindOneAndUpdate(ctx, byID(id),
		bson.M{"$set": bson.M{"text": text, "updatedAt": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &out, nil
}

func (s *MongoCommentService) set(ctx context.Context, id string, fields bson.M) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	fields["updatedAt"] = time.Now().UTC()
	res, err := s.col.UpdateOne(ctx, byID(id), bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrCommentNotFound
	}
	return nil
}

func (s *MongoCommentService) UpdateStatus(ctx context.Context, id string, status models.CommentStatus) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	return s.set(ctx, id, bson.M{"status": status})
}

func (s *MongoCommentService) Block(ctx context.Context, id string) error {
	return s.set(ctx, id, bson.M{
		"text":   models.BlockedCommentText,
		"status": models.CommentStatusHidden,
	})
}

func (s *MongoCommentService) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := s.col.DeleteOne(ctx, byID(id))
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrCommentNotFound
	}
	return nil
}

func (s *MongoCommentService) DeleteByUser(ctx context.Context, userID string) ([]string, error) {
	return deleteMatching(ctx, s.col, bson.M{"userId": userID})
}
