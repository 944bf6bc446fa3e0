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

type MongoReportService struct {
	col *mongo.Collection
}

func NewMongoReportService(ctx context.Context, db *mongo.Database) *MongoReportService {
	col := db.Collection(ReportsCollection)
	ensureIndexes(ctx, col, []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "reporterId", Value: 1}}},
		{Keys: bson.D{{Key: "userId", Value: 1}}},
	})
	return &MongoReportService{col: col}
}

func (s *MongoReportService) Create(ctx context.Context, r *models.CommentReport) (*models.CommentReport, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	out := prepareReport(r, time.Now().UTC())
	if _, err := s.col.InsertOne(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MongoReportService) GetByID(ctx context.Context, id string) (*models.CommentReport, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var r models.CommentReport
	if err := s.col.FindOne(ctx, byID(id)).Decode(&r); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return &r, nil
}

func (s *MongoReportService) ListByStatus(ctx context.Context, status models.ReportStatus) ([]*models.CommentReport, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	cur, err := s.col.Find(ctx, filter, newestFirst)
	if err != nil {
		return nil, err
	}
	return decodeAll[models.CommentReport](ctx, cur)
}

func (s *MongoReportService) Count(ctx context.Context, status models.ReportStatus) (int, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	n, err := s.col.CountDocuments(ctx, filter)
	return int(n), err
}

func (s *MongoReportService) Resolve(ctx context.Context, id string, status models.ReportStatus, reviewedBy string) (*models.CommentReport, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var out models.CommentReport
	err := s.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": models.ReportStatusPending},
		bson.M{"$set": bson.M{
			"status":     status,
			"reviewedBy": reviewedBy,
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

	// Distinguish missing vs already handled.
	n, err := s.col.CountDocuments(ctx, byID(id))
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrReportNotFound
	}
	return nil, ErrReportNotPending
}

func (s *MongoReportService) DeleteByUser(ctx context.Context, userID string) ([]string, error) {
	return deleteMatching(ctx, s.col, bson.M{"$or": bson.A{
		bson.M{"reporterId": userID},
		bson.M{"userId": userID},
	}})
}
