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

type MongoUserService struct {
	col *mongo.Collection
}

func NewMongoUserService(ctx context.Context, db *mongo.Database) *MongoUserService {
	col := db.Collection(UsersCollection)
	ensureIndexes(ctx, col, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}},
		{Keys: bson.D{{Key: "pseudo", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	})
	return &MongoUserService{col: col}
}

func (s *MongoUserService) Save(ctx context.Context, u *models.User) (*models.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	out := prepareUser(u, time.Now().UTC())
	if _, err := s.col.ReplaceOne(ctx, byID(out.ID), out, options.Replace().SetUpsert(true)); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MongoUserService) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var u models.User
	if err := s.col.FindOne(ctx, filter).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *MongoUserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.findOne(ctx, byID(id))
}

func (s *MongoUserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *MongoUserService) List(ctx context.Context) ([]*models.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cur, err := s.col.Find(ctx, bson.M{}, newestFirst)
	if err != nil {
		return nil, err
	}
	return decodeAll[models.User](ctx, cur)
}

func (s *MongoUserService) Count(ctx context.Context, status models.UserStatus) (int, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	n, err := s.col.CountDocuments(ctx, filter)
	return int(n), err
}

func (s *MongoUserService) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := s.col.DeleteOne(ctx, byID(id))
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

// updateOne applies update to one user and maps a miss to ErrUserNotFound.
func (s *MongoUserService) updateOne(ctx context.Context, id string, update interface{}) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := s.col.UpdateOne(ctx, byID(id), update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *MongoUserService) UpdateStatus(ctx context.Context, id string, status models.UserStatus) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	set := bson.M{"status": status, "updatedAt": time.Now().UTC()}
	if status != models.UserStatusBanned {
		set["banReason"] = ""
	}
	return s.updateOne(ctx, id, bson.M{"$set": set})
}

func (s *MongoUserService) AddFavorite(ctx context.Context, userID, wordID string) error {
	return s.updateOne(ctx, userID, bson.M{
		"$addToSet": bson.M{"favoris": wordID},
		"$set":      bson.M{"updatedAt": time.Now().UTC()},
	})
}

func (s *MongoUserService) RemoveFavorite(ctx context.Context, userID, wordID string) error {
	return s.updateOne(ctx, userID, bson.M{
		"$pull": bson.M{"favoris": wordID},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
}

func (s *MongoUserService) TouchLastLogin(ctx context.Context, id string) error {
	now := time.Now().UTC()
	return s.updateOne(ctx, id, bson.M{"$set": bson.M{"lastLogin": now, "updatedAt": now}})
}

// AddWarning runs as a single pipeline update so that two concurrent
// warnings can never both read the old count.
func (s *MongoUserService) AddWarning(ctx context.Context, id, reason string) (*models.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	next := bson.M{"$add": bson.A{bson.M{"$ifNull": bson.A{"$warnings", 0}}, 1}}
	reachesBan := bson.M{"$gte": bson.A{next, models.WarningBanThreshold}}
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"warnings": next,
			"status": bson.M{"$cond": bson.A{
				reachesBan,
				string(models.UserStatusBanned),
				bson.M{"$ifNull": bson.A{"$status", string(models.UserStatusActive)}},
			}},
			"banReason": bson.M{"$cond": bson.A{
				reachesBan,
				bson.M{"$literal": warningBanReason(reason)},
				bson.M{"$ifNull": bson.A{"$banReason", ""}},
			}},
			"updatedAt": time.Now().UTC(),
		}}},
	}

	var out models.User
	err := s.col.FindOneAndUpdate(ctx, byID(id), pipeline,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &out, nil
}

func (s *MongoUserService) Ban(ctx context.Context, id, reason string) error {
	return s.updateOne(ctx, id, bson.M{"$set": bson.M{
		"status":    models.UserStatusBanned,
		"banReason": banReasonOrDefault(reason),
		"updatedAt": time.Now().UTC(),
	}})
}

func (s *MongoUserService) Unban(ctx context.Context, id string) error {
	return s.updateOne(ctx, id, bson.M{"$set": bson.M{
		"status":    models.UserStatusActive,
		"banReason": "",
		"updatedAt": time.Now().UTC(),
	}})
}

func (s *MongoUserService) ResetWarnings(ctx context.Context, id string) error {
	return s.updateOne(ctx, id, bson.M{"$set": bson.M{"warnings": 0, "updatedAt": time.Now().UTC()}})
}

func (s *MongoUserService) FindBanned(ctx context.Context, email, username string) (*models.User, error) {
	if email != "" {
		u, err := s.findOne(ctx, bson.M{"email": email, "status": models.UserStatusBanned})
		if err == nil || !errors.Is(err, ErrUserNotFound) {
			return u, err
		}
	}
	if username != "" {
		return s.findOne(ctx, bson.M{"pseudo": username, "status": models.UserStatusBanned})
	}
	return nil, ErrUserNotFound
}
