package services

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names shared with the mobile app.
const (
	UsersCollection        = "users"
	WordsCollection        = "words"
	CommentsCollection     = "comments"
	ReportsCollection      = "comment-reports"
	SuggestionsCollection  = "suggestions"
	VotesCollection        = "votes"
	WordOfTheDayCollection = "word-of-the-day"
)

// AllCollections lists every collection the back-office owns, in export order.
var AllCollections = []string{
	UsersCollection,
	WordsCollection,
	CommentsCollection,
	ReportsCollection,
	SuggestionsCollection,
	VotesCollection,
	WordOfTheDayCollection,
}

type MongoOptions struct {
	URI      string
	Database string
	// ForceTLS12 pins TLS 1.2; Atlas negotiation fails from some hosts otherwise.
	ForceTLS12 bool
	// Transactions requires a replica set or mongos.
	Transactions bool
}

// ConnectMongo opens and pings a client.
func ConnectMongo(ctx context.Context, opts MongoOptions) (*mongo.Client, error) {
	clientOpts := options.Client().ApplyURI(opts.URI).SetServerSelectionTimeout(10 * time.Second)
	if opts.ForceTLS12 {
		clientOpts.SetTLSConfig(&tls.Config{
			MinVersion: tls.VersionTLS12,
			MaxVersion: tls.VersionTLS12,
		})
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// OpenMongoStore connects and builds every Mongo accessor over one client.
// The returned close func disconnects the client.
func OpenMongoStore(ctx context.Context, opts MongoOptions) (*Store, func(context.Context) error, error) {
	client, err := ConnectMongo(ctx, opts)
	if err != nil {
		return nil, nil, err
	}
	db := client.Database(opts.Database)

	var tx Transactor = NoTx{}
	if opts.Transactions {
		tx = &MongoTx{client: client}
	}

	store := &Store{
		Users:         NewMongoUserService(ctx, db),
		Words:         NewMongoWordService(ctx, db),
		Comments:      NewMongoCommentService(ctx, db),
		Reports:       NewMongoReportService(ctx, db),
		Suggestions:   NewMongoSuggestionService(ctx, db),
		Votes:         NewMongoVoteService(ctx, db),
		WordsOfTheDay: NewMongoWordOfTheDayService(db),
		Tx:            tx,
	}

	log.Printf("MongoDB connected: db=%s transactions=%v", opts.Database, opts.Transactions)
	return store, client.Disconnect, nil
}

// ensureIndexes creates indexes best-effort; a failure only costs speed.
func ensureIndexes(ctx context.Context, col *mongo.Collection, models []mongo.IndexModel) {
	if _, err := col.Indexes().CreateMany(ctx, models); err != nil {
		log.Printf("[mongo] index creation failed collection=%s err=%v", col.Name(), err)
	}
}

// decodeAll drains a cursor into a slice of pointers.
func decodeAll[T any](ctx context.Context, cur *mongo.Cursor) ([]*T, error) {
	defer cur.Close(ctx)

	out := make([]*T, 0)
	for cur.Next(ctx) {
		var doc T
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, &doc)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// queryTimeout bounds a single accessor call.
const queryTimeout = 10 * time.Second

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, queryTimeout)
}

var newestFirst = options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

// byID builds the primary key filter.
func byID(id string) bson.M {
	return bson.M{"_id": id}
}

// deleteMatching removes every document matching filter and returns their ids.
// Ids are collected first so the caller can report what went away.
func deleteMatching(ctx context.Context, col *mongo.Collection, filter bson.M) ([]string, error) {
	cur, err := col.Find(ctx, filter, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	docs, err := decodeAll[struct {
		ID string `bson:"_id"`
	}](ctx, cur)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	if len(ids) == 0 {
		return ids, nil
	}
	if _, err := col.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}}); err != nil {
		return nil, fmt.Errorf("delete from %s: %w", col.Name(), err)
	}
	return ids, nil
}
