package services

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// Store bundles one accessor per collection plus the transaction runner.
type Store struct {
	Users         UserService
	Words         WordService
	Comments      CommentService
	Reports       ReportService
	Suggestions   SuggestionService
	Votes         VoteService
	WordsOfTheDay WordOfTheDayService
	Tx            Transactor
}

// NewMemoryStore returns a Store backed by process memory.
func NewMemoryStore() *Store {
	return &Store{
		Users:         NewMemoryUserService(),
		Words:         NewMemoryWordService(),
		Comments:      NewMemoryCommentService(),
		Reports:       NewMemoryReportService(),
		Suggestions:   NewMemorySuggestionService(),
		Votes:         NewMemoryVoteService(),
		WordsOfTheDay: NewMemoryWordOfTheDayService(),
		Tx:            NoTx{},
	}
}

// Transactor runs fn as one unit when the datastore supports it.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// NoTx runs fn directly. Steps already applied stay applied if fn fails.
type NoTx struct{}

func (NoTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// MongoTx runs fn inside a multi-document transaction.
type MongoTx struct {
	client *mongo.Client
}

func NewMongoTx(client *mongo.Client) *MongoTx {
	return &MongoTx{client: client}
}

func (t *MongoTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	sess, err := t.client.StartSession()
	if err != nil {
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
