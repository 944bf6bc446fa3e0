package storage

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/dicoslang/backoffice/internal/services"
)

// ExportResult counts the documents written per collection.
type ExportResult struct {
	Counts map[string]int
}

type collectionDump struct {
	name string
	load func(ctx context.Context) (interface{}, int, error)
}

func dumps(store *services.Store) []collectionDump {
	return []collectionDump{
		{services.UsersCollection, func(ctx context.Context) (interface{}, int, error) {
			rows, err := store.Users.List(ctx)
			return rows, len(rows), err
		}},
		{services.WordsCollection, func(ctx context.Context) (interface{}, int, error) {
			rows, err := store.Words.List(ctx)
			return rows, len(rows), err
		}},
		{services.CommentsCollection, func(ctx context.Context) (interface{}, int, error) {
			rows, err := store.Comments.List(ctx)
			return rows, len(rows), err
		}},
		{services.ReportsCollection, func(ctx context.Context) (interface{}, int, error) {
			rows, err := store.Reports.ListByStatus(ctx, "")
			return rows, len(rows), err
		}},
		{services.SuggestionsCollection, func(ctx context.Context) (interface{}, int, error) {
			rows, err := store.Suggestions.ListByStatus(ctx, "")
			return rows, len(rows), err
		}},
		{services.VotesCollection, func(ctx context.Context) (interface{}, int, error) {
			rows, err := store.Votes.ListSince(ctx, time.Time{})
			return rows, len(rows), err
		}},
	}
}

// Export writes every back-office collection to sink, one document per
// collection. Word-of-the-day picks are derived data and are not exported.
func Export(ctx context.Context, store *services.Store, sink Sink) (*ExportResult, error) {
	result := &ExportResult{Counts: make(map[string]int)}

	for _, d := range dumps(store) {
		rows, n, err := d.load(ctx)
		if err != nil {
			return result, fmt.Errorf("load %s: %w", d.name, err)
		}
		if err := sink.Write(ctx, d.name, rows); err != nil {
			return result, err
		}
		result.Counts[d.name] = n
		log.Printf("[export] collection=%s documents=%d to=%s", d.name, n, sink.Location(d.name))
	}

	return result, nil
}
