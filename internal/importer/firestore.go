package importer

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"google.golang.org/api/iterator"

	"github.com/dicoslang/backoffice/internal/services"
)

// FirestoreImporter copies the legacy Firestore collections into MongoDB.
// Documents keep their Firestore id as _id, so re-running is idempotent.
type FirestoreImporter struct {
	Source      *firestore.Client
	Target      *mongo.Database
	Collections []string
}

func NewFirestoreImporter(source *firestore.Client, target *mongo.Database) *FirestoreImporter {
	return &FirestoreImporter{
		Source:      source,
		Target:      target,
		Collections: services.AllCollections,
	}
}

// Run imports every configured collection and returns the count per name.
func (im *FirestoreImporter) Run(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int, len(im.Collections))
	for _, name := range im.Collections {
		n, err := im.importCollection(ctx, name)
		counts[name] = n
		if err != nil {
			return counts, fmt.Errorf("import %s: %w", name, err)
		}
		log.Printf("[import] collection=%s documents=%d", name, n)
	}
	return counts, nil
}

func (im *FirestoreImporter) importCollection(ctx context.Context, name string) (int, error) {
	iter := im.Source.Collection(name).Documents(ctx)
	defer iter.Stop()

	col := im.Target.Collection(name)
	upsert := options.Replace().SetUpsert(true)
	n := 0
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			return n, nil
		}
		if err != nil {
			return n, err
		}

		doc := ToDocument(snap.Ref.ID, snap.Data())
		if _, err := col.ReplaceOne(ctx, bson.M{"_id": snap.Ref.ID}, doc, upsert); err != nil {
			return n, fmt.Errorf("document %s: %w", snap.Ref.ID, err)
		}
		n++
	}
}

// ToDocument turns Firestore field data into a Mongo document keyed by id.
// The redundant "id" field the web app stored is dropped and document
// references collapse to the referenced id.
func ToDocument(id string, data map[string]interface{}) bson.M {
	doc := bson.M{"_id": id}
	for k, v := range data {
		if k == "id" || k == "_id" {
			continue
		}
		doc[k] = normalizeValue(v)
	}
	return doc
}

func normalizeValue(v interface{}) interface{} {
	switch val := v.(type) {
	case *firestore.DocumentRef:
		if val == nil {
			return nil
		}
		return val.ID
	case map[string]interface{}:
		out := make(bson.M, len(val))
		for k, inner := range val {
			out[k] = normalizeValue(inner)
		}
		return out
	case []interface{}:
		out := make(bson.A, len(val))
		for i, inner := range val {
			out[i] = normalizeValue(inner)
		}
		return out
	default:
		return v
	}
}
