package importer

import (
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestToDocument(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	doc := ToDocument("comment-exemple-id", map[string]interface{}{
		"id":        "comment-exemple-id",
		"userId":    "user-standard-id",
		"word":      &firestore.DocumentRef{ID: "mot-exemple-id"},
		"createdAt": created,
		"meta": map[string]interface{}{
			"author": &firestore.DocumentRef{ID: "user-standard-id"},
		},
		"tags": []interface{}{"a", &firestore.DocumentRef{ID: "b"}},
	})

	assert.Equal(t, "comment-exemple-id", doc["_id"])
	assert.NotContains(t, doc, "id")
	assert.Equal(t, "user-standard-id", doc["userId"])
	assert.Equal(t, "mot-exemple-id", doc["word"])
	assert.Equal(t, created, doc["createdAt"])
	assert.Equal(t, bson.M{"author": "user-standard-id"}, doc["meta"])
	assert.Equal(t, bson.A{"a", "b"}, doc["tags"])
}
