package models

import (
	"strings"
	"time"
)

type WordStatus string

const (
	WordStatusActive   WordStatus = "active"
	WordStatusPending  WordStatus = "pending"
	WordStatusRejected WordStatus = "rejected"
)

func (s WordStatus) Valid() bool {
	return s == WordStatusActive || s == WordStatusPending || s == WordStatusRejected
}

type Word struct {
	ID         string     `json:"id" bson:"_id"`
	Text       string     `json:"text" bson:"text"`
	Definition string     `json:"definition" bson:"definition"`
	Example    string     `json:"exemple,omitempty" bson:"exemple,omitempty"`
	Origin     string     `json:"origine,omitempty" bson:"origine,omitempty"`
	Status     WordStatus `json:"status" bson:"status"`
	CreatedBy  string     `json:"createdBy,omitempty" bson:"createdBy,omitempty"`
	LikesCount int        `json:"likesCount" bson:"likesCount"`
	ViewsCount int        `json:"viewsCount" bson:"viewsCount"`
	Tags       []string   `json:"tags" bson:"tags"`
	CreatedAt  time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// WordWithAuthor is a word row with its author's pseudo resolved.
type WordWithAuthor struct {
	Word
	AuthorName string `json:"authorName,omitempty"`
}

type SaveWordRequest struct {
	Text       string     `json:"text"`
	Definition string     `json:"definition"`
	Example    string     `json:"exemple"`
	Origin     string     `json:"origine"`
	Status     WordStatus `json:"status"`
	Tags       []string   `json:"tags"`
}

func (r *SaveWordRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if strings.TrimSpace(r.Text) == "" {
		errors["text"] = "Text is required"
	}
	if strings.TrimSpace(r.Definition) == "" {
		errors["definition"] = "Definition is required"
	}
	if r.Status != "" && !r.Status.Valid() {
		errors["status"] = "Unknown status"
	}

	return errors
}

// Apply copies the editable fields onto w. Counters and authorship are kept.
func (r *SaveWordRequest) Apply(w *Word) {
	w.Text = strings.TrimSpace(r.Text)
	w.Definition = strings.TrimSpace(r.Definition)
	w.Example = strings.TrimSpace(r.Example)
	w.Origin = strings.TrimSpace(r.Origin)
	w.Status = r.Status
	if w.Status == "" {
		w.Status = WordStatusPending
	}
	w.Tags = r.Tags
}

// WordOfTheDay records which word was picked for a UTC day.
type WordOfTheDay struct {
	ID        string    `json:"id" bson:"_id"` // YYYY-MM-DD
	WordID    string    `json:"wordId" bson:"wordId"`
	Date      time.Time `json:"date" bson:"date"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	Word      *Word     `json:"word,omitempty" bson:"-"`
}
