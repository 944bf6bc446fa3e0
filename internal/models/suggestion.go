package models

import (
	"strings"
	"time"
)

type SuggestionStatus string

const (
	SuggestionStatusPending  SuggestionStatus = "pending"
	SuggestionStatusApproved SuggestionStatus = "approved"
	SuggestionStatusRejected SuggestionStatus = "rejected"
)

// Suggestion is a user-submitted candidate word awaiting review.
type Suggestion struct {
	ID         string           `json:"id" bson:"_id"`
	UserID     string           `json:"userId" bson:"userId"`
	WordID     string           `json:"wordId,omitempty" bson:"wordId,omitempty"`
	Text       string           `json:"text" bson:"text"`
	Definition string           `json:"definition" bson:"definition"`
	Example    string           `json:"exemple,omitempty" bson:"exemple,omitempty"`
	Origin     string           `json:"origine,omitempty" bson:"origine,omitempty"`
	Status     SuggestionStatus `json:"status" bson:"status"`
	ReviewedBy string           `json:"reviewedBy,omitempty" bson:"reviewedBy,omitempty"`
	ReviewNote string           `json:"reviewNote,omitempty" bson:"reviewNote,omitempty"`
	CreatedAt  time.Time        `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt" bson:"updatedAt"`
}

type SuggestionWithAuthor struct {
	Suggestion
	AuthorName string `json:"authorName"`
}

type CreateSuggestionRequest struct {
	UserID     string `json:"userId"`
	WordID     string `json:"wordId"`
	Text       string `json:"text"`
	Definition string `json:"definition"`
	Example    string `json:"exemple"`
	Origin     string `json:"origine"`
}

func (r *CreateSuggestionRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.UserID == "" {
		errors["userId"] = "User is required"
	}
	if strings.TrimSpace(r.Text) == "" {
		errors["text"] = "Text is required"
	}
	if strings.TrimSpace(r.Definition) == "" {
		errors["definition"] = "Definition is required"
	}

	return errors
}

type ReviewRequest struct {
	Note string `json:"note"`
}

// ApprovalResult is returned when a suggestion is approved.
type ApprovalResult struct {
	Suggestion *Suggestion `json:"suggestion"`
	Word       *Word       `json:"word"`
}

type SuggestionStats struct {
	Total        int     `json:"total"`
	Pending      int     `json:"pending"`
	Approved     int     `json:"approved"`
	Rejected     int     `json:"rejected"`
	ApprovalRate float64 `json:"approvalRate"`
}
