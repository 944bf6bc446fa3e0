package models

import (
	"strings"
	"time"
)

type CommentStatus string

const (
	CommentStatusActive  CommentStatus = "active"
	CommentStatusHidden  CommentStatus = "hidden"
	CommentStatusFlagged CommentStatus = "flagged"
)

func (s CommentStatus) Valid() bool {
	return s == CommentStatusActive || s == CommentStatusHidden || s == CommentStatusFlagged
}

// BlockedCommentText replaces the text of a comment blocked by a moderator.
const BlockedCommentText = "Ce commentaire a été bloqué par un modérateur."

type Comment struct {
	ID        string        `json:"id" bson:"_id"`
	WordID    string        `json:"wordId" bson:"wordId"`
	UserID    string        `json:"userId" bson:"userId"`
	Text      string        `json:"text" bson:"text"`
	Status    CommentStatus `json:"status" bson:"status"`
	CreatedAt time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt" bson:"updatedAt"`
}

// CommentWithAuthor is a comment row with its author's pseudo resolved.
type CommentWithAuthor struct {
	Comment
	AuthorName string `json:"authorName"`
}

type CreateCommentRequest struct {
	WordID string `json:"wordId"`
	UserID string `json:"userId"`
	Text   string `json:"text"`
}

func (r *CreateCommentRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.WordID == "" {
		errors["wordId"] = "Word is required"
	}
	if r.UserID == "" {
		errors["userId"] = "User is required"
	}
	if strings.TrimSpace(r.Text) == "" {
		errors["text"] = "Text is required"
	}

	return errors
}

type UpdateCommentRequest struct {
	Text string `json:"text"`
}

type ReportStatus string

const (
	ReportStatusPending   ReportStatus = "pending"
	ReportStatusReviewed  ReportStatus = "reviewed"
	ReportStatusDismissed ReportStatus = "dismissed"
)

// CommentReport is a user's flag on a comment awaiting moderation.
type CommentReport struct {
	ID         string       `json:"id" bson:"_id"`
	CommentID  string       `json:"commentId" bson:"commentId"`
	ReporterID string       `json:"reporterId" bson:"reporterId"`
	UserID     string       `json:"userId" bson:"userId"`
	Reason     string       `json:"reason,omitempty" bson:"reason,omitempty"`
	Status     ReportStatus `json:"status" bson:"status"`
	ReviewedBy string       `json:"reviewedBy,omitempty" bson:"reviewedBy,omitempty"`
	CreatedAt  time.Time    `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt" bson:"updatedAt"`
}

// ReportView is a pending report with the names and comment text resolved.
type ReportView struct {
	CommentReport
	ReporterName string     `json:"reporterName"`
	UserName     string     `json:"userName"`
	CommentText  string     `json:"commentText"`
	CommentDate  *time.Time `json:"commentDate,omitempty"`
}

type ReportCommentRequest struct {
	ReporterID string `json:"reporterId"`
	Reason     string `json:"reason"`
}

func (r *ReportCommentRequest) Validate() map[string]string {
	errors := make(map[string]string)
	if r.ReporterID == "" {
		errors["reporterId"] = "Reporter is required"
	}
	return errors
}

// WarnOutcome is what a block-and-warn action did to the reported user.
type WarnOutcome struct {
	UserID   string `json:"userId"`
	Warnings int    `json:"warnings"`
	Banned   bool   `json:"banned"`
}
