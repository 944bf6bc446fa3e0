package models

import "time"

const (
	VoteLike    = 1
	VoteDislike = -1
)

type Vote struct {
	ID        string    `json:"id" bson:"_id"`
	UserID    string    `json:"userId" bson:"userId"`
	WordID    string    `json:"wordId" bson:"wordId"`
	Value     int       `json:"value" bson:"value"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

type CastVoteRequest struct {
	UserID string `json:"userId"`
	WordID string `json:"wordId"`
	Value  int    `json:"value"`
}

func (r *CastVoteRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.UserID == "" {
		errors["userId"] = "User is required"
	}
	if r.WordID == "" {
		errors["wordId"] = "Word is required"
	}
	if r.Value != VoteLike && r.Value != VoteDislike {
		errors["value"] = "Value must be 1 or -1"
	}

	return errors
}

// DateCount is one bucket of the votes-by-date chart.
type DateCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type TopWord struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	LikesCount int    `json:"likesCount"`
}

// DashboardStats feeds the statistics page.
type DashboardStats struct {
	TotalUsers         int         `json:"totalUsers"`
	ActiveUsers        int         `json:"activeUsers"`
	BannedUsers        int         `json:"bannedUsers"`
	TotalWords         int         `json:"totalWords"`
	ActiveWords        int         `json:"activeWords"`
	TotalVotes         int         `json:"totalVotes"`
	PendingSuggestions int         `json:"pendingSuggestions"`
	PendingReports     int         `json:"pendingReports"`
	VotesByDate        []DateCount `json:"votesByDate"`
	TopWords           []TopWord   `json:"topWords"`
}

// AccountDeletion lists what was removed with a user.
type AccountDeletion struct {
	UserID        string   `json:"userId"`
	CommentIDs    []string `json:"commentIds"`
	VoteIDs       []string `json:"voteIds"`
	SuggestionIDs []string `json:"suggestionIds"`
	ReportIDs     []string `json:"reportIds"`
}
