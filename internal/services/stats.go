package services

import (
	"context"

	"github.com/dicoslang/backoffice/internal/models"
)

const topWordsLimit = 5

// StatsService assembles the dashboard counters.
type StatsService struct {
	store  *Store
	voting *Voting
}

func NewStatsService(store *Store) *StatsService {
	return &StatsService{store: store, voting: NewVoting(store)}
}

func (s *StatsService) Dashboard(ctx context.Context, days int) (*models.DashboardStats, error) {
	var (
		out models.DashboardStats
		err error
	)

	counts := []struct {
		dst *int
		fn  func() (int, error)
	}{
		{&out.TotalUsers, func() (int, error) { return s.store.Users.Count(ctx, "") }},
		{&out.ActiveUsers, func() (int, error) { return s.store.Users.Count(ctx, models.UserStatusActive) }},
		{&out.BannedUsers, func() (int, error) { return s.store.Users.Count(ctx, models.UserStatusBanned) }},
		{&out.TotalWords, func() (int, error) { return s.store.Words.Count(ctx, "") }},
		{&out.ActiveWords, func() (int, error) { return s.store.Words.Count(ctx, models.WordStatusActive) }},
		{&out.TotalVotes, func() (int, error) { return s.store.Votes.Count(ctx) }},
		{&out.PendingSuggestions, func() (int, error) { return s.store.Suggestions.Count(ctx, models.SuggestionStatusPending) }},
		{&out.PendingReports, func() (int, error) { return s.store.Reports.Count(ctx, models.ReportStatusPending) }},
	}
	for _, c := range counts {
		if *c.dst, err = c.fn(); err != nil {
			return nil, err
		}
	}

	if out.VotesByDate, err = s.voting.VotesByDate(ctx, days); err != nil {
		return nil, err
	}

	top, err := s.store.Words.Trending(ctx, topWordsLimit)
	if err != nil {
		return nil, err
	}
	out.TopWords = make([]models.TopWord, 0, len(top))
	for _, w := range top {
		out.TopWords = append(out.TopWords, models.TopWord{ID: w.ID, Text: w.Text, LikesCount: w.LikesCount})
	}
	return &out, nil
}

// UserSummaries returns every user with comment, suggestion and vote counts.
func (s *StatsService) UserSummaries(ctx context.Context) ([]*models.UserSummary, error) {
	users, err := s.store.Users.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*models.UserSummary, 0, len(users))
	for _, u := range users {
		sum := &models.UserSummary{User: *u}
		if sum.CommentsCount, err = s.store.Comments.CountByUser(ctx, u.ID); err != nil {
			return nil, err
		}
		suggestions, err := s.store.Suggestions.ListByUser(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		sum.SuggestionsCount = len(suggestions)
		if sum.VotesCount, err = s.store.Votes.CountByUser(ctx, u.ID); err != nil {
			return nil, err
		}
		out = append(out, sum)
	}
	return out, nil
}
