package services

import (
	"context"
	"errors"
	"log"
	"sort"
	"time"

	"github.com/dicoslang/backoffice/internal/models"
)

const defaultVoteDays = 30

// Voting keeps each word's likesCount in step with its like votes.
type Voting struct {
	votes VoteService
	words WordService
	tx    Transactor
}

func NewVoting(store *Store) *Voting {
	return &Voting{votes: store.Votes, words: store.Words, tx: store.Tx}
}

// Cast records a user's vote on a word. Repeating the same vote is a no-op
// returning the existing vote; an opposite vote replaces it under the same id.
func (v *Voting) Cast(ctx context.Context, req *models.CastVoteRequest) (*models.Vote, error) {
	var out *models.Vote
	err := v.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := v.words.GetByID(ctx, req.WordID); err != nil {
			return err
		}
		existing, err := v.votes.FindByUserAndWord(ctx, req.UserID, req.WordID)
		switch {
		case err == nil && existing.Value == req.Value:
			out = existing
			return nil
		case err == nil:
			if existing.Value == models.VoteLike {
				if err := v.words.AdjustLikes(ctx, req.WordID, -1); err != nil {
					return err
				}
			}
			existing.Value = req.Value
			existing.CreatedAt = time.Now().UTC()
			if out, err = v.votes.Save(ctx, existing); err != nil {
				return err
			}
		case errors.Is(err, ErrVoteNotFound):
			if out, err = v.votes.Save(ctx, &models.Vote{
				UserID: req.UserID,
				WordID: req.WordID,
				Value:  req.Value,
			}); err != nil {
				return err
			}
		default:
			return err
		}

		if req.Value == models.VoteLike {
			return v.words.AdjustLikes(ctx, req.WordID, 1)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrWordNotFound) {
			log.Printf("[Cast] user=%s word=%s err=%v", req.UserID, req.WordID, err)
		}
		return nil, err
	}
	return out, nil
}

// Delete removes a vote, taking a like back from its word.
func (v *Voting) Delete(ctx context.Context, id string) error {
	return v.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		vote, err := v.votes.Delete(ctx, id)
		if err != nil {
			return err
		}
		if vote.Value != models.VoteLike {
			return nil
		}
		err = v.words.AdjustLikes(ctx, vote.WordID, -1)
		if errors.Is(err, ErrWordNotFound) {
			return nil
		}
		return err
	})
}

// VotesByDate buckets the votes of the last days by UTC day, oldest first.
// Days without votes are omitted.
func (v *Voting) VotesByDate(ctx context.Context, days int) ([]models.DateCount, error) {
	if days <= 0 {
		days = defaultVoteDays
	}
	since := time.Now().UTC().AddDate(0, 0, -days)
	votes, err := v.votes.ListSince(ctx, since)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, vote := range votes {
		counts[DayKey(vote.CreatedAt)]++
	}
	out := make([]models.DateCount, 0, len(counts))
	for day, n := range counts {
		out = append(out, models.DateCount{Date: day, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}
