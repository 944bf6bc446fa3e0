package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/dicoslang/backoffice/internal/metrics"
	"github.com/dicoslang/backoffice/internal/models"
)

// SuggestionReview turns user suggestions into pending dictionary words.
type SuggestionReview struct {
	suggestions SuggestionService
	words       WordService
	tx          Transactor
}

func NewSuggestionReview(store *Store) *SuggestionReview {
	return &SuggestionReview{
		suggestions: store.Suggestions,
		words:       store.Words,
		tx:          store.Tx,
	}
}

func (r *SuggestionReview) Submit(ctx context.Context, req *models.CreateSuggestionRequest) (*models.Suggestion, error) {
	return r.suggestions.Create(ctx, &models.Suggestion{
		UserID:     req.UserID,
		WordID:     req.WordID,
		Text:       strings.TrimSpace(req.Text),
		Definition: strings.TrimSpace(req.Definition),
		Example:    strings.TrimSpace(req.Example),
		Origin:     strings.TrimSpace(req.Origin),
	})
}

// Approve marks the suggestion approved and creates a pending word from it.
// The word still needs an editor to activate it.
func (r *SuggestionReview) Approve(ctx context.Context, id, reviewerID, note string) (*models.ApprovalResult, error) {
	var result models.ApprovalResult
	err := r.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		sg, err := r.suggestions.Review(ctx, id, models.SuggestionStatusApproved, reviewerID, note)
		if err != nil {
			return err
		}
		w, err := r.words.Save(ctx, &models.Word{
			Text:       sg.Text,
			Definition: sg.Definition,
			Example:    sg.Example,
			Origin:     sg.Origin,
			Status:     models.WordStatusPending,
			CreatedBy:  sg.UserID,
		})
		if err != nil {
			return fmt.Errorf("create word from suggestion %s: %w", sg.ID, err)
		}
		result = models.ApprovalResult{Suggestion: sg, Word: w}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrSuggestionNotFound) && !errors.Is(err, ErrSuggestionNotPending) {
			log.Printf("[Approve] suggestion=%s err=%v", id, err)
		}
		return nil, err
	}

	metrics.SuggestionReviews.WithLabelValues("approved").Inc()
	log.Printf("[suggestions] approved suggestion=%s word=%s reviewer=%s", id, result.Word.ID, reviewerID)
	return &result, nil
}

// Reject marks the suggestion rejected. No word is created.
func (r *SuggestionReview) Reject(ctx context.Context, id, reviewerID, note string) (*models.Suggestion, error) {
	sg, err := r.suggestions.Review(ctx, id, models.SuggestionStatusRejected, reviewerID, note)
	if err != nil {
		return nil, err
	}
	metrics.SuggestionReviews.WithLabelValues("rejected").Inc()
	log.Printf("[suggestions] rejected suggestion=%s reviewer=%s", id, reviewerID)
	return sg, nil
}

// Stats counts suggestions per status. ApprovalRate is a percentage.
func (r *SuggestionReview) Stats(ctx context.Context) (*models.SuggestionStats, error) {
	all, err := r.suggestions.ListByStatus(ctx, "")
	if err != nil {
		return nil, err
	}

	stats := &models.SuggestionStats{Total: len(all)}
	for _, sg := range all {
		switch sg.Status {
		case models.SuggestionStatusPending:
			stats.Pending++
		case models.SuggestionStatusApproved:
			stats.Approved++
		case models.SuggestionStatusRejected:
			stats.Rejected++
		}
	}
	if stats.Total > 0 {
		stats.ApprovalRate = float64(stats.Approved) / float64(stats.Total) * 100
	}
	return stats, nil
}
