package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dicoslang/backoffice/internal/models"
	"github.com/dicoslang/backoffice/internal/services"
)

type VoteHandler struct {
	votes  services.VoteService
	voting *services.Voting
}

func NewVoteHandler(store *services.Store, voting *services.Voting) *VoteHandler {
	return &VoteHandler{votes: store.Votes, voting: voting}
}

func (h *VoteHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	var req models.CastVoteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !validate(w, "CastVote", req.Validate()) {
		return
	}

	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	vote, err := h.voting.Cast(ctx, &req)
	if err != nil {
		writeServiceError(w, "CastVote", err, "Failed to cast vote")
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(vote))
}

func (h *VoteHandler) DeleteVote(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if err := h.voting.Delete(ctx, chi.URLParam(r, "voteId")); err != nil {
		writeServiceError(w, "DeleteVote", err, "Failed to delete vote")
		return
	}
	writeJSON(w, http.StatusOK, models.NewMessageResponse("Vote deleted"))
}

// ListVotes needs ?userId= or ?wordId=; with both it returns the user's vote
// on that word.
func (h *VoteHandler) ListVotes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	userID, wordID := q.Get("userId"), q.Get("wordId")

	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	switch {
	case userID != "" && wordID != "":
		vote, err := h.votes.FindByUserAndWord(ctx, userID, wordID)
		if err != nil {
			writeServiceError(w, "GetVote", err, "Failed to get vote")
			return
		}
		writeJSON(w, http.StatusOK, models.NewSuccessResponse(vote))
	case userID != "":
		votes, err := h.votes.ListByUser(ctx, userID)
		if err != nil {
			writeServiceError(w, "ListVotes", err, "Failed to list votes")
			return
		}
		writeJSON(w, http.StatusOK, models.NewSuccessResponse(votes))
	case wordID != "":
		votes, err := h.votes.ListByWord(ctx, wordID)
		if err != nil {
			writeServiceError(w, "ListVotes", err, "Failed to list votes")
			return
		}
		writeJSON(w, http.StatusOK, models.NewSuccessResponse(votes))
	default:
		validate(w, "ListVotes", map[string]string{"userId": "userId or wordId is required"})
	}
}
