package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/dicoslang/backoffice/internal/models"
	"github.com/dicoslang/backoffice/internal/services"
)

const requestTimeout = 10 * time.Second

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func contextWithTimeout(parent context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, d)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return false
	}
	return true
}

// decodeOptionalBody is decodeBody for endpoints whose body may be absent,
// including an empty chunked body.
func decodeOptionalBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if r.Body == nil || r.Body == http.NoBody {
		return true
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return false
	}
	return true
}

// validate writes a 400 with the field errors and returns false when any.
func validate(w http.ResponseWriter, tag string, errs map[string]string) bool {
	if len(errs) == 0 {
		return true
	}
	log.Printf("[%s] Validation errors: %v", tag, errs)
	writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errs))
	return false
}

var notFoundMessages = []struct {
	err error
	msg string
}{
	{services.ErrUserNotFound, "User not found"},
	{services.ErrWordNotFound, "Word not found"},
	{services.ErrCommentNotFound, "Comment not found"},
	{services.ErrReportNotFound, "Report not found"},
	{services.ErrSuggestionNotFound, "Suggestion not found"},
	{services.ErrVoteNotFound, "Vote not found"},
	{services.ErrNoActiveWords, "No active words"},
}

// writeServiceError maps accessor sentinels to 404/409/400 and anything
// else to a logged 500 carrying fallback.
func writeServiceError(w http.ResponseWriter, tag string, err error, fallback string) {
	for _, nf := range notFoundMessages {
		if errors.Is(err, nf.err) {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse(nf.msg))
			return
		}
	}
	switch {
	case errors.Is(err, services.ErrReportNotPending):
		writeJSON(w, http.StatusConflict, models.NewErrorResponse("Report already handled"))
	case errors.Is(err, services.ErrSuggestionNotPending):
		writeJSON(w, http.StatusConflict, models.NewErrorResponse("Suggestion already reviewed"))
	case errors.Is(err, services.ErrInvalidStatus):
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Unknown status"))
	default:
		log.Printf("[%s] Service error: %v", tag, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse(fallback))
	}
}

// queryInt reads a positive integer query parameter, or def.
func queryInt(r *http.Request, key string, def int) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || n <= 0 {
		return def
	}
	return n
}
