// Package metrics holds the Prometheus counters exposed on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ModerationActions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dicoslang",
		Name:      "moderation_actions_total",
		Help:      "Moderation actions taken on comment reports, by action.",
	}, []string{"action"})

	WarningsIssued = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "dicoslang",
		Name:      "warnings_issued_total",
		Help:      "Warnings added to users by moderators.",
	})

	UsersBanned = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dicoslang",
		Name:      "users_banned_total",
		Help:      "Users banned, by source (warnings or manual).",
	}, []string{"source"})

	SuggestionReviews = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dicoslang",
		Name:      "suggestion_reviews_total",
		Help:      "Suggestion reviews, by outcome.",
	}, []string{"outcome"})

	WordOfTheDayPicks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "dicoslang",
		Name:      "word_of_the_day_picks_total",
		Help:      "Words of the day picked.",
	})
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
