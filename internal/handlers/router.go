package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	appMiddleware "github.com/dicoslang/backoffice/internal/middleware"
	"github.com/dicoslang/backoffice/internal/metrics"
	"github.com/dicoslang/backoffice/internal/models"
	"github.com/dicoslang/backoffice/internal/services"
)

type RouterConfig struct {
	Store          *services.Store
	Verifier       appMiddleware.TokenVerifier
	PickCache      services.PickCache // optional
	JWTSecret      string
	JWTExpiration  time.Duration
	AllowedOrigins []string
}

// NewRouter wires every handler under /api plus /health and /metrics.
func NewRouter(cfg RouterConfig) http.Handler {
	store := cfg.Store
	moderation := services.NewModerationService(store)
	review := services.NewSuggestionReview(store)
	stats := services.NewStatsService(store)
	wotd := services.NewWordOfTheDay(store, cfg.PickCache)

	authHandler := NewAuthHandler(store.Users, cfg.JWTSecret, cfg.JWTExpiration)
	userHandler := NewUserHandler(store)
	accountHandler := NewAccountHandler(services.NewAccountService(store))
	favoriteHandler := NewFavoriteHandler(services.NewFavoriteService(store))
	wordHandler := NewWordHandler(store)
	commentHandler := NewCommentHandler(store, moderation)
	moderationHandler := NewModerationHandler(moderation)
	suggestionHandler := NewSuggestionHandler(store, review)
	voteHandler := NewVoteHandler(store, services.NewVoting(store))
	statsHandler := NewStatsHandler(stats, wotd)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", metrics.Handler())

	staff := appMiddleware.RequireRole(models.RoleAdmin, models.RoleEditor)
	admin := appMiddleware.RequireRole(models.RoleAdmin)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(appMiddleware.Authenticate(cfg.Verifier, store.Users))

			r.With(staff).Get("/auth/me", authHandler.Me)

			// Editors: dictionary content.
			r.Group(func(r chi.Router) {
				r.Use(staff)

				r.Route("/words", func(r chi.Router) {
					r.Get("/", wordHandler.ListWords)
					r.Post("/", wordHandler.CreateWord)
					r.Get("/search", wordHandler.Search)
					r.Get("/trending", wordHandler.Trending)

					r.Route("/{wordId}", func(r chi.Router) {
						r.Get("/", wordHandler.GetWord)
						r.Put("/", wordHandler.UpdateWord)
						r.Delete("/", wordHandler.DeleteWord)
						r.Put("/status", wordHandler.UpdateStatus)
						r.Post("/view", wordHandler.RecordView)
						r.Get("/comments", wordHandler.ListComments)
					})
				})

				r.Route("/suggestions", func(r chi.Router) {
					r.Get("/", suggestionHandler.ListSuggestions)
					r.Post("/", suggestionHandler.CreateSuggestion)
					r.Get("/stats", suggestionHandler.Stats)

					r.Route("/{suggestionId}", func(r chi.Router) {
						r.Get("/", suggestionHandler.GetSuggestion)
						r.Delete("/", suggestionHandler.DeleteSuggestion)
						r.Post("/approve", suggestionHandler.Approve)
						r.Post("/reject", suggestionHandler.Reject)
					})
				})

				r.Get("/word-of-the-day", statsHandler.WordOfTheDay)
				r.Post("/word-of-the-day/rotate", statsHandler.RotateWordOfTheDay)
			})

			// Admins: people, comments, moderation and statistics.
			r.Group(func(r chi.Router) {
				r.Use(admin)

				r.Route("/users", func(r chi.Router) {
					r.Get("/", userHandler.ListUsers)
					r.Post("/", userHandler.CreateUser)
					r.Get("/banned-check", userHandler.BannedCheck)

					r.Route("/{userId}", func(r chi.Router) {
						r.Get("/", userHandler.GetUser)
						r.Put("/", userHandler.UpdateUser)
						r.Delete("/", accountHandler.DeleteAccount)
						r.Put("/status", userHandler.UpdateStatus)
						r.Post("/ban", userHandler.Ban)
						r.Post("/unban", userHandler.Unban)
						r.Post("/warnings/reset", userHandler.ResetWarnings)

						r.Get("/favorites", favoriteHandler.ListFavorites)
						r.Post("/favorites/{wordId}", favoriteHandler.AddFavorite)
						r.Delete("/favorites/{wordId}", favoriteHandler.RemoveFavorite)
					})
				})

				r.Route("/comments", func(r chi.Router) {
					r.Get("/", commentHandler.ListComments)
					r.Post("/", commentHandler.CreateComment)

					r.Route("/{commentId}", func(r chi.Router) {
						r.Get("/", commentHandler.GetComment)
						r.Put("/", commentHandler.UpdateComment)
						r.Delete("/", commentHandler.DeleteComment)
						r.Put("/status", commentHandler.UpdateStatus)
						r.Post("/report", commentHandler.ReportComment)
					})
				})

				r.Route("/moderation/reports", func(r chi.Router) {
					r.Get("/", moderationHandler.PendingReports)
					r.Post("/{reportId}/block", moderationHandler.Block)
					r.Post("/{reportId}/block-warn", moderationHandler.BlockAndWarn)
					r.Post("/{reportId}/dismiss", moderationHandler.Dismiss)
				})

				r.Route("/votes", func(r chi.Router) {
					r.Get("/", voteHandler.ListVotes)
					r.Post("/", voteHandler.CastVote)
					r.Delete("/{voteId}", voteHandler.DeleteVote)
				})

				r.Get("/stats", statsHandler.Dashboard)
			})
		})
	})

	return r
}
