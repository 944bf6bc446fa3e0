package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dicoslang/backoffice/internal/config"
	"github.com/dicoslang/backoffice/internal/handlers"
	appMiddleware "github.com/dicoslang/backoffice/internal/middleware"
	"github.com/dicoslang/backoffice/internal/services"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	ctx := context.Background()

	// Firebase Auth (server-side verification of ID tokens)
	var verifiers appMiddleware.MultiVerifier
	verifiers = append(verifiers, appMiddleware.JWTVerifier{Secret: cfg.JWTSecret})
	authClient, err := appMiddleware.NewFirebaseAuthClient(ctx, appMiddleware.FirebaseAuthConfig{
		ProjectID:       cfg.FirebaseProjectID,
		CredentialsFile: cfg.FirebaseCredentialsFile,
		CredentialsJSON: os.Getenv("FIREBASE_CREDENTIALS_JSON"),
	})
	if err != nil {
		log.Printf("Warning: failed to initialize Firebase Auth client: %v", err)
	} else {
		verifiers = append(verifiers, appMiddleware.FirebaseVerifier{Client: authClient})
	}

	store, closeStore := openStore(ctx, cfg)
	defer closeStore()

	var cache services.PickCache
	if cfg.RedisURI != "" {
		client, err := services.ConnectRedis(ctx, cfg.RedisURI)
		if err != nil {
			log.Printf("Warning: Redis unavailable, word of the day is not cached: %v", err)
		} else {
			defer client.Close()
			cache = services.NewRedisPickCache(client)
		}
	}

	router := handlers.NewRouter(handlers.RouterConfig{
		Store:          store,
		Verifier:       verifiers,
		PickCache:      cache,
		JWTSecret:      cfg.JWTSecret,
		JWTExpiration:  cfg.JWTExpiration,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Back-office API server starting on %s", cfg.ServerAddress)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}

func openStore(ctx context.Context, cfg *config.Config) (*services.Store, func()) {
	if cfg.MemoryStore {
		log.Println("Using in-memory store; data is lost on exit")
		return services.NewMemoryStore(), func() {}
	}

	connectCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()
	store, disconnect, err := services.OpenMongoStore(connectCtx, services.MongoOptions{
		URI:          cfg.MongoURI,
		Database:     cfg.MongoDatabase,
		ForceTLS12:   cfg.MongoForceTLS12,
		Transactions: cfg.MongoTransactions,
	})
	if err != nil {
		log.Fatalf("MongoDB connection failed: %v", err)
	}
	return store, func() {
		if err := disconnect(context.Background()); err != nil {
			log.Printf("MongoDB disconnect error: %v", err)
		}
	}
}
