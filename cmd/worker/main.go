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
	"github.com/dicoslang/backoffice/internal/metrics"
	"github.com/dicoslang/backoffice/internal/scheduler"
	"github.com/dicoslang/backoffice/internal/services"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	connectCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
	store, disconnect, err := services.OpenMongoStore(connectCtx, services.MongoOptions{
		URI:          cfg.MongoURI,
		Database:     cfg.MongoDatabase,
		ForceTLS12:   cfg.MongoForceTLS12,
		Transactions: cfg.MongoTransactions,
	})
	cancel()
	if err != nil {
		log.Fatalf("[worker] MongoDB connection failed: %v", err)
	}
	defer disconnect(context.Background())

	var cache services.PickCache
	if cfg.RedisURI != "" {
		client, err := services.ConnectRedis(ctx, cfg.RedisURI)
		if err != nil {
			log.Printf("[worker] Redis unavailable, picks are not cached: %v", err)
		} else {
			defer client.Close()
			cache = services.NewRedisPickCache(client)
		}
	}

	sched := scheduler.New(services.NewWordOfTheDay(store, cache))
	if err := sched.Start(); err != nil {
		log.Fatalf("[worker] scheduler start failed: %v", err)
	}
	defer sched.Stop()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	// Manual trigger, same job as the 00:00 UTC run.
	mux.HandleFunc("/rotate", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		sched.RotateNow()
		w.WriteHeader(http.StatusAccepted)
	})
	mux.Handle("/metrics", metrics.Handler())

	srv := &http.Server{Addr: cfg.WorkerAddress, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		log.Printf("worker listening on %s", cfg.WorkerAddress)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[worker] http server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	_ = srv.Shutdown(shutdownCtx)
	log.Println("worker stopped")
}
