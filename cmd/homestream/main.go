package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mwaldt/homestream/internal/api"
	"github.com/mwaldt/homestream/internal/config"
	"github.com/mwaldt/homestream/internal/db"
	"github.com/mwaldt/homestream/internal/library"
	"github.com/mwaldt/homestream/internal/metadata"
	"github.com/mwaldt/homestream/internal/repository"
	"github.com/mwaldt/homestream/internal/scanner"
	"github.com/mwaldt/homestream/internal/session"
	"github.com/mwaldt/homestream/internal/stream"
	"github.com/mwaldt/homestream/internal/version"
)

func main() {
	ver := version.Load()
	log.Printf("HomeStream %s starting...", ver.Version)

	cfg := config.Load()

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	var sessions session.Store
	if cfg.RedisAddr != "" {
		log.Printf("sessions backed by redis at %s", cfg.RedisAddr)
		sessions = session.NewRedisStore(cfg.RedisAddr)
	} else {
		sessions = session.NewMemoryStore()
	}

	sweeper := cron.New()
	if _, err := sweeper.AddFunc(cfg.SessionSweepSpec, func() {
		if n := sessions.Sweep(); n > 0 {
			log.Printf("session: swept %d expired sessions", n)
		}
	}); err != nil {
		log.Fatalf("invalid session sweep spec %q: %v", cfg.SessionSweepSpec, err)
	}
	sweeper.Start()
	defer sweeper.Stop()

	tmdb := metadata.NewClient(cfg.TMDBAPIKey)
	catalog := scanner.New(cfg.MoviesPath, cfg.SeriesPath, tmdb)

	users := repository.NewUserRepository(database.DB)
	progress := repository.NewProgressRepository(database.DB)
	watchlist := repository.NewWatchlistRepository(database.DB)

	lib := library.NewReconciler(catalog, progress, watchlist)
	resolver := stream.NewResolver(cfg.MoviesPath, cfg.SeriesPath)

	srv := api.NewServer(cfg, users, sessions, lib, resolver)

	httpServer := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Port),
		Handler:      srv,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("listening on :%d", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	httpServer.Shutdown(ctx)
}
