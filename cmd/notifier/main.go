package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/stagelink/booking-notifications/internal/api"
	"github.com/stagelink/booking-notifications/internal/cache"
	"github.com/stagelink/booking-notifications/internal/client"
	"github.com/stagelink/booking-notifications/internal/config"
	"github.com/stagelink/booking-notifications/internal/reminder"
	"github.com/stagelink/booking-notifications/internal/repo"
	"github.com/stagelink/booking-notifications/internal/scheduler"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadAll()
	if err != nil {
		log.Fatal(err)
	}

	slog.Info("booking-notifications starting",
		"addr", cfg.Server.Address,
		"interval", cfg.Scheduler.Interval.String(),
		"cooldown", cfg.Reminder.Cooldown.String(),
		"max_window", cfg.Reminder.MaxWindow.String(),
		"redis", cfg.Redis.Enabled,
	)

	db, err := sql.Open("pgx", cfg.Database.PostgresURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	if err := db.PingContext(pingCtx); err != nil {
		cancelPing()
		log.Fatal(err)
	}
	cancelPing()

	var cooldownCache cache.CooldownCache
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		cooldownCache = cache.NewRedisCooldownCache(rdb, cfg.Reminder.Cooldown)
	}

	bookings := repo.NewPostgresBookingRepo(db)
	requests := repo.NewPostgresEventRequestRepo(db)
	talents := repo.NewPostgresTalentRepo(db)
	ledger := repo.NewPostgresReminderLedger(db)
	push := client.NewPushGatewayClient(cfg.Push.GatewayURL, cfg.Push.Token)

	passes := reminder.NewService(bookings, requests, talents, ledger, cooldownCache, push, reminder.Policy{
		Cooldown:  cfg.Reminder.Cooldown,
		MaxWindow: cfg.Reminder.MaxWindow,
	})

	sched, err := scheduler.New(cfg.Scheduler.Interval, func(ctx context.Context) error {
		_, err := passes.Run(ctx, time.Now().UTC())
		return err
	})
	if err != nil {
		log.Fatal(err)
	}
	sched.Start()

	srv := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: loggingMiddleware(api.Router(api.NewHandler(sched, passes, ledger))),
	}

	go func() {
		slog.Info("http server listening", "addr", cfg.Server.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	slog.Info("shutting down")
	sched.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		slog.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
