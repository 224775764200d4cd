package server

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"

	"rpe/internal/domain/auth"
	"rpe/internal/domain/criteria"
	"rpe/internal/domain/cycles"
	"rpe/internal/domain/evaluations"
	"rpe/internal/domain/goals"
	"rpe/internal/domain/notifications"
	"rpe/internal/domain/reports"
	"rpe/internal/domain/scores"
	"rpe/internal/domain/users"
	"rpe/internal/platform/config"
	cryptoutil "rpe/internal/platform/crypto"
	"rpe/internal/platform/db"
	authhandler "rpe/internal/transport/http/handlers/auth"
	criteriahandler "rpe/internal/transport/http/handlers/criteria"
	cycleshandler "rpe/internal/transport/http/handlers/cycles"
	goalshandler "rpe/internal/transport/http/handlers/goals"
	notificationshandler "rpe/internal/transport/http/handlers/notifications"
	reportshandler "rpe/internal/transport/http/handlers/reports"
	scoreshandler "rpe/internal/transport/http/handlers/scores"
	usershandler "rpe/internal/transport/http/handlers/users"
	"rpe/internal/transport/http/middleware"
)

func Run() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	crypto, err := cryptoutil.New(cfg.DataEncryptionKey)
	if err != nil {
		log.Fatalf("encryption setup failed: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg, crypto); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	criteriaStore := criteria.NewStore(pool)
	cycleStore := cycles.NewStore(pool)
	userStore := users.NewStore(pool)
	evaluationStore := evaluations.NewStore(pool)
	scoreStore := scores.NewStore(pool)
	goalStore := goals.NewStore(pool)
	notificationStore := notifications.NewStore(pool)

	notificationService := notifications.New(notificationStore)
	userService := users.NewService(userStore, crypto)
	cycleService := cycles.NewService(cycleStore)
	criteriaService := criteria.NewService(criteriaStore)
	migrator := criteria.NewMigrator(criteriaStore, nil)
	scoreService := scores.NewService(scoreStore, cycleStore, userStore, crypto)
	goalService := goals.New(goalStore, crypto, notificationService, cfg.GoalDeadlineWindow)
	reportService := reports.NewService(scoreService, userService)
	authService := auth.NewService(userStore, cfg.JWTSecret)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recover)
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(authService).RegisterRoutes(r)
		usershandler.NewHandler(userService, evaluationStore).RegisterRoutes(r)
		criteriahandler.NewHandler(criteriaService, migrator).RegisterRoutes(r)
		cycleshandler.NewHandler(cycleService).RegisterRoutes(r)
		scoreshandler.NewHandler(scoreService).RegisterRoutes(r)
		goalshandler.NewHandler(goalService).RegisterRoutes(r)
		notificationshandler.NewHandler(notificationService).RegisterRoutes(r)
		reportshandler.NewHandler(reportService).RegisterRoutes(r)
	})

	slog.Info("server listening", "addr", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
