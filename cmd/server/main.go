package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/masstest/masstest-backend/internal/authclient"
	"github.com/masstest/masstest-backend/internal/config"
	"github.com/masstest/masstest-backend/internal/database"
	"github.com/masstest/masstest-backend/internal/handler"
	"github.com/masstest/masstest-backend/internal/logger"
	"github.com/masstest/masstest-backend/internal/model"
	"github.com/masstest/masstest-backend/internal/router"
	"github.com/masstest/masstest-backend/internal/service"
	"github.com/masstest/masstest-backend/internal/store"
	"github.com/masstest/masstest-backend/internal/store/memory"
	"github.com/masstest/masstest-backend/internal/store/postgres"
	"github.com/masstest/masstest-backend/internal/store/redisstore"
	"github.com/masstest/masstest-backend/internal/validator"
)

// stores bundles the per-entity keyed stores for one backend.
type stores struct {
	users     store.Store[model.User]
	courses   store.Store[model.Course]
	questions store.Store[model.Question]
	tests     store.Store[model.Test]
	attempts  store.Store[model.Attempt]
}

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("store", string(cfg.StoreBackend)).
		Str("log_level", cfg.LogLevel).
		Msg("Starting MassTest Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Initialize Entity Stores ──────────────────────────────────────
	st, cleanup, err := buildStores(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize entity stores")
	}
	defer cleanup()

	// The memory backend starts empty; seed the bootstrap administrator so
	// a fresh dev instance has a superuser, same as the reference deployment.
	if cfg.StoreBackend == config.StoreBackendMemory {
		if _, err := st.users.Create(ctx, model.User{
			ID:       "u1",
			FullName: "Administrator",
			Roles:    []string{model.RoleAdmin},
		}); err != nil {
			log.Fatal().Err(err).Msg("Failed to seed admin user")
		}
	}

	// ─── Claims Resolver ───────────────────────────────────────────────
	resolver := authclient.NewClient(cfg.AuthServiceURL, cfg.AuthTimeout, log)

	// ─── Initialize Services ───────────────────────────────────────────
	newID := service.IDGenerator(uuid.NewString)
	userService := service.NewUserService(st.users)
	courseService := service.NewCourseService(st.courses, newID)
	questionService := service.NewQuestionService(st.questions, newID)
	testService := service.NewTestService(st.tests, newID)
	attemptService := service.NewAttemptService(st.attempts, st.tests, st.questions, newID, log)

	// ─── Initialize Handlers ───────────────────────────────────────────
	handlers := &router.Handlers{
		User:     handler.NewUserHandler(userService),
		Course:   handler.NewCourseHandler(courseService),
		Question: handler.NewQuestionHandler(questionService),
		Test:     handler.NewTestHandler(testService),
		Attempt:  handler.NewAttemptHandler(attemptService),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(resolver, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// buildStores constructs the per-entity stores for the configured backend.
// The returned cleanup closes any underlying connections.
func buildStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*stores, func(), error) {
	switch cfg.StoreBackend {
	case config.StoreBackendPostgres:
		pool, err := database.NewPostgresPool(ctx, cfg, log)
		if err != nil {
			return nil, nil, err
		}
		return &stores{
			users:     postgres.NewStore[model.User](pool, "user"),
			courses:   postgres.NewStore[model.Course](pool, "course"),
			questions: postgres.NewStore[model.Question](pool, "question"),
			tests:     postgres.NewStore[model.Test](pool, "test"),
			attempts:  postgres.NewStore[model.Attempt](pool, "attempt"),
		}, pool.Close, nil

	case config.StoreBackendRedis:
		rdb, err := database.NewRedisClient(ctx, cfg, log)
		if err != nil {
			return nil, nil, err
		}
		return &stores{
			users:     redisstore.NewStore[model.User](rdb, "user"),
			courses:   redisstore.NewStore[model.Course](rdb, "course"),
			questions: redisstore.NewStore[model.Question](rdb, "question"),
			tests:     redisstore.NewStore[model.Test](rdb, "test"),
			attempts:  redisstore.NewStore[model.Attempt](rdb, "attempt"),
		}, func() { _ = rdb.Close() }, nil

	default:
		return &stores{
			users:     memory.NewStore[model.User](),
			courses:   memory.NewStore[model.Course](),
			questions: memory.NewStore[model.Question](),
			tests:     memory.NewStore[model.Test](),
			attempts:  memory.NewStore[model.Attempt](),
		}, func() {}, nil
	}
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
