package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/campushub/campushub/internal/admin"
	"github.com/campushub/campushub/internal/app"
	"github.com/campushub/campushub/internal/assignments"
	"github.com/campushub/campushub/internal/auth"
	"github.com/campushub/campushub/internal/calendar"
	"github.com/campushub/campushub/internal/courses"
	"github.com/campushub/campushub/internal/departments"
	"github.com/campushub/campushub/internal/lectures"
	"github.com/campushub/campushub/internal/session"
	"github.com/campushub/campushub/internal/submissions"
	"github.com/campushub/campushub/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := pgxpool.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	codec, err := session.NewCodec(cfg.JWTSecret)
	if err != nil {
		logger.Error("session codec", slog.Any("error", err))
		os.Exit(1)
	}
	resolver := session.NewResolver(codec, logger)

	jobClient := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("jobs client close", slog.Any("error", err))
		}
	}()

	authHandler := auth.NewHandler(logger, auth.NewService(auth.NewRepository(dbpool)), codec, cfg.IsProduction())
	coursesHandler := courses.NewHandler(logger, courses.NewService(courses.NewRepository(dbpool)))
	lecturesHandler := lectures.NewHandler(logger, lectures.NewService(lectures.NewRepository(dbpool)))
	assignmentsHandler := assignments.NewHandler(logger, assignments.NewService(logger, assignments.NewRepository(dbpool), jobClient))
	submissionsHandler := submissions.NewHandler(logger, submissions.NewService(submissions.NewRepository(dbpool)))
	calendarHandler := calendar.NewHandler(logger, calendar.NewService(calendar.NewRepository(dbpool)))
	departmentsHandler := departments.NewHandler(logger, departments.NewService(departments.NewRepository(dbpool)))
	overviewCache := admin.NewCache(redisClient, cfg.OverviewCacheTTL)
	adminHandler := admin.NewHandler(logger, admin.NewService(admin.NewRepository(dbpool), overviewCache))

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		Resolver:           resolver,
		AuthHandler:        authHandler,
		CoursesHandler:     coursesHandler,
		LecturesHandler:    lecturesHandler,
		AssignmentsHandler: assignmentsHandler,
		SubmissionsHandler: submissionsHandler,
		CalendarHandler:    calendarHandler,
		DepartmentsHandler: departmentsHandler,
		AdminHandler:       adminHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
