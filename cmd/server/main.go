package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/trackhub/project-manager/docs"
	"github.com/trackhub/project-manager/internal/api"
	"github.com/trackhub/project-manager/internal/core/service"
	"github.com/trackhub/project-manager/internal/core/token"
	"github.com/trackhub/project-manager/internal/infrastructure/crypto"
	mongodb "github.com/trackhub/project-manager/internal/infrastructure/db/mongo"
	redisdb "github.com/trackhub/project-manager/internal/infrastructure/db/redis"
	"github.com/trackhub/project-manager/internal/infrastructure/mail"
	"github.com/trackhub/project-manager/internal/infrastructure/queue"
	"github.com/trackhub/project-manager/internal/pkg/config"
	"github.com/trackhub/project-manager/pkg/logger"
)

// @title        Project Manager API
// @version      1.0
// @description  Multi-tenant project and task tracking backend.
// @BasePath     /api
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	userRepo := mongodb.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user indexes failed")
	}
	projectRepo := mongodb.NewProjectRepository(db)
	if err := projectRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("project indexes failed")
	}

	codec := token.NewCodec(token.Config{
		SigningKey:        cfg.JWT.SigningKey,
		ConfirmationKey:   cfg.JWT.ConfirmationKey,
		Validity:          cfg.JWT.Validity,
		AuthMultiplier:    cfg.JWT.AuthMultiplier,
		ConfirmMultiplier: cfg.JWT.ConfirmMultiplier,
		AuthoritiesKey:    cfg.JWT.AuthoritiesKey,
		Delimiter:         cfg.JWT.Delimiter,
	})
	hasher := crypto.NewBcryptHasher(cfg.BcryptCost)
	limiter := redisdb.NewSignInLimiter(rdb, cfg.Throttle.MaxFailures, cfg.Throttle.Window)

	mailer := mail.NewMailer(mail.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		Sender:   cfg.SMTP.Sender,
	})
	dispatcher := queue.NewDispatcher(cfg.MailWorkers, mailer, log)
	dispatcher.Start(ctx)

	userService := service.NewUserService(userRepo, hasher, codec, dispatcher, limiter, log)
	projectService := service.NewProjectService(projectRepo, log)
	taskService := service.NewTaskService(projectRepo, log)

	e := api.NewRouter(api.Dependencies{
		Users:    userService,
		Projects: projectService,
		Tasks:    taskService,
		UserRepo: userRepo,
		Codec:    codec,
		Mongo:    db,
		Redis:    rdb,
		Logger:   log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
