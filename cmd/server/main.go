package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/inkwell/backend/api/handler"
	"github.com/inkwell/backend/internal/config"
	"github.com/inkwell/backend/internal/infrastructure/blob"
	"github.com/inkwell/backend/internal/infrastructure/monitor"
	pgInfra "github.com/inkwell/backend/internal/infrastructure/postgres"
	redisInfra "github.com/inkwell/backend/internal/infrastructure/redis"
	"github.com/inkwell/backend/internal/middleware"
	"github.com/inkwell/backend/internal/router"
	"github.com/inkwell/backend/internal/services"
	"github.com/inkwell/backend/internal/services/lifecycle"
	"github.com/inkwell/backend/pkg/httpcontext"
	"github.com/inkwell/backend/pkg/logger"
	"github.com/inkwell/backend/pkg/token"
	"github.com/inkwell/backend/repository/postgres"
	redisRepo "github.com/inkwell/backend/repository/redis"
	"github.com/inkwell/backend/usecase"
	authUC "github.com/inkwell/backend/usecase/auth"
	commentUC "github.com/inkwell/backend/usecase/comment"
	postUC "github.com/inkwell/backend/usecase/post"
	userUC "github.com/inkwell/backend/usecase/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	blobStore, err := blob.Open(cfg.Blob.Path, "uploads")
	if err != nil {
		zapLogger.Fatal("failed to open upload store", zap.Error(err))
	}
	manager.Register("uploads", func(ctx context.Context) error {
		return blobStore.Close()
	})

	mon := monitor.New(pool, redisClient, blobStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	userRepo := postgres.NewUserRepository(pool)
	postRepo := postgres.NewPostRepository(pool)
	commentRepo := postgres.NewCommentRepository(pool)

	var feedCache usecase.FeedCache
	if cfg.Cache.Enabled {
		feedCache = redisRepo.NewFeedCache(redisClient, cfg.Cache.TTL)
	}

	tokens := token.NewManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL)

	authUseCase := authUC.New(userRepo, tokens, zapLogger)
	postUseCase := postUC.New(postRepo, feedCache, zapLogger)
	commentUseCase := commentUC.New(commentRepo, postRepo, feedCache, zapLogger)
	userUseCase := userUC.New(userRepo, postRepo, commentRepo, zapLogger)

	maintenance := services.NewMaintenance(blobStore, postRepo, apiHandler.UploadPathPrefix, zapLogger)
	if cfg.Maintenance.Enabled {
		if err := maintenance.Start(cfg.Maintenance.Schedule); err != nil {
			zapLogger.Fatal("maintenance scheduler failed", zap.Error(err))
		}
		manager.Register("maintenance", func(ctx context.Context) error {
			maintenance.Stop(ctx)
			return nil
		})
	}

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:    apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger),
		Post:    apiHandler.NewPostHandler(postUseCase, blobStore, cfg.Upload.MaxBytes, ctxAdapter, zapLogger),
		Comment: apiHandler.NewCommentHandler(commentUseCase, ctxAdapter, zapLogger),
		User:    apiHandler.NewUserHandler(userUseCase, ctxAdapter, zapLogger),
		Upload:  apiHandler.NewUploadHandler(blobStore, ctxAdapter, zapLogger),
		Health:  apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.Auth(tokens, authUseCase, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:            r.Handler,
		ReadTimeout:        cfg.HTTP.ReadTimeout,
		WriteTimeout:       cfg.HTTP.WriteTimeout,
		IdleTimeout:        cfg.HTTP.IdleTimeout,
		MaxRequestBodySize: cfg.Upload.MaxRequestBodySize(),
		Name:               cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
