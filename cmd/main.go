package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	appconfig "github.com/smartschedule/smartschedule/config"
	"github.com/smartschedule/smartschedule/internal/container"
	"github.com/smartschedule/smartschedule/internal/infrastructure/jsonfile"
	"github.com/smartschedule/smartschedule/internal/infrastructure/redisstore"
	"github.com/smartschedule/smartschedule/internal/interface/middleware"
	"github.com/smartschedule/smartschedule/internal/router"
	"github.com/smartschedule/smartschedule/pkg/helpers"
	"github.com/smartschedule/smartschedule/pkg/llm/openrouter"
	"github.com/smartschedule/smartschedule/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := appconfig.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	// Storage driver: the JSON file store is the local default, redis
	// opts in via STORAGE_DRIVER=redis.
	switch cfg.StorageDriver {
	case "redis":
		if cfg.RedisAddr == "" {
			log.Fatal("STORAGE_DRIVER=redis requires REDIS_ADDR")
		}
		rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer func() { _ = rdb.Close() }()
		container.SetRedis(rdb)
		container.SetUsers(redisstore.NewUserRepository(rdb))
		container.SetSessions(redisstore.NewSessionRepository(rdb, cfg.SessionTTL))
		container.SetEvents(redisstore.NewEventRepository(rdb))
	case "file":
		store, err := jsonfile.NewStore(cfg.DataFile, logger)
		if err != nil {
			log.Fatalf("failed to open store %s: %v", cfg.DataFile, err)
		}
		container.SetUsers(jsonfile.NewUserRepository(store))
		container.SetSessions(jsonfile.NewSessionRepository(store))
		container.SetEvents(jsonfile.NewEventRepository(store))
		// Redis may still back the rate limiter alongside file storage.
		if cfg.RedisAddr != "" {
			rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
			defer func() { _ = rdb.Close() }()
			container.SetRedis(rdb)
		}
	default:
		log.Fatalf("unknown storage driver %q", cfg.StorageDriver)
	}

	// Extractor
	chat := openrouter.New(cfg.LLMAPIKey, cfg.LLMBaseURL, cfg.LLMModel)
	container.SetChatModel(chat)

	// Session tokens
	jwtManager := helpers.NewJWTManager(cfg.SessionSecret, cfg.SessionTTL)

	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetJWT(jwtManager)

	// Gin engine and global middleware
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	corsCfg := cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(corsCfg.AllowOrigins) > 0 {
		r.Use(cors.New(corsCfg))
	}
	if cfg.Env == "development" || cfg.HTTPLogEnabled {
		r.Use(gin.Logger())
	}

	// Registry: auto-register modules using container
	reg := router.NewRegistry(r)
	router.InitModules(reg)
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(http.ErrServerClosed, err) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}
